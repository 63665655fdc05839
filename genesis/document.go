// Package genesis builds the runtime genesis patch of the parachain.
//
// A Document has a fixed set of top-level sections (pallet configs). Adding or
// removing a section changes the contract with the runtime's genesis builder
// and is a breaking change. All sections are always serialized, with empty
// lists encoded as [] rather than null.
package genesis

import (
	"encoding/json"
	"fmt"

	"github.com/oasisprotocol/oasis-core/go/common/crypto/hash"

	"github.com/DrW3RK/parachain-node/keys"
)

const (
	// Unit is one token in base units (12 decimals).
	Unit uint64 = 1_000_000_000_000
	// MilliUnit is a thousandth of a Unit.
	MilliUnit = Unit / 1_000
	// ExistentialDeposit is the runtime's minimum balance.
	ExistentialDeposit = MilliUnit

	// CandidacyBondMultiplier scales ExistentialDeposit into the bond a
	// collator candidate must reserve.
	CandidacyBondMultiplier uint64 = 16

	// EndowmentShift gives every endowed account 1 << 60 base units.
	EndowmentShift = 60

	// SafeXcmVersion is the XCM version assumed for destinations whose
	// version is not known yet.
	SafeXcmVersion uint32 = 4
)

// Endowment returns the balance given to every endowed account.
func Endowment() Balance {
	return NewBalance(1 << EndowmentShift)
}

// CandidacyBond returns ExistentialDeposit * CandidacyBondMultiplier.
func CandidacyBond() Balance {
	b, err := NewBalance(ExistentialDeposit).Mul(CandidacyBondMultiplier)
	if err != nil {
		// Both operands are small constants.
		panic(err)
	}
	return b
}

// Document is the genesis config patch handed to the runtime.
type Document struct {
	Balances          BalancesConfig          `json:"balances"`
	ParachainInfo     ParachainInfoConfig     `json:"parachainInfo"`
	CollatorSelection CollatorSelectionConfig `json:"collatorSelection"`
	Session           SessionConfig           `json:"session"`
	PolkadotXcm       PolkadotXcmConfig       `json:"polkadotXcm"`
	Sudo              SudoConfig              `json:"sudo"`
}

// BalancesConfig is the initial endowment of accounts.
type BalancesConfig struct {
	Balances []BalanceEntry `json:"balances"`
}

// ParachainInfoConfig registers the para id.
type ParachainInfoConfig struct {
	ParachainID uint32 `json:"parachainId"`
}

// CollatorSelectionConfig bootstraps the collator set.
type CollatorSelectionConfig struct {
	// Invulnerables are never removed by collator rotation.
	Invulnerables []keys.AccountID `json:"invulnerables"`
	CandidacyBond Balance          `json:"candidacyBond"`
}

// SessionConfig registers session keys.
type SessionConfig struct {
	Keys []SessionKeyEntry `json:"keys"`
}

// PolkadotXcmConfig configures the XCM pallet.
type PolkadotXcmConfig struct {
	SafeXcmVersion *uint32 `json:"safeXcmVersion"`
}

// SudoConfig sets the root key.
type SudoConfig struct {
	Key *keys.AccountID `json:"key"`
}

// MarshalJSON implements json.Marshaler.
func (d Document) MarshalJSON() ([]byte, error) {
	type plain Document
	p := plain(d)
	if p.Balances.Balances == nil {
		p.Balances.Balances = []BalanceEntry{}
	}
	if p.CollatorSelection.Invulnerables == nil {
		p.CollatorSelection.Invulnerables = []keys.AccountID{}
	}
	if p.Session.Keys == nil {
		p.Session.Keys = []SessionKeyEntry{}
	}
	return json.Marshal(p)
}

// Hash returns the hash of the document's JSON encoding.
func (d *Document) Hash() (hash.Hash, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return hash.Hash{}, fmt.Errorf("genesis: marshal: %w", err)
	}
	return hash.NewFromBytes(raw), nil
}

// Collator is an initial collator: its account and its Aura key.
type Collator struct {
	Account keys.AccountID
	Aura    keys.AuraID
}

// LivenetGenesis builds the genesis patch of a live network.
//
// Every input list keeps its order; nothing is sorted or deduplicated. Each
// endowed account receives Endowment(), regardless of its role.
func LivenetGenesis(invulnerables []Collator, endowed []keys.AccountID, root keys.AccountID, paraID uint32) *Document {
	balances := make([]BalanceEntry, 0, len(endowed))
	for _, acc := range endowed {
		balances = append(balances, BalanceEntry{Account: acc, Amount: Endowment()})
	}

	accounts := make([]keys.AccountID, 0, len(invulnerables))
	sessionKeys := make([]SessionKeyEntry, 0, len(invulnerables))
	for _, c := range invulnerables {
		accounts = append(accounts, c.Account)
		sessionKeys = append(sessionKeys, SessionKeyEntry{
			Account:     c.Account,
			ValidatorID: c.Account,
			Keys:        TemplateSessionKeys(c.Aura),
		})
	}

	safeXcmVersion := SafeXcmVersion
	return &Document{
		Balances:      BalancesConfig{Balances: balances},
		ParachainInfo: ParachainInfoConfig{ParachainID: paraID},
		CollatorSelection: CollatorSelectionConfig{
			Invulnerables: accounts,
			CandidacyBond: CandidacyBond(),
		},
		Session:     SessionConfig{Keys: sessionKeys},
		PolkadotXcm: PolkadotXcmConfig{SafeXcmVersion: &safeXcmVersion},
		Sudo:        SudoConfig{Key: &root},
	}
}
