package genesis

import (
	"encoding/json"
	"fmt"

	"github.com/DrW3RK/parachain-node/keys"
)

// SessionKeys is the set of keys a collator registers for a session.
type SessionKeys struct {
	Aura keys.AuraID `json:"aura"`
}

// TemplateSessionKeys builds the session keys from the individual keys.
func TemplateSessionKeys(aura keys.AuraID) SessionKeys {
	return SessionKeys{Aura: aura}
}

// BalanceEntry is a single (account, amount) endowment. It serializes as a
// two element JSON array.
type BalanceEntry struct {
	Account keys.AccountID
	Amount  Balance
}

// MarshalJSON implements json.Marshaler.
func (e BalanceEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{e.Account, e.Amount})
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *BalanceEntry) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("balance entry: %w", err)
	}
	if len(tuple) != 2 {
		return fmt.Errorf("balance entry: expected 2 elements, got %d", len(tuple))
	}
	if err := json.Unmarshal(tuple[0], &e.Account); err != nil {
		return fmt.Errorf("balance entry account: %w", err)
	}
	if err := json.Unmarshal(tuple[1], &e.Amount); err != nil {
		return fmt.Errorf("balance entry amount: %w", err)
	}
	return nil
}

// SessionKeyEntry registers the session keys of one collator. It serializes
// as an (account, validator id, keys) JSON array.
//
// The validator id is the account id itself; accounts and validator ids are
// not distinguished.
type SessionKeyEntry struct {
	Account     keys.AccountID
	ValidatorID keys.AccountID
	Keys        SessionKeys
}

// MarshalJSON implements json.Marshaler.
func (e SessionKeyEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{e.Account, e.ValidatorID, e.Keys})
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *SessionKeyEntry) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("session key entry: %w", err)
	}
	if len(tuple) != 3 {
		return fmt.Errorf("session key entry: expected 3 elements, got %d", len(tuple))
	}
	for i, dst := range []interface{}{&e.Account, &e.ValidatorID, &e.Keys} {
		if err := json.Unmarshal(tuple[i], dst); err != nil {
			return fmt.Errorf("session key entry element %d: %w", i, err)
		}
	}
	return nil
}
