package chainspec

import (
	"errors"
	"fmt"
	"os"

	"github.com/DrW3RK/parachain-node/config"
	"github.com/DrW3RK/parachain-node/genesis"
	"github.com/DrW3RK/parachain-node/keys"
	"github.com/DrW3RK/parachain-node/log"
)

const (
	localRelayChain = "rococo-local"
	// localParaID MUST match the para id the local relay chain registers.
	localParaID uint32 = 1000

	localTestnetProtocolID = "template-local"
)

// ErrUnknownChain is returned by Load when the chain is neither a known
// profile nor a readable chain spec file.
var ErrUnknownChain = errors.New("chainspec: unknown chain")

// Builder builds the chain spec profiles.
type Builder struct {
	logger *log.Logger
}

// NewBuilder creates a new Builder. A nil logger discards all output.
func NewBuilder(logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Builder{logger: logger.WithModule("chainspec")}
}

var defaultBuilder = NewBuilder(nil)

// LiveConfig builds the live network chain spec. A nil cfg uses
// config.DefaultLiveConfig().
func LiveConfig(code []byte, cfg *config.LiveConfig) (*ChainSpec, error) {
	return defaultBuilder.Live(code, cfg)
}

// DevelopmentConfig builds the single node development chain spec.
func DevelopmentConfig(code []byte) (*ChainSpec, error) {
	return defaultBuilder.Development(code)
}

// LocalTestnetConfig builds the local multi-node testnet chain spec.
func LocalTestnetConfig(code []byte) (*ChainSpec, error) {
	return defaultBuilder.LocalTestnet(code)
}

// Load resolves a chain id to a chain spec: "dev", "local" (or empty) and
// "live" select the built-in profiles, anything else is read as a chain spec
// JSON file.
func Load(id string, code []byte, cfg *config.LiveConfig) (*ChainSpec, error) {
	return defaultBuilder.Load(id, code, cfg)
}

// Live builds the live network chain spec.
func (b *Builder) Live(code []byte, cfg *config.LiveConfig) (*ChainSpec, error) {
	if len(code) == 0 {
		return nil, ErrMissingRuntimeCode
	}
	if cfg == nil {
		cfg = config.DefaultLiveConfig()
	}
	if err := cfg.Properties.Validate(); err != nil {
		return nil, fmt.Errorf("chainspec: live properties: %w", err)
	}

	patch, err := livenetGenesisFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("chainspec: live genesis: %w", err)
	}

	protocolID := cfg.ProtocolID
	spec := &ChainSpec{
		Name:       cfg.Name,
		ID:         cfg.ID,
		ChainType:  ChainTypeLive,
		Properties: NewProperties(cfg.Properties),
		Extensions: Extensions{
			RelayChain: cfg.RelayChain,
			ParaID:     cfg.ParaID,
		},
		Code:    code,
		Genesis: Genesis{Patch: patch},
	}
	if protocolID != "" {
		spec.ProtocolID = &protocolID
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	b.logPatch(spec)
	return spec, nil
}

// Development builds the single node development chain spec.
func (b *Builder) Development(code []byte) (*ChainSpec, error) {
	if len(code) == 0 {
		return nil, ErrMissingRuntimeCode
	}
	// The development spec keeps the node's default properties; unitProperties
	// is not attached.
	spec := &ChainSpec{
		Name:      "Development",
		ID:        "dev",
		ChainType: ChainTypeDevelopment,
		Extensions: Extensions{
			RelayChain: localRelayChain,
			ParaID:     localParaID,
		},
		Code:    code,
		Genesis: Genesis{PresetName: DevRuntimePreset},
	}
	b.logger.Info("built chain spec", "id", spec.ID, "preset", spec.Genesis.PresetName)
	return spec, nil
}

// LocalTestnet builds the local multi-node testnet chain spec.
func (b *Builder) LocalTestnet(code []byte) (*ChainSpec, error) {
	if len(code) == 0 {
		return nil, ErrMissingRuntimeCode
	}
	protocolID := localTestnetProtocolID
	spec := &ChainSpec{
		Name:       "Local Testnet",
		ID:         "local_testnet",
		ChainType:  ChainTypeLocal,
		ProtocolID: &protocolID,
		Properties: unitProperties(),
		Extensions: Extensions{
			RelayChain: localRelayChain,
			ParaID:     localParaID,
		},
		Code:    code,
		Genesis: Genesis{PresetName: LocalTestnetRuntimePreset},
	}
	b.logger.Info("built chain spec", "id", spec.ID, "preset", spec.Genesis.PresetName)
	return spec, nil
}

// Load resolves a chain id to a chain spec. See the package level Load.
func (b *Builder) Load(id string, code []byte, cfg *config.LiveConfig) (*ChainSpec, error) {
	switch id {
	case "dev":
		return b.Development(code)
	case "", "local":
		return b.LocalTestnet(code)
	case "live":
		return b.Live(code, cfg)
	}

	data, err := os.ReadFile(id)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrUnknownChain, id, err)
	}
	spec, err := FromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("chainspec: load %s: %w", id, err)
	}
	b.logger.Info("loaded chain spec", "path", id, "id", spec.ID, "para_id", spec.Extensions.ParaID)
	return spec, nil
}

func livenetGenesisFromConfig(cfg *config.LiveConfig) (*genesis.Document, error) {
	invulnerables := make([]genesis.Collator, 0, len(cfg.Collators))
	for i, c := range cfg.Collators {
		account, err := keys.PubToAccountID(c.Account)
		if err != nil {
			return nil, fmt.Errorf("collator %d account: %w", i, err)
		}
		aura, err := keys.PubToCollatorKey(c.Session)
		if err != nil {
			return nil, fmt.Errorf("collator %d session: %w", i, err)
		}
		invulnerables = append(invulnerables, genesis.Collator{Account: account, Aura: aura})
	}

	endowed := make([]keys.AccountID, 0, len(cfg.Endowed))
	for i, e := range cfg.Endowed {
		account, err := keys.PubToAccountID(e)
		if err != nil {
			return nil, fmt.Errorf("endowed account %d: %w", i, err)
		}
		endowed = append(endowed, account)
	}

	root, err := keys.PubToAccountID(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("root account: %w", err)
	}

	return genesis.LivenetGenesis(invulnerables, endowed, root, cfg.ParaID), nil
}

func (b *Builder) logPatch(spec *ChainSpec) {
	patch := spec.Genesis.Patch
	h, err := patch.Hash()
	if err != nil {
		b.logger.Warn("failed to hash genesis patch", "err", err)
	}
	b.logger.Info("built chain spec",
		"id", spec.ID,
		"relay_chain", spec.Extensions.RelayChain,
		"para_id", spec.Extensions.ParaID,
		"genesis_hash", h.String(),
		"endowed_accounts", len(patch.Balances.Balances),
		"invulnerables", len(patch.CollatorSelection.Invulnerables),
		"endowment", spec.Properties.FormatBalance(genesis.Endowment()),
		"candidacy_bond", spec.Properties.FormatBalance(patch.CollatorSelection.CandidacyBond),
	)
}
