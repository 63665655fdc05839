// Package chainspec assembles the chain specs of the parachain: display
// metadata, parachain extensions, the runtime code and the genesis source.
package chainspec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/DrW3RK/parachain-node/genesis"
)

var (
	// ErrMissingRuntimeCode is returned when a chain spec is built without
	// the compiled runtime. A spec without code cannot bootstrap a node.
	ErrMissingRuntimeCode = errors.New("chainspec: runtime code not built, please build it")

	// ErrGenesisSource is returned when a chain spec does not have exactly
	// one genesis source.
	ErrGenesisSource = errors.New("chainspec: exactly one of genesis patch and preset name must be set")
)

// ChainType is the deployment class of a chain.
type ChainType string

const (
	// ChainTypeDevelopment is a single node development chain.
	ChainTypeDevelopment ChainType = "Development"
	// ChainTypeLocal is a local multi-node testnet.
	ChainTypeLocal ChainType = "Local"
	// ChainTypeLive is a production network.
	ChainTypeLive ChainType = "Live"
)

// Validate checks that the chain type is known.
func (t ChainType) Validate() error {
	switch t {
	case ChainTypeDevelopment, ChainTypeLocal, ChainTypeLive:
		return nil
	default:
		return fmt.Errorf("chainspec: unknown chain type %q", string(t))
	}
}

// Named genesis presets provided by the runtime.
const (
	DevRuntimePreset          = "development"
	LocalTestnetRuntimePreset = "local_testnet"
)

// Genesis is the genesis source of a chain spec: a patch built here, a
// patch read from a chain spec file, or the name of a preset the runtime
// provides. Exactly one is set.
type Genesis struct {
	Patch *genesis.Document
	// RawPatch is a patch read from a chain spec file. It is kept verbatim.
	RawPatch   json.RawMessage
	PresetName string
}

// Validate checks that exactly one genesis source is set.
func (g *Genesis) Validate() error {
	var n int
	if g.Patch != nil {
		n++
	}
	if !isNullJSON(g.RawPatch) {
		n++
	}
	if g.PresetName != "" {
		n++
	}
	if n != 1 {
		return ErrGenesisSource
	}
	return nil
}

// Document returns the genesis patch as a typed document. Fields of a raw
// patch that the document does not model are dropped.
func (g *Genesis) Document() (*genesis.Document, error) {
	switch {
	case g.Patch != nil:
		return g.Patch, nil
	case !isNullJSON(g.RawPatch):
		var doc genesis.Document
		if err := json.Unmarshal(g.RawPatch, &doc); err != nil {
			return nil, fmt.Errorf("chainspec: genesis patch: %w", err)
		}
		return &doc, nil
	default:
		return nil, fmt.Errorf("chainspec: genesis preset %q has no patch", g.PresetName)
	}
}

// ChainSpec is a fully assembled chain spec.
type ChainSpec struct {
	Name      string
	ID        string
	ChainType ChainType
	BootNodes []string
	// TelemetryEndpoints is kept verbatim; empty encodes as null.
	TelemetryEndpoints json.RawMessage
	// ProtocolID is optional; nil leaves the node's default.
	ProtocolID *string
	// Properties is optional.
	Properties *Properties
	Extensions Extensions
	// CodeSubstitutes is kept verbatim; empty encodes as {}.
	CodeSubstitutes json.RawMessage
	// Code is the compiled runtime.
	Code    []byte
	Genesis Genesis

	// extra holds top level fields of a loaded chain spec that have no
	// field of their own.
	extra map[string]json.RawMessage
}

// ChainExtensions implements ExtensionsProvider.
func (s ChainSpec) ChainExtensions() *Extensions {
	return &s.Extensions
}

// Validate checks that the chain spec is complete.
func (s *ChainSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("chainspec: missing name")
	}
	if s.ID == "" {
		return fmt.Errorf("chainspec: missing id")
	}
	if err := s.ChainType.Validate(); err != nil {
		return err
	}
	if len(s.Code) == 0 {
		return ErrMissingRuntimeCode
	}
	return s.Genesis.Validate()
}

type runtimeGenesisJSON struct {
	Code       hexutil.Bytes   `json:"code"`
	Patch      json.RawMessage `json:"patch,omitempty"`
	PresetName string          `json:"presetName,omitempty"`
}

type genesisJSON struct {
	RuntimeGenesis *runtimeGenesisJSON `json:"runtimeGenesis"`
}

// chainSpecJSON is the wire form. Extensions are flattened into the top
// level object.
type chainSpecJSON struct {
	Name               string          `json:"name"`
	ID                 string          `json:"id"`
	ChainType          ChainType       `json:"chainType"`
	BootNodes          []string        `json:"bootNodes"`
	TelemetryEndpoints json.RawMessage `json:"telemetryEndpoints"`
	ProtocolID         *string         `json:"protocolId"`
	Properties         *Properties     `json:"properties"`
	RelayChain         string          `json:"relay_chain"`
	ParaID             uint32          `json:"para_id"`
	CodeSubstitutes    json.RawMessage `json:"codeSubstitutes"`
	Genesis            genesisJSON     `json:"genesis"`
}

// wireFields are the top level fields with a field of their own, under
// every accepted spelling.
var wireFields = func() map[string]bool {
	m := map[string]bool{}
	for _, names := range [][]string{
		{"name", "id", "chainType", "bootNodes", "telemetryEndpoints", "protocolId", "properties", "codeSubstitutes", "genesis"},
		relayChainAliases,
		paraIDAliases,
	} {
		for _, name := range names {
			m[name] = true
		}
	}
	return m
}()

// MarshalJSON implements json.Marshaler.
func (s ChainSpec) MarshalJSON() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	bootNodes := s.BootNodes
	if bootNodes == nil {
		bootNodes = []string{}
	}
	telemetry := s.TelemetryEndpoints
	if len(telemetry) == 0 {
		telemetry = json.RawMessage("null")
	}
	codeSubstitutes := s.CodeSubstitutes
	if len(codeSubstitutes) == 0 {
		codeSubstitutes = json.RawMessage("{}")
	}
	patch := s.Genesis.RawPatch
	if s.Genesis.Patch != nil {
		var err error
		if patch, err = json.Marshal(s.Genesis.Patch); err != nil {
			return nil, fmt.Errorf("chainspec: genesis patch: %w", err)
		}
	}

	raw, err := json.Marshal(&chainSpecJSON{
		Name:               s.Name,
		ID:                 s.ID,
		ChainType:          s.ChainType,
		BootNodes:          bootNodes,
		TelemetryEndpoints: telemetry,
		ProtocolID:         s.ProtocolID,
		Properties:         s.Properties,
		RelayChain:         s.Extensions.RelayChain,
		ParaID:             s.Extensions.ParaID,
		CodeSubstitutes:    codeSubstitutes,
		Genesis: genesisJSON{
			RuntimeGenesis: &runtimeGenesisJSON{
				Code:       s.Code,
				Patch:      patch,
				PresetName: s.Genesis.PresetName,
			},
		},
	})
	if err != nil || len(s.extra) == 0 {
		return raw, err
	}

	var fields map[string]json.RawMessage
	if err = json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	for name, v := range s.extra {
		fields[name] = v
	}
	return json.Marshal(fields)
}

// FromJSON decodes a chain spec. Extension fields may use any of their
// accepted spellings. The genesis patch and any fields without a typed
// counterpart are kept verbatim, so encoding the result reproduces the
// input.
func FromJSON(data []byte) (*ChainSpec, error) {
	var wire chainSpecJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("chainspec: %w", err)
	}
	var ext Extensions
	if err := json.Unmarshal(data, &ext); err != nil {
		return nil, fmt.Errorf("chainspec: %w", err)
	}
	if wire.Genesis.RuntimeGenesis == nil {
		return nil, fmt.Errorf("chainspec: unsupported genesis format, expected runtimeGenesis")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("chainspec: %w", err)
	}
	var extra map[string]json.RawMessage
	for name, v := range fields {
		if wireFields[name] {
			continue
		}
		if extra == nil {
			extra = make(map[string]json.RawMessage)
		}
		extra[name] = v
	}

	spec := &ChainSpec{
		Name:               wire.Name,
		ID:                 wire.ID,
		ChainType:          wire.ChainType,
		BootNodes:          wire.BootNodes,
		TelemetryEndpoints: wire.TelemetryEndpoints,
		ProtocolID:         wire.ProtocolID,
		Properties:         wire.Properties,
		Extensions:         ext,
		CodeSubstitutes:    wire.CodeSubstitutes,
		Code:               wire.Genesis.RuntimeGenesis.Code,
		Genesis: Genesis{
			RawPatch:   wire.Genesis.RuntimeGenesis.Patch,
			PresetName: wire.Genesis.RuntimeGenesis.PresetName,
		},
		extra: extra,
	}
	if isNullJSON(spec.Genesis.RawPatch) {
		spec.Genesis.RawPatch = nil
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

func isNullJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
