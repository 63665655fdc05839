package chainspec

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Extensions is the parachain metadata attached to every chain spec. The
// collator reads it to find the relay chain it belongs to.
type Extensions struct {
	// RelayChain is the name of the relay chain.
	RelayChain string `json:"relay_chain"`
	// ParaID is the id of the parachain.
	ParaID uint32 `json:"para_id"`
}

var (
	relayChainAliases = []string{"relay_chain", "relayChain", "RelayChain"}
	paraIDAliases     = []string{"para_id", "paraId", "ParaId"}
)

// UnmarshalJSON implements json.Unmarshaler. Each field is accepted under its
// canonical name or its camel case and Pascal case aliases. Unknown fields
// are ignored, so a whole chain spec can be decoded into Extensions.
func (e *Extensions) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("extensions: %w", err)
	}

	var ext Extensions
	if err := decodeAliased(fields, relayChainAliases, &ext.RelayChain); err != nil {
		return err
	}
	if err := decodeAliased(fields, paraIDAliases, &ext.ParaID); err != nil {
		return err
	}
	*e = ext
	return nil
}

func decodeAliased(fields map[string]json.RawMessage, aliases []string, dst interface{}) error {
	var (
		found string
		raw   json.RawMessage
	)
	for _, name := range aliases {
		v, ok := fields[name]
		if !ok {
			continue
		}
		if found != "" {
			return fmt.Errorf("extensions: duplicate field `%s` (also given as `%s`)", aliases[0], name)
		}
		found, raw = name, v
	}
	if found == "" {
		return fmt.Errorf("extensions: missing field `%s`", aliases[0])
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return fmt.Errorf("extensions: field `%s` is null", found)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("extensions: field `%s`: %w", found, err)
	}
	return nil
}

// ExtensionsProvider is implemented by chain specs that carry Extensions.
type ExtensionsProvider interface {
	ChainExtensions() *Extensions
}

// TryGetExtensions returns the extensions of the given chain spec, if it
// has any. It accepts typed specs (anything implementing
// ExtensionsProvider, or Extensions itself) as well as undecoded chain spec
// JSON and generic maps decoded from it.
func TryGetExtensions(spec interface{}) (*Extensions, bool) {
	var raw []byte
	switch v := spec.(type) {
	case nil:
		return nil, false
	case *Extensions:
		return v, v != nil
	case Extensions:
		return &v, true
	case *ChainSpec:
		if v == nil {
			return nil, false
		}
		return v.ChainExtensions(), true
	case ExtensionsProvider:
		ext := v.ChainExtensions()
		return ext, ext != nil
	case json.RawMessage:
		raw = v
	case []byte:
		raw = v
	case map[string]interface{}:
		var err error
		if raw, err = json.Marshal(v); err != nil {
			return nil, false
		}
	default:
		return nil, false
	}

	var ext Extensions
	if err := json.Unmarshal(raw, &ext); err != nil {
		return nil, false
	}
	return &ext, true
}
