package chainspec

import (
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/apd"

	"github.com/DrW3RK/parachain-node/config"
	"github.com/DrW3RK/parachain-node/genesis"
)

// Properties are the display properties wallets and explorers read from the
// chain spec.
type Properties struct {
	TokenSymbol   string `json:"tokenSymbol"`
	TokenDecimals uint8  `json:"tokenDecimals"`
	SS58Format    uint16 `json:"ss58Format"`

	// loaded holds every property of a loaded chain spec, so that unknown
	// ones (e.g. isEthereum) and absent ones survive encoding.
	loaded map[string]json.RawMessage
}

// MarshalJSON implements json.Marshaler.
func (p Properties) MarshalJSON() ([]byte, error) {
	typed := []struct {
		name  string
		value interface{}
		zero  bool
	}{
		{"tokenSymbol", p.TokenSymbol, p.TokenSymbol == ""},
		{"tokenDecimals", p.TokenDecimals, p.TokenDecimals == 0},
		{"ss58Format", p.SS58Format, p.SS58Format == 0},
	}

	fields := make(map[string]json.RawMessage, len(p.loaded)+len(typed))
	for name, v := range p.loaded {
		fields[name] = v
	}
	for _, f := range typed {
		if _, ok := fields[f.name]; !ok && p.loaded != nil && f.zero {
			continue
		}
		raw, err := json.Marshal(f.value)
		if err != nil {
			return nil, err
		}
		fields[f.name] = raw
	}
	return json.Marshal(fields)
}

// UnmarshalJSON implements json.Unmarshaler. Properties without a field of
// their own are kept and encoded again by MarshalJSON.
func (p *Properties) UnmarshalJSON(data []byte) error {
	var wire struct {
		TokenSymbol   string `json:"tokenSymbol"`
		TokenDecimals uint8  `json:"tokenDecimals"`
		SS58Format    uint16 `json:"ss58Format"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("properties: %w", err)
	}
	loaded := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("properties: %w", err)
	}

	*p = Properties{
		TokenSymbol:   wire.TokenSymbol,
		TokenDecimals: wire.TokenDecimals,
		SS58Format:    wire.SS58Format,
	}
	if len(loaded) > 3 || hasMissingProperty(loaded) {
		p.loaded = loaded
	}
	return nil
}

func hasMissingProperty(loaded map[string]json.RawMessage) bool {
	for _, name := range []string{"tokenSymbol", "tokenDecimals", "ss58Format"} {
		if _, ok := loaded[name]; !ok {
			return true
		}
	}
	return false
}

func unitProperties() *Properties {
	return &Properties{
		TokenSymbol:   "UNIT",
		TokenDecimals: config.DefaultTokenDecimals,
		SS58Format:    config.DefaultSS58Format,
	}
}

// FormatBalance renders a base unit amount in whole tokens, e.g.
// "0.016000000000 SUB0".
func (p *Properties) FormatBalance(b genesis.Balance) string {
	d := apd.NewWithBigInt(b.BigInt(), -int32(p.TokenDecimals))
	return d.Text('f') + " " + p.TokenSymbol
}
