package config

// Live network constants. They seed DefaultLiveConfig and can be overridden
// from a config file or the environment without a rebuild.
const (
	// RootAccount holds sudo privileges.
	RootAccount = "0xf8cb76d7f3bcfe13fa74ec9582ee96fd4c559906f3da0b65fd24f7eb42632246"

	// Collator accounts produce blocks and earn rewards. Their private keys
	// are typically kept in cold storage.
	Collator1 = "0xc4f2fbd1c30d8b84af3a5877afb24108e3c3050758477a1a5af2cde7efb2e444"
	Collator2 = "0x6ad577d8b96b340abe1a6f86837d41c0040fe7e9b3f00fcd926cf0b4fe388c2f"

	// The private keys of these session keys must be inserted into the
	// collator nodes before they can produce blocks.
	Session1 = "0x64c0ac9ed7dbb5e818898610ea14277fa9b7baccc86e947df940a984a70bfe7e"
	Session2 = "0xa01476431a8d51d2826284c5dfcf32837f581d44ad1fc0bf55e4330e34b2020b"

	LiveName       = "Sub0 Reset"
	LiveID         = "live"
	LiveProtocolID = "sub0-reset-live"
	LiveRelayChain = "paseo"
	// LiveParaID MUST match the para id registered on the relay chain.
	LiveParaID uint32 = 4540

	LiveTokenSymbol          = "SUB0"
	DefaultTokenDecimals     = 12
	DefaultSS58Format uint16 = 42
)

// DefaultLiveConfig returns the configuration of the live network.
func DefaultLiveConfig() *LiveConfig {
	return &LiveConfig{
		Name:       LiveName,
		ID:         LiveID,
		ProtocolID: LiveProtocolID,
		RelayChain: LiveRelayChain,
		ParaID:     LiveParaID,
		Properties: PropertiesConfig{
			TokenSymbol:   LiveTokenSymbol,
			TokenDecimals: DefaultTokenDecimals,
			SS58Format:    DefaultSS58Format,
		},
		Collators: []CollatorConfig{
			{Account: Collator1, Session: Session1},
			{Account: Collator2, Session: Session2},
		},
		Endowed: []string{Collator1, Collator2, RootAccount},
		Root:    RootAccount,
	}
}

// defaultsMap is DefaultLiveConfig in the shape koanf loads, so that file and
// environment values override it key by key while lists are replaced whole.
func defaultsMap() map[string]interface{} {
	def := DefaultLiveConfig()
	collators := make([]interface{}, 0, len(def.Collators))
	for _, c := range def.Collators {
		collators = append(collators, map[string]interface{}{
			"account": c.Account,
			"session": c.Session,
		})
	}
	endowed := make([]interface{}, 0, len(def.Endowed))
	for _, e := range def.Endowed {
		endowed = append(endowed, e)
	}
	return map[string]interface{}{
		"chain_spec": map[string]interface{}{
			"live": map[string]interface{}{
				"name":        def.Name,
				"id":          def.ID,
				"protocol_id": def.ProtocolID,
				"relay_chain": def.RelayChain,
				"para_id":     def.ParaID,
				"properties": map[string]interface{}{
					"token_symbol":   def.Properties.TokenSymbol,
					"token_decimals": def.Properties.TokenDecimals,
					"ss58_format":    def.Properties.SS58Format,
				},
				"collators": collators,
				"endowed":   endowed,
				"root":      def.Root,
			},
		},
	}
}
