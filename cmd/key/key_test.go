package key

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DrW3RK/parachain-node/keys"
)

func TestInspect(t *testing.T) {
	var out bytes.Buffer
	err := Inspect(&out, "0xd43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d", keys.DefaultSS58Format)
	require.NoError(t, err)
	require.Equal(t,
		"Public key (hex):  0xd43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d\n"+
			"Account ID:        5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY\n"+
			"Aura ID:           5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY\n"+
			"SS58 format:       42\n",
		out.String())
}

func TestInspectMalformed(t *testing.T) {
	var out bytes.Buffer
	require.ErrorIs(t, Inspect(&out, "0xd435", keys.DefaultSS58Format), keys.ErrMalformedPublicKey)
	require.Error(t, Inspect(&out, "0xd43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d", 20000))
	require.Zero(t, out.Len())
}
