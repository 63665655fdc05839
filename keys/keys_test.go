package keys

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	// Well-known //Alice sr25519 development key.
	aliceHex  = "0xd43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"
	aliceSS58 = "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"

	collatorHex = "0xc4f2fbd1c30d8b84af3a5877afb24108e3c3050758477a1a5af2cde7efb2e444"
)

func TestParsePublicKey(t *testing.T) {
	pk, err := ParsePublicKey(aliceHex)
	require.NoError(t, err)
	require.Equal(t, aliceHex, pk.String())

	// The prefix is optional and case-insensitive.
	unprefixed, err := ParsePublicKey(strings.TrimPrefix(aliceHex, "0x"))
	require.NoError(t, err)
	require.Equal(t, pk, unprefixed)

	upper, err := ParsePublicKey("0X" + strings.ToUpper(aliceHex[2:]))
	require.NoError(t, err)
	require.Equal(t, pk, upper)
}

func TestParsePublicKeyMalformed(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"prefix only", "0x"},
		{"not hex", "0xzz3593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"},
		{"odd length", aliceHex[:len(aliceHex)-1]},
		{"too short", aliceHex[:len(aliceHex)-2]},
		{"too long", aliceHex + "00"},
		{"64 bytes", aliceHex + aliceHex[2:]},
		{"double prefix", "0x" + aliceHex},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParsePublicKey(tc.input)
			require.ErrorIs(t, err, ErrMalformedPublicKey)

			_, err = PubToAccountID(tc.input)
			require.ErrorIs(t, err, ErrMalformedPublicKey)

			_, err = PubToCollatorKey(tc.input)
			require.ErrorIs(t, err, ErrMalformedPublicKey)

			require.Panics(t, func() { MustPubToAccountID(tc.input) })
			require.Panics(t, func() { MustPubToCollatorKey(tc.input) })
		})
	}
}

func TestAccountAndAuraAreDistinct(t *testing.T) {
	account, err := PubToAccountID(collatorHex)
	require.NoError(t, err)
	aura, err := PubToCollatorKey(collatorHex)
	require.NoError(t, err)

	// Same bytes...
	require.Equal(t, account.Bytes(), aura.Bytes())
	require.Equal(t, [PublicKeySize]byte(account), [PublicKeySize]byte(aura))

	// ...but not interchangeable.
	accountType, auraType := reflect.TypeOf(account), reflect.TypeOf(aura)
	require.NotEqual(t, accountType, auraType)
	require.False(t, accountType.AssignableTo(auraType))
	require.False(t, auraType.AssignableTo(accountType))

	var anyAccount interface{} = account
	_, ok := anyAccount.(AuraID)
	require.False(t, ok)
}

func TestBytesIsACopy(t *testing.T) {
	account := MustPubToAccountID(aliceHex)
	b := account.Bytes()
	b[0] ^= 0xff
	require.Equal(t, MustPubToAccountID(aliceHex), account)
}

func TestIdentityText(t *testing.T) {
	account := MustPubToAccountID(aliceHex)
	require.Equal(t, aliceSS58, account.String())

	aura := MustPubToCollatorKey(aliceHex)
	require.Equal(t, aliceSS58, aura.String())

	encoded, err := json.Marshal(struct {
		Account AccountID `json:"account"`
		Aura    AuraID    `json:"aura"`
	}{account, aura})
	require.NoError(t, err)
	require.JSONEq(t, `{"account":"`+aliceSS58+`","aura":"`+aliceSS58+`"}`, string(encoded))

	var fromSS58 AccountID
	require.NoError(t, fromSS58.UnmarshalText([]byte(aliceSS58)))
	require.Equal(t, account, fromSS58)

	var fromHex AuraID
	require.NoError(t, fromHex.UnmarshalText([]byte(aliceHex)))
	require.Equal(t, aura, fromHex)

	var bad AccountID
	require.Error(t, bad.UnmarshalText([]byte("not-an-address")))
	require.ErrorIs(t, bad.UnmarshalText([]byte("0x1234")), ErrMalformedPublicKey)
}

func TestSS58RoundTrip(t *testing.T) {
	pk := MustParsePublicKey(collatorHex)
	for _, format := range []uint16{0, 2, 42, 63, 64, 1284, maxSS58Format} {
		addr := EncodeSS58(format, pk[:])
		gotFormat, payload, err := DecodeSS58(addr)
		require.NoError(t, err, "format %d", format)
		require.Equal(t, format, gotFormat)
		require.Equal(t, pk[:], payload)
	}
	require.Panics(t, func() { EncodeSS58(maxSS58Format+1, pk[:]) })
	require.True(t, ValidSS58Format(42))
	require.False(t, ValidSS58Format(maxSS58Format+1))
}

func TestSS58Checksum(t *testing.T) {
	// Flip the last character; the checksum no longer matches.
	last := aliceSS58[len(aliceSS58)-1]
	replacement := byte('Z')
	if last == replacement {
		replacement = 'Y'
	}
	tampered := aliceSS58[:len(aliceSS58)-1] + string(replacement)
	_, _, err := DecodeSS58(tampered)
	require.ErrorIs(t, err, ErrMalformedSS58)

	_, _, err = DecodeSS58("0OIl")
	require.ErrorIs(t, err, ErrMalformedSS58)
}
