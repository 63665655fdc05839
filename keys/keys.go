// Package keys derives typed protocol identities from hex-encoded sr25519
// public keys.
//
// The same 32 raw bytes project into two identities that must never be
// confused: an AccountID (balance holder, sudo key, collator account) and an
// AuraID (the collator's block-production key). They are distinct named types
// so one cannot be passed where the other is expected without an explicit
// conversion.
package keys

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/oasisprotocol/oasis-core/go/common/crypto/signature"
)

// PublicKeySize is the size of an sr25519 public key in bytes.
const PublicKeySize = signature.PublicKeySize

// ErrMalformedPublicKey is the error returned when a public key cannot be
// parsed, either because it is not valid hex or because it does not decode
// to exactly PublicKeySize bytes.
var ErrMalformedPublicKey = errors.New("keys: malformed public key")

// PublicKey is a raw sr25519 public key.
type PublicKey [PublicKeySize]byte

// AccountID is the account identity of a public key. The public key is the
// account identity; no hashing is applied.
type AccountID [PublicKeySize]byte

// AuraID is the Aura block-production identity of a public key.
type AuraID [PublicKeySize]byte

// ParsePublicKey parses a hex string, optionally prefixed with "0x", into a
// public key. Anything other than exactly PublicKeySize bytes of valid hex is
// rejected.
func ParsePublicKey(s string) (PublicKey, error) {
	var pk signature.PublicKey
	if err := pk.UnmarshalHex(trimHexPrefix(s)); err != nil {
		return PublicKey{}, fmt.Errorf("%w %q: %v", ErrMalformedPublicKey, s, err)
	}
	return PublicKey(pk), nil
}

// MustParsePublicKey is ParsePublicKey for compiled-in constants. It panics
// on malformed input.
func MustParsePublicKey(s string) PublicKey {
	pk, err := ParsePublicKey(s)
	if err != nil {
		panic(err)
	}
	return pk
}

// Account returns the account identity of the public key.
func (pk PublicKey) Account() AccountID {
	return AccountID(pk)
}

// Aura returns the Aura identity of the public key.
func (pk PublicKey) Aura() AuraID {
	return AuraID(pk)
}

// String returns the 0x-prefixed hex encoding of the public key.
func (pk PublicKey) String() string {
	return fmt.Sprintf("0x%x", pk[:])
}

// PubToAccountID parses a hex public key into an account identity.
func PubToAccountID(s string) (AccountID, error) {
	pk, err := ParsePublicKey(s)
	if err != nil {
		return AccountID{}, err
	}
	return pk.Account(), nil
}

// PubToCollatorKey parses a hex public key into an Aura identity.
func PubToCollatorKey(s string) (AuraID, error) {
	pk, err := ParsePublicKey(s)
	if err != nil {
		return AuraID{}, err
	}
	return pk.Aura(), nil
}

// MustPubToAccountID is PubToAccountID for compiled-in constants.
func MustPubToAccountID(s string) AccountID {
	return MustParsePublicKey(s).Account()
}

// MustPubToCollatorKey is PubToCollatorKey for compiled-in constants.
func MustPubToCollatorKey(s string) AuraID {
	return MustParsePublicKey(s).Aura()
}

// Bytes returns a copy of the raw identity bytes.
func (a AccountID) Bytes() []byte {
	return bytes.Clone(a[:])
}

// Equal compares two account identities.
func (a AccountID) Equal(other AccountID) bool {
	return a == other
}

// String returns the SS58 encoding of the identity in the default format.
func (a AccountID) String() string {
	return EncodeSS58(DefaultSS58Format, a[:])
}

// MarshalText encodes the identity as an SS58 address.
func (a AccountID) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText decodes an SS58 address or a 0x-prefixed hex public key.
func (a *AccountID) UnmarshalText(text []byte) error {
	return unmarshalIdentity(a[:], text)
}

// Bytes returns a copy of the raw identity bytes.
func (id AuraID) Bytes() []byte {
	return bytes.Clone(id[:])
}

// Equal compares two Aura identities.
func (id AuraID) Equal(other AuraID) bool {
	return id == other
}

// String returns the SS58 encoding of the identity in the default format.
func (id AuraID) String() string {
	return EncodeSS58(DefaultSS58Format, id[:])
}

// MarshalText encodes the identity as an SS58 address.
func (id AuraID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText decodes an SS58 address or a 0x-prefixed hex public key.
func (id *AuraID) UnmarshalText(text []byte) error {
	return unmarshalIdentity(id[:], text)
}

func unmarshalIdentity(dst []byte, text []byte) error {
	s := string(text)
	if hasHexPrefix(s) {
		pk, err := ParsePublicKey(s)
		if err != nil {
			return err
		}
		copy(dst, pk[:])
		return nil
	}
	_, raw, err := DecodeSS58(s)
	if err != nil {
		return err
	}
	if len(raw) != PublicKeySize {
		return fmt.Errorf("%w: ss58 payload is %d bytes", ErrMalformedPublicKey, len(raw))
	}
	copy(dst, raw)
	return nil
}

func hasHexPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

func trimHexPrefix(s string) string {
	if hasHexPrefix(s) {
		return s[2:]
	}
	return s
}
