package keys

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// DefaultSS58Format is the generic Substrate address format.
const DefaultSS58Format uint16 = 42

const (
	maxSS58Format  = 16383
	ss58ChecksumSz = 2
)

var (
	ss58Prefix = []byte("SS58PRE")

	// ErrMalformedSS58 is the error returned when an SS58 address cannot be decoded.
	ErrMalformedSS58 = errors.New("keys: malformed ss58 address")
)

// EncodeSS58 encodes a 32 byte payload as an SS58 address under the given
// address format. Formats above 16383 are not representable and panic.
func EncodeSS58(format uint16, payload []byte) string {
	prefix := ss58FormatPrefix(format)
	body := make([]byte, 0, len(prefix)+len(payload)+ss58ChecksumSz)
	body = append(body, prefix...)
	body = append(body, payload...)
	sum := ss58Checksum(body)
	body = append(body, sum[:ss58ChecksumSz]...)
	return base58.Encode(body)
}

// DecodeSS58 decodes an SS58 address holding a 32 byte payload and returns
// the address format and the payload.
func DecodeSS58(s string) (uint16, []byte, error) {
	data, err := base58.Decode(s)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrMalformedSS58, err)
	}
	if len(data) < 2 {
		return 0, nil, fmt.Errorf("%w: too short", ErrMalformedSS58)
	}

	var (
		prefixLen int
		format    uint16
	)
	switch {
	case data[0] < 64:
		prefixLen, format = 1, uint16(data[0])
	case data[0] < 128:
		lower := (data[0] << 2) | (data[1] >> 6)
		upper := data[1] & 0b0011_1111
		prefixLen, format = 2, uint16(lower)|uint16(upper)<<8
	default:
		return 0, nil, fmt.Errorf("%w: invalid prefix byte %#x", ErrMalformedSS58, data[0])
	}

	if len(data) != prefixLen+PublicKeySize+ss58ChecksumSz {
		return 0, nil, fmt.Errorf("%w: unexpected length %d", ErrMalformedSS58, len(data))
	}
	body, checksum := data[:len(data)-ss58ChecksumSz], data[len(data)-ss58ChecksumSz:]
	sum := ss58Checksum(body)
	if !bytes.Equal(sum[:ss58ChecksumSz], checksum) {
		return 0, nil, fmt.Errorf("%w: checksum mismatch", ErrMalformedSS58)
	}
	return format, bytes.Clone(body[prefixLen:]), nil
}

func ss58FormatPrefix(format uint16) []byte {
	switch {
	case format < 64:
		return []byte{byte(format)}
	case format <= maxSS58Format:
		first := byte((format&0b0000_0000_1111_1100)>>2) | 0b0100_0000
		second := byte(format>>8) | byte(format&0b0000_0000_0000_0011)<<6
		return []byte{first, second}
	default:
		panic(fmt.Sprintf("keys: ss58 format %d out of range", format))
	}
}

func ss58Checksum(body []byte) [blake2b.Size]byte {
	buf := make([]byte, 0, len(ss58Prefix)+len(body))
	buf = append(buf, ss58Prefix...)
	buf = append(buf, body...)
	return blake2b.Sum512(buf)
}

// SS58 encodes the account identity under the given address format.
func (a AccountID) SS58(format uint16) string {
	return EncodeSS58(format, a[:])
}

// SS58 encodes the Aura identity under the given address format.
func (id AuraID) SS58(format uint16) string {
	return EncodeSS58(format, id[:])
}

// ValidSS58Format reports whether format is representable as an SS58 prefix.
func ValidSS58Format(format uint64) bool {
	return format <= maxSS58Format
}
