package genesis

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/oasisprotocol/oasis-core/go/common/quantity"
)

// Balance is a non-negative token amount in base units. It serializes as a
// bare JSON number, which is what the runtime's u128 balance type accepts.
type Balance struct {
	q *quantity.Quantity
}

// NewBalance creates a balance from a uint64 amount.
func NewBalance(v uint64) Balance {
	return Balance{q: quantity.NewFromUint64(v)}
}

// Quantity returns a copy of the underlying quantity.
func (b Balance) Quantity() *quantity.Quantity {
	if b.q == nil {
		return quantity.NewQuantity()
	}
	return b.q.Clone()
}

// BigInt returns the balance as a big.Int.
func (b Balance) BigInt() *big.Int {
	return b.Quantity().ToBigInt()
}

// Mul returns b * n.
func (b Balance) Mul(n uint64) (Balance, error) {
	q := b.Quantity()
	if err := q.Mul(quantity.NewFromUint64(n)); err != nil {
		return Balance{}, fmt.Errorf("balance multiply: %w", err)
	}
	return Balance{q: q}, nil
}

// Cmp compares two balances.
func (b Balance) Cmp(other Balance) int {
	return b.Quantity().Cmp(other.Quantity())
}

func (b Balance) String() string {
	return b.Quantity().String()
}

// MarshalJSON encodes the balance as a JSON number.
func (b Balance) MarshalJSON() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalJSON accepts either a JSON number or a decimal string.
func (b *Balance) UnmarshalJSON(data []byte) error {
	q := quantity.NewQuantity()
	if err := q.UnmarshalText(bytes.Trim(data, `"`)); err != nil {
		return fmt.Errorf("balance: %w", err)
	}
	b.q = q
	return nil
}
