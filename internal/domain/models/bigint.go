package models

import (
	"database/sql/driver"
	"fmt"
	"math/big"
)

// BigInt is an arbitrary-precision integer used for prices and volumes,
// stored in Postgres as NUMERIC(78,0) and serialized to JSON as a decimal
// string. Monetary sums never go through floating point.
type BigInt struct {
	v big.Int
}

// NewBigInt returns a BigInt holding the given int64 value.
func NewBigInt(x int64) BigInt {
	var b BigInt
	b.v.SetInt64(x)
	return b
}

// NewBigIntFromString parses a base-10 string into a BigInt.
func NewBigIntFromString(s string) (BigInt, error) {
	var b BigInt
	if _, ok := b.v.SetString(s, 10); !ok {
		return BigInt{}, fmt.Errorf("invalid integer string %q", s)
	}
	return b, nil
}

// Int returns a copy of the underlying big.Int.
func (b BigInt) Int() *big.Int {
	return new(big.Int).Set(&b.v)
}

// Sign returns -1, 0, or +1 depending on the sign of the value.
func (b BigInt) Sign() int { return b.v.Sign() }

// Cmp compares b and other, returning -1, 0, or +1.
func (b BigInt) Cmp(other BigInt) int { return b.v.Cmp(&other.v) }

// Add returns b + other without mutating either operand.
func (b BigInt) Add(other BigInt) BigInt {
	var out BigInt
	out.v.Add(&b.v, &other.v)
	return out
}

func (b BigInt) String() string { return b.v.String() }

// Scan implements sql.Scanner. NUMERIC columns arrive as []byte or string.
func (b *BigInt) Scan(src any) error {
	switch s := src.(type) {
	case nil:
		b.v.SetInt64(0)
		return nil
	case int64:
		b.v.SetInt64(s)
		return nil
	case []byte:
		return b.setString(string(s))
	case string:
		return b.setString(s)
	default:
		return fmt.Errorf("cannot scan %T into BigInt", src)
	}
}

// Value implements driver.Valuer; the value travels as a decimal string.
func (b BigInt) Value() (driver.Value, error) {
	return b.v.String(), nil
}

// MarshalJSON encodes the value as a JSON string to avoid precision loss
// in JavaScript clients.
func (b BigInt) MarshalJSON() ([]byte, error) {
	return []byte(`"` + b.v.String() + `"`), nil
}

// UnmarshalJSON accepts both a JSON string and a bare number.
func (b *BigInt) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return b.setString(s)
}

func (b *BigInt) setString(s string) error {
	if s == "" {
		b.v.SetInt64(0)
		return nil
	}
	if _, ok := b.v.SetString(s, 10); !ok {
		return fmt.Errorf("invalid integer string %q", s)
	}
	return nil
}
