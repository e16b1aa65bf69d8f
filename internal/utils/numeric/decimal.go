package numeric

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/cockroachdb/apd/v3"
)

// decimalPrecision bounds the coefficient of any intermediate decimal result.
// Exceeding it is an error rather than a silent rounding.
const decimalPrecision = 1000

var (
	ErrDivisionByZero   = errors.New("division by zero")
	ErrNegativeExponent = errors.New("negative exponent")
)

// exact performs operations that must not round; Inexact is trapped.
var exact = func() *apd.Context {
	ctx := apd.BaseContext.WithPrecision(decimalPrecision)
	ctx.Rounding = apd.RoundHalfEven
	ctx.Traps |= apd.Inexact
	return ctx
}()

// StringToDecimal parses a decimal literal, keeping its scale ("1.0" stays "1.0").
func StringToDecimal(s string) (*apd.Decimal, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid decimal literal: %s", s)
	}
	return d, nil
}

// IsFiniteDouble reports whether d is within the range of a 64-bit float.
func IsFiniteDouble(d *apd.Decimal) bool {
	if d.Form != apd.Finite {
		return false
	}
	_, err := d.Float64()
	return err == nil
}

func AddDecimal(x, y *apd.Decimal) (*apd.Decimal, error) {
	d := new(apd.Decimal)
	if _, err := exact.Add(d, x, y); err != nil {
		return nil, err
	}
	return d, nil
}

func SubDecimal(x, y *apd.Decimal) (*apd.Decimal, error) {
	d := new(apd.Decimal)
	if _, err := exact.Sub(d, x, y); err != nil {
		return nil, err
	}
	return d, nil
}

func MulDecimal(x, y *apd.Decimal) (*apd.Decimal, error) {
	d := new(apd.Decimal)
	if _, err := exact.Mul(d, x, y); err != nil {
		return nil, err
	}
	return d, nil
}

// QuoDecimal divides x by y, rounding half to even at x's scale.
func QuoDecimal(x, y *apd.Decimal) (*apd.Decimal, error) {
	if y.IsZero() {
		return nil, ErrDivisionByZero
	}
	// x/y at exponent ex has coefficient cx / (cy * 10^ey).
	num := coefficient(x)
	den := coefficient(y)
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(abs32(y.Exponent))), nil)
	if y.Exponent >= 0 {
		den.Mul(den, scale)
	} else {
		num.Mul(num, scale)
	}
	return fromCoefficient(quoHalfEven(num, den), x.Exponent)
}

// PowDecimal raises x to a non-negative integer power exactly.
func PowDecimal(x *apd.Decimal, n int) (*apd.Decimal, error) {
	if n < 0 {
		return nil, ErrNegativeExponent
	}
	result := apd.New(1, 0)
	base := new(apd.Decimal).Set(x)
	for n > 0 {
		if n&1 == 1 {
			if _, err := exact.Mul(result, result, base); err != nil {
				return nil, err
			}
		}
		n >>= 1
		if n > 0 {
			if _, err := exact.Mul(base, base, base); err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

// PowInteger raises x to a non-negative power.
func PowInteger(x *big.Int, n int) (*big.Int, error) {
	if n < 0 {
		return nil, ErrNegativeExponent
	}
	return new(big.Int).Exp(x, big.NewInt(int64(n)), nil), nil
}

// QuoInteger is truncating division.
func QuoInteger(x, y *big.Int) (*big.Int, error) {
	if y.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	return new(big.Int).Quo(x, y), nil
}

// quoHalfEven divides num by den, rounding ties to the even neighbour.
func quoHalfEven(num, den *big.Int) *big.Int {
	q, r := new(big.Int).QuoRem(num, den, new(big.Int))
	if r.Sign() == 0 {
		return q
	}
	twice := new(big.Int).Abs(r)
	twice.Lsh(twice, 1)
	cmp := twice.Cmp(new(big.Int).Abs(den))
	if cmp > 0 || (cmp == 0 && q.Bit(0) == 1) {
		if (num.Sign() < 0) != (den.Sign() < 0) {
			q.Sub(q, big.NewInt(1))
		} else {
			q.Add(q, big.NewInt(1))
		}
	}
	return q
}

func coefficient(d *apd.Decimal) *big.Int {
	c, _ := new(big.Int).SetString(d.Coeff.String(), 10)
	if d.Negative {
		c.Neg(c)
	}
	return c
}

func fromCoefficient(c *big.Int, exponent int32) (*apd.Decimal, error) {
	d, _, err := apd.NewFromString(fmt.Sprintf("%sE%d", c.String(), exponent))
	return d, err
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
