package numeric

import (
	"fmt"
	"math"
	"math/big"
	"regexp"
)

const (
	// IntegerPattern and DecimalPattern describe the literal forms the lexer accepts.
	IntegerPattern = `[+-]?(?:0|[1-9][0-9]*)`
	DecimalPattern = `[+-]?(?:0|[1-9][0-9]*)\.[0-9]+`
)

var (
	integerRegex = regexp.MustCompile(`^` + IntegerPattern + `$`)
	decimalRegex = regexp.MustCompile(`^` + DecimalPattern + `$`)
)

func IsInteger(s string) bool {
	return integerRegex.MatchString(s)
}

func IsDecimal(s string) bool {
	return decimalRegex.MatchString(s)
}

// StringToBigInt parses an integer literal, including a leading sign.
func StringToBigInt(s string) (*big.Int, error) {
	value, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid integer literal: %s", s)
	}
	return value, nil
}

// FitsInBitSize checks whether value is representable in a two's complement
// (signed) or plain binary (unsigned) integer of bitSize bits.
func FitsInBitSize(value *big.Int, bitSize int, signed bool) bool {
	if signed {
		// Signed range: -2^(bitSize-1) to 2^(bitSize-1) - 1
		min := new(big.Int).Lsh(big.NewInt(-1), uint(bitSize-1))
		max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(bitSize-1)), big.NewInt(1))
		return value.Cmp(min) >= 0 && value.Cmp(max) <= 0
	}
	// Unsigned range: 0 to 2^bitSize - 1
	if value.Sign() < 0 {
		return false
	}
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(bitSize)), big.NewInt(1))
	return value.Cmp(max) <= 0
}

// ToMachineInt truncates value to its low 32 bits, as a host int conversion does.
func ToMachineInt(value *big.Int) int {
	low := new(big.Int).And(value, big.NewInt(math.MaxUint32)).Uint64()
	return int(int32(uint32(low)))
}

// numeric to ordinal: 1 -> 1st, 2 -> 2nd, 3 -> 3rd, 4 -> 4th, etc.
func NumericToOrdinal(n int) string {
	if n <= 0 {
		return ""
	}

	// Handle special cases for 11, 12, 13
	switch n % 100 {
	case 11, 12, 13:
		return fmt.Sprintf("%dth", n)
	}

	switch n % 10 {
	case 1:
		return fmt.Sprintf("%dst", n)
	case 2:
		return fmt.Sprintf("%dnd", n)
	case 3:
		return fmt.Sprintf("%drd", n)
	default:
		return fmt.Sprintf("%dth", n)
	}
}
