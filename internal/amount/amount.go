package amount

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

// MaxFractionChars is the number of characters kept after the decimal point
// while the user is typing.
const MaxFractionChars = 8

var (
	// ErrParse is returned when text is not a non-negative decimal numeral.
	ErrParse = errors.New("invalid amount")

	// ErrInvalidAmountConfiguration is returned for a decimal point outside
	// the supported set.
	ErrInvalidAmountConfiguration = errors.New("invalid amount configuration")
)

var numeralPattern = regexp.MustCompile(`^([0-9]+\.?[0-9]*|\.[0-9]+)$`)

// Sanitize drops every character that cannot appear in an amount. Digits are
// always kept, the first '.' is kept unless integerMode is set and at most
// MaxFractionChars digits survive after it.
func Sanitize(raw string, integerMode bool) string {
	var b strings.Builder
	seenPoint := false
	fraction := 0

	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9':
			if seenPoint {
				if fraction == MaxFractionChars {
					continue
				}
				fraction++
			}
			b.WriteRune(r)
		case r == '.' && !integerMode && !seenPoint:
			seenPoint = true
			b.WriteRune(r)
		}
	}

	return b.String()
}

// ToMinorUnits converts display text into minor units. ok is false when the
// text holds no amount at all ("" or ".").
func ToMinorUnits(text string, decimalPoint int) (value int64, ok bool, err error) {
	scale, err := scaleFor(decimalPoint)
	if err != nil {
		return 0, false, err
	}

	text = strings.TrimSpace(text)
	if text == "" || text == "." {
		return 0, false, nil
	}

	if !numeralPattern.MatchString(text) {
		return 0, false, fmt.Errorf("%w: %q", ErrParse, text)
	}

	if strings.HasPrefix(text, ".") {
		text = "0" + text
	}
	if strings.HasSuffix(text, ".") {
		text += "0"
	}

	r, valid := new(big.Rat).SetString(text)
	if !valid {
		return 0, false, fmt.Errorf("%w: %q", ErrParse, text)
	}
	r.Mul(r, new(big.Rat).SetInt(scale))

	n := roundHalfUp(r)
	if !n.IsInt64() {
		return 0, false, fmt.Errorf("%w: %q is out of range", ErrParse, text)
	}

	return n.Int64(), true, nil
}

// ToDisplayText renders minor units as a plain decimal string without
// separators or trailing zeros.
func ToDisplayText(minorUnits int64, decimalPoint int) (string, error) {
	scale, err := scaleFor(decimalPoint)
	if err != nil {
		return "", err
	}

	r := new(big.Rat).SetFrac(big.NewInt(minorUnits), scale)
	text := r.FloatString(decimalPoint)
	if strings.Contains(text, ".") {
		text = strings.TrimRight(text, "0")
		text = strings.TrimSuffix(text, ".")
	}

	return text, nil
}

// UnitLabel returns the label shown next to amounts for a decimal point.
func UnitLabel(decimalPoint int) (string, error) {
	unit, err := UnitForDecimalPoint(decimalPoint)
	if err != nil {
		return "", err
	}
	return unit.Label(), nil
}

// MustUnitLabel is like UnitLabel but panics on an unsupported decimal point.
func MustUnitLabel(decimalPoint int) string {
	label, err := UnitLabel(decimalPoint)
	if err != nil {
		panic(err)
	}
	return label
}

func scaleFor(decimalPoint int) (*big.Int, error) {
	if _, err := UnitForDecimalPoint(decimalPoint); err != nil {
		return nil, err
	}
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimalPoint)), nil), nil
}

// roundHalfUp rounds a non-negative rational to the nearest integer, halves
// going up.
func roundHalfUp(r *big.Rat) *big.Int {
	num := new(big.Int).Mul(r.Num(), big.NewInt(2))
	num.Add(num, r.Denom())
	den := new(big.Int).Mul(r.Denom(), big.NewInt(2))
	return num.Quo(num, den)
}
