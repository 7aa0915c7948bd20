package amount

import (
	"fmt"
	"strings"
)

// Unit selects how many minor-unit digits a displayed amount carries.
type Unit int

const (
	UnitBTC      Unit = 8
	UnitMilliBTC Unit = 5
)

// UnitForDecimalPoint validates a decimal point against the supported units.
func UnitForDecimalPoint(decimalPoint int) (Unit, error) {
	switch Unit(decimalPoint) {
	case UnitBTC, UnitMilliBTC:
		return Unit(decimalPoint), nil
	default:
		return 0, fmt.Errorf("%w: decimal point %d (must be 5 or 8)", ErrInvalidAmountConfiguration, decimalPoint)
	}
}

// ParseUnit parses a unit label such as "BTC" or "mBTC".
func ParseUnit(label string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "btc":
		return UnitBTC, nil
	case "mbtc":
		return UnitMilliBTC, nil
	default:
		return 0, fmt.Errorf("%w: unit %q (must be BTC or mBTC)", ErrInvalidAmountConfiguration, label)
	}
}

func (u Unit) DecimalPoint() int {
	return int(u)
}

func (u Unit) Label() string {
	switch u {
	case UnitBTC:
		return "BTC"
	case UnitMilliBTC:
		return "mBTC"
	default:
		return "?"
	}
}

func (u Unit) String() string {
	return u.Label()
}

// ToMinorUnits converts display text in this unit to minor units.
func (u Unit) ToMinorUnits(text string) (int64, bool, error) {
	return ToMinorUnits(text, u.DecimalPoint())
}

// ToDisplayText renders minor units in this unit. An invalid Unit renders
// the raw minor-unit count.
func (u Unit) ToDisplayText(minorUnits int64) string {
	text, err := ToDisplayText(minorUnits, u.DecimalPoint())
	if err != nil {
		return fmt.Sprintf("%d", minorUnits)
	}
	return text
}
