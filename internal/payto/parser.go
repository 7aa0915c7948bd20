// Package payto parses the free text typed into a "pay to" field into
// recipients and amounts.
package payto

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"rhystmorgan/btcterm/internal/amount"
)

var (
	// ErrParse is returned for a line that is not a usable recipient.
	ErrParse = errors.New("unparsable pay-to line")

	ErrInvalidAddress = errors.New("invalid address")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrNoRecipients   = errors.New("no recipients")
)

// aliasPattern matches "label <address>". Only the bracketed part is
// validated as an address.
var aliasPattern = regexp.MustCompile(`^(.*?)\s*<([0-9A-Za-z]{26,})>$`)

// AddressValidator reports whether a string is a usable address.
type AddressValidator interface {
	IsValid(address string) bool
}

// ValidatorFunc adapts a plain function to AddressValidator.
type ValidatorFunc func(address string) bool

func (f ValidatorFunc) IsValid(address string) bool {
	return f(address)
}

// Output is a single recipient with its amount in minor units.
type Output struct {
	Address string
	Amount  int64
}

type Mode int

const (
	ModeEmpty Mode = iota
	ModeSingle
	ModeMulti
)

func (m Mode) String() string {
	switch m {
	case ModeEmpty:
		return "empty"
	case ModeSingle:
		return "single"
	case ModeMulti:
		return "multi"
	default:
		return "unknown"
	}
}

// Result is the classification of the whole field. Address is set in
// ModeSingle, Outputs and Total in ModeMulti.
type Result struct {
	Mode    Mode
	Address string
	Outputs []Output
	Total   int64
}

// SplitLines splits text on line breaks and drops blank lines.
func SplitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// SplitAlias splits "label <address>" into its parts. ok is false when text
// is not in the alias form.
func SplitAlias(text string) (label, address string, ok bool) {
	m := aliasPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return "", "", false
	}
	return strings.TrimSpace(m[1]), m[2], true
}

// ParseAddress trims text and validates it as an address, accepting the
// alias form "label <address>".
func ParseAddress(text string, validator AddressValidator) (string, error) {
	addr := strings.TrimSpace(text)
	if m := aliasPattern.FindStringSubmatch(addr); m != nil {
		addr = m[2]
	}

	if addr == "" || !validator.IsValid(addr) {
		return "", fmt.Errorf("%w: %w %q", ErrParse, ErrInvalidAddress, addr)
	}

	return addr, nil
}

// ParseAddressAmountLine parses "address, amount" with the amount expressed
// in unit.
func ParseAddressAmountLine(line string, validator AddressValidator, unit amount.Unit) (Output, error) {
	addrText, amountText, found := strings.Cut(line, ",")
	if !found {
		return Output{}, fmt.Errorf("%w: missing amount in %q", ErrParse, line)
	}

	addr, err := ParseAddress(addrText, validator)
	if err != nil {
		return Output{}, err
	}

	value, ok, err := unit.ToMinorUnits(amountText)
	if err != nil {
		return Output{}, fmt.Errorf("%w: %w: %w", ErrParse, ErrInvalidAmount, err)
	}
	if !ok {
		return Output{}, fmt.Errorf("%w: %w: empty amount", ErrParse, ErrInvalidAmount)
	}

	return Output{Address: addr, Amount: value}, nil
}

// Classify decides between a single bare address and a list of
// "address, amount" lines. A lone line is only ever tried as a bare address
// first; lines that fail to parse in the list are skipped.
func Classify(lines []string, validator AddressValidator, unit amount.Unit) Result {
	if len(lines) == 0 {
		return Result{Mode: ModeEmpty}
	}

	if len(lines) == 1 {
		if addr, err := ParseAddress(lines[0], validator); err == nil {
			return Result{Mode: ModeSingle, Address: addr}
		}
	}

	result := Result{Mode: ModeMulti}
	for i, line := range lines {
		output, err := ParseAddressAmountLine(line, validator, unit)
		if err != nil {
			log.Tracef("Skipping pay-to line %d: %v", i+1, err)
			continue
		}
		if output.Amount > math.MaxInt64-result.Total {
			log.Debugf("Skipping pay-to line %d: total overflows", i+1)
			continue
		}

		result.Outputs = append(result.Outputs, output)
		result.Total += output.Amount
	}

	return result
}
