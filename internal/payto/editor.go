package payto

import (
	"fmt"
	"strings"

	"rhystmorgan/btcterm/internal/amount"
)

// AmountField is the companion amount input the editor drives.
type AmountField interface {
	SetAmount(minorUnits int64)
	Clear()
	SetFrozen(frozen bool)
	// Amount returns the current value; ok is false when nothing is entered.
	Amount() (minorUnits int64, ok bool, err error)
}

// Editor keeps the classification of a pay-to field in sync with its text.
// Every SetText reclassifies from scratch.
type Editor struct {
	amountField AmountField
	validator   AddressValidator
	unit        amount.Unit

	text   string
	lines  []string
	result Result

	// ownsAmount is set while the amount field shows a total written here.
	ownsAmount bool
}

func NewEditor(amountField AmountField, validator AddressValidator, unit amount.Unit) *Editor {
	return &Editor{
		amountField: amountField,
		validator:   validator,
		unit:        unit,
		result:      Result{Mode: ModeEmpty},
	}
}

// SetUnit changes the unit used for amounts in lines and reclassifies.
func (e *Editor) SetUnit(unit amount.Unit) {
	e.unit = unit
	e.SetText(e.text)
}

// SetText reclassifies text and updates the amount field to match.
func (e *Editor) SetText(text string) Result {
	e.text = text
	e.lines = SplitLines(text)
	previous := e.result.Mode
	e.result = Classify(e.lines, e.validator, e.unit)

	switch e.result.Mode {
	case ModeSingle:
		e.releaseAmount()
		e.amountField.SetFrozen(false)

	case ModeMulti:
		if e.result.Total > 0 {
			e.amountField.SetAmount(e.result.Total)
			e.ownsAmount = true
		} else {
			e.releaseAmount()
		}
		e.amountField.SetFrozen(e.result.Total > 0 || len(e.lines) > 1)

	default:
		e.releaseAmount()
		e.amountField.SetFrozen(false)
	}

	if previous != e.result.Mode {
		log.Debugf("Pay-to mode %s -> %s", previous, e.result.Mode)
	}

	return e.result
}

// releaseAmount clears a total previously written into the amount field, so
// an amount typed by the user is never discarded.
func (e *Editor) releaseAmount() {
	if e.ownsAmount {
		e.amountField.Clear()
		e.ownsAmount = false
	}
}

func (e *Editor) Text() string {
	return e.text
}

func (e *Editor) Result() Result {
	return e.result
}

func (e *Editor) Mode() Mode {
	return e.result.Mode
}

// IsMultiline reports whether the raw text spans more than one line,
// blank lines included.
func (e *Editor) IsMultiline() bool {
	return strings.Contains(e.text, "\n")
}

// Outputs resolves the recipients for submission. In single mode the
// address is validated again and the amount is read from the amount field
// now, so edits made after the address was entered are honoured.
func (e *Editor) Outputs() ([]Output, error) {
	switch e.result.Mode {
	case ModeSingle:
		if !e.validator.IsValid(e.result.Address) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidAddress, e.result.Address)
		}

		value, ok, err := e.amountField.Amount()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidAmount, err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: no amount entered", ErrInvalidAmount)
		}

		return []Output{{Address: e.result.Address, Amount: value}}, nil

	case ModeMulti:
		if len(e.result.Outputs) == 0 {
			return nil, ErrNoRecipients
		}
		outputs := make([]Output, len(e.result.Outputs))
		copy(outputs, e.result.Outputs)
		return outputs, nil

	default:
		return nil, ErrNoRecipients
	}
}
