package payto

import (
	"errors"
	"testing"

	"rhystmorgan/btcterm/internal/amount"
)

type fakeAmountField struct {
	value  int64
	set    bool
	frozen bool
	err    error
}

func (f *fakeAmountField) SetAmount(minorUnits int64) {
	f.value = minorUnits
	f.set = true
}

func (f *fakeAmountField) Clear() {
	f.value = 0
	f.set = false
}

func (f *fakeAmountField) SetFrozen(frozen bool) {
	f.frozen = frozen
}

func (f *fakeAmountField) Amount() (int64, bool, error) {
	if f.err != nil {
		return 0, false, f.err
	}
	return f.value, f.set, nil
}

func TestEditorSingleRecipient(t *testing.T) {
	field := &fakeAmountField{}
	editor := NewEditor(field, mainnet, amount.UnitBTC)

	result := editor.SetText(genesisAddr)
	if result.Mode != ModeSingle {
		t.Fatalf("mode = %s, want single", result.Mode)
	}
	if field.frozen {
		t.Error("amount field should be editable for a single recipient")
	}

	// The amount is read at resolution time.
	field.SetAmount(42000)
	outputs, err := editor.Outputs()
	if err != nil {
		t.Fatalf("Outputs error: %v", err)
	}
	if len(outputs) != 1 || outputs[0] != (Output{Address: genesisAddr, Amount: 42000}) {
		t.Errorf("outputs = %+v", outputs)
	}

	field.SetAmount(50000)
	outputs, _ = editor.Outputs()
	if outputs[0].Amount != 50000 {
		t.Errorf("amount edit after address entry not honoured: %+v", outputs)
	}
}

func TestEditorSingleRecipientInvalidAmount(t *testing.T) {
	field := &fakeAmountField{}
	editor := NewEditor(field, mainnet, amount.UnitBTC)
	editor.SetText(genesisAddr)

	if _, err := editor.Outputs(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("missing amount error = %v, want ErrInvalidAmount", err)
	}

	field.err = amount.ErrParse
	_, err := editor.Outputs()
	if !errors.Is(err, ErrInvalidAmount) || !errors.Is(err, amount.ErrParse) {
		t.Errorf("bad amount error = %v", err)
	}
}

func TestEditorSingleRecipientRevalidates(t *testing.T) {
	valid := true
	validator := ValidatorFunc(func(addr string) bool { return valid && addr == genesisAddr })

	field := &fakeAmountField{}
	editor := NewEditor(field, validator, amount.UnitBTC)
	editor.SetText(genesisAddr)
	field.SetAmount(1)

	valid = false
	if _, err := editor.Outputs(); !errors.Is(err, ErrInvalidAddress) {
		t.Errorf("error = %v, want ErrInvalidAddress", err)
	}
}

func TestEditorMultiRecipient(t *testing.T) {
	field := &fakeAmountField{}
	editor := NewEditor(field, mainnet, amount.UnitBTC)

	text := genesisAddr + ", 0.001\ngarbage line\n" + boatAddr + ", 0.002"
	result := editor.SetText(text)
	if result.Mode != ModeMulti {
		t.Fatalf("mode = %s, want multi", result.Mode)
	}
	if !field.frozen {
		t.Error("amount field should be frozen while it shows the total")
	}
	if !field.set || field.value != 300000 {
		t.Errorf("amount field = (%d, %v), want total 300000", field.value, field.set)
	}
	if !editor.IsMultiline() {
		t.Error("expected multiline")
	}

	outputs, err := editor.Outputs()
	if err != nil {
		t.Fatalf("Outputs error: %v", err)
	}
	if len(outputs) != 2 {
		t.Fatalf("outputs = %+v", outputs)
	}

	// Mutating the returned slice must not affect the editor.
	outputs[0].Amount = 1
	again, _ := editor.Outputs()
	if again[0].Amount != 100000 {
		t.Error("Outputs returned shared storage")
	}
}

func TestEditorMultiLineWithoutValidPairs(t *testing.T) {
	field := &fakeAmountField{}
	editor := NewEditor(field, mainnet, amount.UnitBTC)

	editor.SetText("garbage\nmore garbage")
	if !field.frozen {
		t.Error("amount field should be frozen when several lines are present")
	}
	if field.set {
		t.Error("amount field should be empty")
	}
	if _, err := editor.Outputs(); !errors.Is(err, ErrNoRecipients) {
		t.Errorf("error = %v, want ErrNoRecipients", err)
	}
}

func TestEditorKeepsTypedAmountWhileTyping(t *testing.T) {
	field := &fakeAmountField{}
	editor := NewEditor(field, mainnet, amount.UnitBTC)

	field.SetAmount(777)
	editor.SetText("1A1z")
	if !field.set || field.value != 777 {
		t.Error("typed amount was discarded by partial address input")
	}
	if field.frozen {
		t.Error("single partial line should leave the amount editable")
	}
}

func TestEditorReleasesTotal(t *testing.T) {
	field := &fakeAmountField{}
	editor := NewEditor(field, mainnet, amount.UnitBTC)

	editor.SetText(genesisAddr + ", 1\n" + boatAddr + ", 2")
	if field.value != 300000000 {
		t.Fatalf("total = %d", field.value)
	}

	editor.SetText(genesisAddr)
	if field.set {
		t.Error("total should be cleared when switching to a single recipient")
	}
	if field.frozen {
		t.Error("amount should be unlocked for a single recipient")
	}

	editor.SetText("")
	if editor.Mode() != ModeEmpty {
		t.Errorf("mode = %s, want empty", editor.Mode())
	}
	if _, err := editor.Outputs(); !errors.Is(err, ErrNoRecipients) {
		t.Errorf("error = %v, want ErrNoRecipients", err)
	}
}

func TestEditorSetUnit(t *testing.T) {
	field := &fakeAmountField{}
	editor := NewEditor(field, mainnet, amount.UnitBTC)

	editor.SetText(genesisAddr + ", 1\n" + boatAddr + ", 1")
	if field.value != 200000000 {
		t.Fatalf("total = %d", field.value)
	}

	editor.SetUnit(amount.UnitMilliBTC)
	if field.value != 200000 {
		t.Errorf("total after unit change = %d, want 200000", field.value)
	}
	if editor.Text() == "" {
		t.Error("text lost on unit change")
	}
}
