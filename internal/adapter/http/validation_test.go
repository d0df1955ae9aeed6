package http

import (
	"errors"
	"strings"
	"testing"
)

// containsFieldMsg reports whether the field error list carries a message
// fragment for the named field.
func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func TestHex32Validation(t *testing.T) {
	type P struct {
		CodeID string `validate:"hex32"`
	}
	cv := NewValidator()

	// valid: 32-char lowercase hex
	okID := P{CodeID: strings.Repeat("a", 32)}
	if err := cv.Validate(okID); err != nil {
		t.Fatalf("expected valid hex32, got err: %v", err)
	}

	// invalid samples
	for _, s := range []string{
		"",                                  // empty
		strings.Repeat("A", 32),             // uppercase
		"deadbeef",                          // too short
		strings.Repeat("g", 32),             // non-hex char
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",   // 31 chars
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88x", // 33 with extra
	} {
		bad := P{CodeID: s}
		err := cv.Validate(bad)
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		fe := ToFieldErrors(err)
		found := false
		for _, e := range fe {
			if e.Field == "CodeID" && strings.Contains(e.Message, "32-char lowercase hex") {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected hex32 message for %q, got: %+v", s, fe)
		}
	}
}

func TestDec2Validation(t *testing.T) {
	type P struct {
		Amount float64 `validate:"dec2"`
	}
	cv := NewValidator()

	for _, v := range []float64{1.29, 2.00, 0.9, 15000, 250000.5} {
		if err := cv.Validate(P{Amount: v}); err != nil {
			t.Fatalf("expected dec2 OK for %v, got %v", v, err)
		}
	}
	for _, v := range []float64{1.234, 2.9999} {
		err := cv.Validate(P{Amount: v})
		if err == nil {
			t.Fatalf("expected dec2 error for %v", v)
		}
		fe := ToFieldErrors(err)
		if !containsFieldMsg(fe, "Amount", "at most 2 decimal places") {
			t.Fatalf("expected 'at most 2 decimal places' for %v, got %+v", v, fe)
		}
	}
}

func TestOneofAndDatetimeMapping(t *testing.T) {
	type P struct {
		Decision string `validate:"oneof=approved rejected"`
		NeededBy string `validate:"datetime=2006-01-02"`
	}
	cv := NewValidator()

	if err := cv.Validate(P{Decision: "approved", NeededBy: "2024-03-01"}); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}

	err := cv.Validate(P{Decision: "maybe", NeededBy: "01/03/2024"})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := ToFieldErrors(err)
	if !containsFieldMsg(fe, "Decision", "must be one of: approved rejected") {
		t.Fatalf("missing oneof message for Decision: %+v", fe)
	}
	if !containsFieldMsg(fe, "NeededBy", "must match format 2006-01-02") {
		t.Fatalf("missing datetime message for NeededBy: %+v", fe)
	}
}

func TestRequiredAndBoundsMapping(t *testing.T) {
	type P struct {
		Name   string  `validate:"required"`
		Level  int     `validate:"gte=1"`
		Qty    int     `validate:"lte=5"`
		Amount float64 `validate:"dec2,gte=0"`
	}
	cv := NewValidator()

	// Intentionally violate all
	err := cv.Validate(P{
		Name:   "",     // required
		Level:  0,      // gte=1
		Qty:    6,      // lte=5
		Amount: -1.333, // dec2 + gte fail, but dec2 will trigger first
	})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := ToFieldErrors(err)

	// required
	if !containsFieldMsg(fe, "Name", "is required") {
		t.Fatalf("missing 'is required' for Name: %+v", fe)
	}
	// gte
	if !containsFieldMsg(fe, "Level", "greater than or equal to 1") {
		t.Fatalf("missing gte message for Level: %+v", fe)
	}
	// lte
	if !containsFieldMsg(fe, "Qty", "less than or equal to 5") {
		t.Fatalf("missing lte message for Qty: %+v", fe)
	}
	// dec2 mapping should show for Amount
	if !containsFieldMsg(fe, "Amount", "at most 2 decimal places") {
		t.Fatalf("missing dec2 message for Amount: %+v", fe)
	}
}

func TestToFieldErrors_NonValidation(t *testing.T) {
	err := errors.New("boom")
	fe := ToFieldErrors(err)
	if len(fe) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(fe))
	}
	if fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected mapping: %+v", fe[0])
	}
}
