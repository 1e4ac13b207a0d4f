package scriptcheck

import (
	"strings"
	"testing"
)

// TestValidateIdentifier_ValidFormats verifies ordinary predicate and constant names pass
func TestValidateIdentifier_ValidFormats(t *testing.T) {
	valid := []string{
		"Human",
		"socrates",
		"_private",
		"setA",
		"element1",
		"greater_than",
		"x",
		"Object",
	}

	for _, id := range valid {
		if err := ValidateIdentifier(id); err != nil {
			t.Errorf("Expected valid identifier %q to pass validation, got error: %v", id, err)
		}
	}
}

// TestValidateIdentifier_InvalidFormats verifies names the solver cannot bind are rejected
func TestValidateIdentifier_InvalidFormats(t *testing.T) {
	invalid := []string{
		"123abc",    // starts with digit
		"New-York",  // contains hyphen
		"set.A",     // contains dot
		"New York",  // contains space
		"a→b",       // contains arrow
		"Mortal(x)", // contains parentheses
	}

	for _, id := range invalid {
		if err := ValidateIdentifier(id); err == nil {
			t.Errorf("Expected error for invalid identifier %q, got nil", id)
		}
	}
}

// TestValidateIdentifier_ReservedNames verifies keywords and solver builtins are rejected
func TestValidateIdentifier_ReservedNames(t *testing.T) {
	reservedNames := []string{
		"in", "is", "not", "and", "or", "if", "else", "lambda", "None",
		"true", "null", "var", "let",
		"s", "ForAll", "Implies", "BoolSort", "DeclareSort", "Const", "Function",
	}

	for _, name := range reservedNames {
		err := ValidateIdentifier(name)
		if err == nil {
			t.Errorf("Expected error for reserved name %q, got nil", name)
			continue
		}
		if !strings.Contains(err.Error(), "reserved") {
			t.Errorf("Expected error message about reserved name for %q, got: %v", name, err)
		}
	}
}

// TestValidateIdentifier_LengthLimits verifies names are 1-100 characters
func TestValidateIdentifier_LengthLimits(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		shouldErr bool
	}{
		{"empty", "", true},
		{"single char", "a", false},
		{"max length 100", strings.Repeat("a", 100), false},
		{"too long 101", strings.Repeat("a", 101), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentifier(tt.id)
			if tt.shouldErr && err == nil {
				t.Errorf("Expected error for %q, got nil", tt.name)
			}
			if !tt.shouldErr && err != nil {
				t.Errorf("Expected no error for %q, got: %v", tt.name, err)
			}
		})
	}
}
