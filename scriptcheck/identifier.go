package scriptcheck

import (
	"fmt"
	"regexp"
)

const maxIdentifierLength = 100

var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ValidateIdentifier checks a declared sort, function or constant name.
// Names must look like identifiers, be 1-100 characters long and must not
// shadow a keyword of the solver host language or a solver builtin.
func ValidateIdentifier(name string) error {
	if len(name) == 0 {
		return fmt.Errorf("identifier cannot be empty")
	}
	if len(name) > maxIdentifierLength {
		return fmt.Errorf("identifier length %d exceeds maximum of %d characters", len(name), maxIdentifierLength)
	}

	if !validIdentifier.MatchString(name) {
		return fmt.Errorf("must match pattern ^[a-zA-Z_][a-zA-Z0-9_]*$ (start with letter or underscore, followed by letters, digits, or underscores)")
	}

	if isReserved(name) {
		return fmt.Errorf("cannot use reserved name %q as identifier", name)
	}

	return nil
}

var reserved = map[string]bool{
	// host language keywords
	"and": true, "as": true, "assert": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
	"None": true, "True": true, "False": true,
	// expression parser keywords and literals
	"true": true, "false": true, "null": true, "const": true, "function": true,
	"let": true, "loop": true, "package": true, "namespace": true, "var": true,
	"void": true,
	// solver handle and builtins
	"s": true, "DeclareSort": true, "Function": true, "Const": true,
	"BoolSort": true, "ForAll": true, "Exists": true, "Implies": true,
	"And": true, "Or": true, "Not": true,
}

func isReserved(name string) bool {
	return reserved[name]
}
