package translator

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/roach88/headergen/internal/ast"
)

// Fatal error codes (E200-E299)
const (
	ErrUnknownChild         = "E201" // child kind not legal in this context
	ErrUnknownDeclKind      = "E202" // top-level kind not handled
	ErrMissingMetadata      = "E203" // name, type, value or availability missing
	ErrDuplicateProperty    = "E204" // two properties map to one accessor
	ErrConflictingEnumKinds = "E205" // enum markers disagree
	ErrCategoryClass        = "E206" // category without exactly one class reference
	ErrDuplicateInitializer = "E207" // variable with two initializers
	ErrUnrepresentableType  = "E208" // type the binding language cannot express
	ErrUnmatchedAccessor    = "E209" // property accessor without its method node
	ErrUnexpectedAttribute  = "E210" // attribute not legal on this declaration
)

// FatalError is a declaration shape the translator does not support.
// Skipping the symbol in the translation config turns it into an
// intentional omission.
type FatalError struct {
	Code    string
	Node    string // description of the offending node
	Message string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Node, e.Message)
}

// fatalf builds a fatal error for node e. decl names the enclosing top-level
// declaration for the skip hint.
func fatalf(code string, e ast.Entity, decl declRef, format string, args ...any) error {
	err := errors.WithStack(&FatalError{
		Code:    code,
		Node:    e.String(),
		Message: fmt.Sprintf(format, args...),
	})
	if decl.name == "" {
		return err
	}
	return errors.WithHintf(err, "add `skipped = true` under [%s.%s] in the translation config to omit it", decl.section, decl.name)
}

// IsFatal reports whether err carries a *FatalError.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}

// FatalCode returns the code of the *FatalError in err, or "".
func FatalCode(err error) string {
	var fe *FatalError
	if errors.As(err, &fe) {
		return fe.Code
	}
	return ""
}

// declRef names a top-level declaration by config section and symbol.
type declRef struct {
	section string
	name    string
}
