package semantic

import (
	"fmt"

	"github.com/halvardsen/ncc/internal/ast"
	"github.com/halvardsen/ncc/internal/cerr"
	"github.com/halvardsen/ncc/internal/token"
)

// Kind enumerates the semantic error categories this analyser can
// report, split finer than a single catch-all so diagnostics can name
// the exact rule violated (undeclared use, redeclaration, type
// mismatch, an operation applied to incompatible types, a non-boolean
// condition, an assignment whose types don't match, or a read of a
// variable before it has a value).
type Kind int

const (
	NotDeclared Kind = iota
	AlreadyDeclared
	TypeMismatch
	InvalidOperation
	NotBoolean
	AssignTypeMismatch
	NotInitialized
)

// Error is a single semantic diagnostic.
type Error struct {
	Kind  Kind
	Pos   token.Position
	Ident string // resolved identifier name, when applicable
	Have  ast.Type
	Want  ast.Type
	Op    string
}

func (e *Error) Error() string {
	switch e.Kind {
	case NotDeclared:
		return fmt.Sprintf("%q is not declared", e.Ident)
	case AlreadyDeclared:
		return fmt.Sprintf("%q is already declared", e.Ident)
	case TypeMismatch:
		return fmt.Sprintf("type mismatch: %s vs %s", e.Have, e.Want)
	case InvalidOperation:
		return fmt.Sprintf("operator %q is not defined for type %s", e.Op, e.Have)
	case NotBoolean:
		return fmt.Sprintf("expected a boolean condition, got %s", e.Have)
	case AssignTypeMismatch:
		return fmt.Sprintf("cannot assign %s to variable of type %s", e.Have, e.Want)
	case NotInitialized:
		return fmt.Sprintf("%q is read before it has a value", e.Ident)
	default:
		return "semantic error"
	}
}

// ToCompilerError converts a semantic Error into the uniform diagnostic
// type shared by every stage.
func (e *Error) ToCompilerError(source, file string) *cerr.CompilerError {
	return cerr.New(e.Pos, e.Error(), source, file)
}
