package lexer

import (
	"fmt"

	"github.com/halvardsen/ncc/internal/cerr"
	"github.com/halvardsen/ncc/internal/token"
)

// ErrorKind enumerates the lexical error kinds this lexer reports.
type ErrorKind int

const (
	IllegalCharacter ErrorKind = iota
	UnterminatedComment
	MalformedNumber
	MalformedIdentifier
)

func (k ErrorKind) String() string {
	switch k {
	case IllegalCharacter:
		return "illegal character"
	case UnterminatedComment:
		return "unterminated comment"
	case MalformedNumber:
		return "malformed number"
	case MalformedIdentifier:
		return "malformed identifier"
	default:
		return "lexical error"
	}
}

// LexError is a single lexical diagnostic tied to a position and the
// offending partial text.
type LexError struct {
	Kind    ErrorKind
	Pos     token.Position
	Text    string
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s at %s: %s (near %q)", e.Kind, e.Pos, e.Message, e.Text)
}

// ToCompilerError converts a LexError into the uniform diagnostic type
// shared by every stage.
func (e *LexError) ToCompilerError(source, file string) *cerr.CompilerError {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	return cerr.New(e.Pos, msg, source, file)
}
