package parser

import (
	"fmt"

	"github.com/halvardsen/ncc/internal/cerr"
	"github.com/halvardsen/ncc/internal/token"
)

// SyntaxError collapses a missing-token and an unexpected-token
// diagnostic into one struct: Expected is empty for a bare
// unexpected-token diagnostic.
type SyntaxError struct {
	Pos      token.Position
	Expected string
	Found    token.Token
	Message  string
}

func (e *SyntaxError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s at %s", e.Message, e.Pos)
	}
	return fmt.Sprintf("expected %s, got %s at %s", e.Expected, e.Found.Type, e.Pos)
}

// ToCompilerError converts a SyntaxError into the uniform diagnostic
// type shared by every stage.
func (e *SyntaxError) ToCompilerError(source, file string) *cerr.CompilerError {
	return cerr.New(e.Pos, e.Error(), source, file)
}
