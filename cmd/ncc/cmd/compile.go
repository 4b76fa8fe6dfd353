package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/halvardsen/ncc/internal/cerr"
	"github.com/halvardsen/ncc/internal/driver"
	"github.com/halvardsen/ncc/internal/token"
	"github.com/spf13/cobra"
)

var (
	stopAfterLex      bool
	stopAfterSyntax   bool
	stopAfterSemantic bool
	dumpTokens        bool
	compactDump       bool
	outputFile        string
)

func runCompile(_ *cobra.Command, args []string) error {
	filename := args[0]

	content, err := os.ReadFile(filename)
	if err != nil {
		exitWithError("failed to read %s: %v", filename, err)
		return err
	}
	source := string(content)

	opts := driver.RunOptions{Source: source, FilePath: filename}
	switch {
	case stopAfterLex:
		opts.StopAfter = driver.StageLex
	case stopAfterSyntax:
		opts.StopAfter = driver.StageSyntax
	case stopAfterSemantic:
		opts.StopAfter = driver.StageSemantic
	}

	res, errs := driver.Run(opts)
	if len(errs) > 0 {
		fmt.Fprint(os.Stderr, cerr.FormatErrors(errs, isTTY()))
		return fmt.Errorf("compilation failed with %d error(s)", len(errs))
	}

	if dumpTokens || compactDump {
		printTokenDump(res.Tokens)
	}

	if res.ObjectBytes == nil {
		return nil
	}

	outFile := outputFile
	if outFile == "" {
		ext := filepath.Ext(filename)
		if ext != "" {
			outFile = strings.TrimSuffix(filename, ext) + ".o"
		} else {
			outFile = filename + ".o"
		}
	}
	if err := os.WriteFile(outFile, res.ObjectBytes, 0644); err != nil {
		exitWithError("failed to write %s: %v", outFile, err)
		return err
	}
	fmt.Printf("Compiled %s -> %s\n", filename, outFile)
	return nil
}

// tokenLabel renders a token the way -lo/-c dump it: keywords and
// delimiters get a tagged form ("Keyword(if)", "Delim(;)"); every
// other token uses its own String (e.g. "Ident(#2)").
func tokenLabel(t token.Token) string {
	switch {
	case t.Type.IsKeyword():
		return fmt.Sprintf("Keyword(%s)", t.Type)
	case t.Type.IsDelimiter():
		return fmt.Sprintf("Delim(%s)", t.Type)
	default:
		return t.String()
	}
}

func printTokenDump(toks []token.Token) {
	if compactDump {
		parts := make([]string, len(toks))
		for i, t := range toks {
			parts[i] = tokenLabel(t)
		}
		fmt.Println(strings.Join(parts, " "))
		return
	}
	for _, t := range toks {
		fmt.Printf("%s @%s\n", tokenLabel(t), t.Pos)
	}
}

func isTTY() bool {
	fi, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
