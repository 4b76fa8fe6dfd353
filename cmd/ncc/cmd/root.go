package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "ncc [file]",
	Short: "A compiler for the small imperative language of this repository",
	Long: `ncc lexes, parses, type-checks, and compiles a source file written
in this repository's small imperative integer/real/boolean language,
emitting a relocatable ELF64 object file for x86-64 Linux that links
against the C runtime.`,
	Version: Version,
	Args:    cobra.ExactArgs(1),
	RunE:    runCompile,
}

// Execute runs the root command. The single-dash multi-letter flags
// (-l, -st, -sem, -lo, -c) are rewritten to their double-dash form
// first, since the flag parser reads a single dash as a run of
// one-letter shorthands.
func Execute() error {
	args := append([]string(nil), os.Args[1:]...)
	for i, a := range args {
		switch a {
		case "-l", "-st", "-sem", "-lo", "-c":
			args[i] = "-" + a
		}
	}
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.Flags().BoolVar(&stopAfterLex, "l", false, "stop after lexing")
	rootCmd.Flags().BoolVar(&stopAfterSyntax, "st", false, "stop after syntax analysis")
	rootCmd.Flags().BoolVar(&stopAfterSemantic, "sem", false, "stop after semantic analysis")
	rootCmd.Flags().BoolVar(&dumpTokens, "lo", false, "dump token objects, one per line")
	rootCmd.Flags().BoolVar(&compactDump, "c", false, "compact, single-line dump form")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output object file (default: <input>.o)")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+msg+"\n", args...)
}
