// Command ncc compiles a small imperative integer/real/boolean
// language into a relocatable ELF64 object file.
package main

import (
	"os"

	"github.com/halvardsen/ncc/cmd/ncc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
