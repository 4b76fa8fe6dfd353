package driver

import (
	"encoding/hex"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestEndToEndObjectSnapshot snapshots the hex dump of a compiled
// object file for a small fixed program — the artifact under test is
// the byte-exact ELF64 image rather than a printed value.
func TestEndToEndObjectSnapshot(t *testing.T) {
	const src = "{ var x: integer; x = 1 + 2; output(x); }"
	res, errs := Run(RunOptions{Source: src, FilePath: "snapshot.nc"})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	snaps.MatchSnapshot(t, hex.EncodeToString(res.ObjectBytes))
}
