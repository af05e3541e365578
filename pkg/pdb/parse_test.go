package pdb_test

import (
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/andrew-torda/rama/pkg/brokenio"
	. "github.com/andrew-torda/rama/pkg/pdb"
	"github.com/andrew-torda/rama/pkg/pdb/cmmn"
	"github.com/andrew-torda/rama/pkg/pdb/pdbtest"
)

// sameXyz allows for the last decimal printed in the file.
func sameXyz(a, b cmmn.Xyz) bool {
	const eps = 1.5e-3
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

// wantGroup is the group of backbone atoms first..first+3 in a chain.
func wantGroup(first int) [4]cmmn.Xyz {
	var g [4]cmmn.Xyz
	for i := range g {
		g[i] = pdbtest.Rounded(first + i)
	}
	return g
}

func checkGroup(t *testing.T, kind string, i int, got Group, first int) {
	t.Helper()
	want := wantGroup(first)
	for j := range want {
		if !sameXyz(got.Atoms[j], want[j]) {
			t.Errorf("%s group %d atom %d got %v want %v", kind, i, j, got.Atoms[j], want[j])
		}
	}
}

func parseString(t *testing.T, s string, opts *Options) *Groups {
	t.Helper()
	grps, err := Parse(strings.NewReader(s), opts)
	if err != nil {
		t.Fatal(err)
	}
	return grps
}

// A chain of R residues has R-1 of each. psi i is N CA C of residue i
// and the next N. phi i is the C of residue i, then N CA C of i+1.
func TestOneChain(t *testing.T) {
	for _, nres := range []int{0, 1, 2, 3, 10} {
		grps := parseString(t, pdbtest.File(pdbtest.Chain("A", nres)), nil)
		want := nres - 1
		if want < 0 {
			want = 0
		}
		if len(grps.Phi) != want || len(grps.Psi) != want {
			t.Fatalf("%d residues gave %d phi %d psi, want %d", nres, len(grps.Phi), len(grps.Psi), want)
		}
		for i, g := range grps.Psi {
			checkGroup(t, "psi", i, g, 3*i)
			if g.ResNum != i+2 || g.Chain != "A" {
				t.Errorf("psi %d chain %q resnum %d", i, g.Chain, g.ResNum)
			}
		}
		for i, g := range grps.Phi {
			checkGroup(t, "phi", i, g, 3*i+2)
			if g.ResNum != i+2 {
				t.Errorf("phi %d resnum %d", i, g.ResNum)
			}
		}
	}
}

func TestSideChainIgnored(t *testing.T) {
	grps := parseString(t, pdbtest.File(pdbtest.Chain("A", 6)), nil)
	for _, set := range [][]Group{grps.Phi, grps.Psi} {
		for _, g := range set {
			for _, a := range g.Atoms {
				if a.X == pdbtest.SideX {
					t.Fatal("side chain atom in group", g)
				}
			}
		}
	}
}

// No group may contain atoms from two chains. The second chain starts
// over, so it gives exactly what it would give alone.
func TestChainBreak(t *testing.T) {
	tests := []struct{ na, nb int }{{3, 3}, {4, 1}, {1, 4}, {2, 2}}
	for _, tt := range tests {
		txt := pdbtest.File(pdbtest.Chain("A", tt.na), pdbtest.Chain("B", tt.nb))
		grps := parseString(t, txt, nil)
		alone := func(n int) int {
			if n < 1 {
				return 0
			}
			return n - 1
		}
		want := alone(tt.na) + alone(tt.nb)
		if len(grps.Phi) != want || len(grps.Psi) != want {
			t.Errorf("chains %d+%d gave %d phi %d psi, want %d",
				tt.na, tt.nb, len(grps.Phi), len(grps.Psi), want)
		}
		nB := 0
		for _, g := range grps.Psi {
			if g.Chain == "B" {
				if nB == 0 {
					// first B group is all B's own atoms, starting at its first N
					checkGroup(t, "first B psi", 0, g, 0)
				}
				nB++
			}
		}
		if nB != alone(tt.nb) {
			t.Errorf("chain B has %d psi groups, want %d", nB, alone(tt.nb))
		}
	}
}

// Chain ids are compared as they come. Going back to chain A after B
// is a new chain as far as grouping goes.
func TestChainReturns(t *testing.T) {
	txt := pdbtest.Chain("A", 2) + pdbtest.Chain("B", 2) + pdbtest.Chain("A", 2)
	grps := parseString(t, txt, nil)
	if len(grps.Phi) != 3 || len(grps.Psi) != 3 {
		t.Errorf("got %d phi %d psi, want 3 and 3", len(grps.Phi), len(grps.Psi))
	}
}

const (
	good  = "ATOM      1  N   ALA A   1       1.000   2.000   3.000  1.00  0.00           N"
	short = "ATOM      2  CA  ALA A   1       1.000   2.000"
	badX  = "ATOM      3  C   ALA A   1       x.000   2.000   3.000  1.00  0.00           C"
	badR  = "ATOM      3  C   ALA A   #       1.000   2.000   3.000  1.00  0.00           C"
	hetat = "HETATM    4  C   HOH A   2       1.000   2.000   3.000  1.00  0.00           C"
)

func TestSkipOrStrict(t *testing.T) {
	for _, bad := range []string{short, badX, badR} {
		txt := strings.Join([]string{"REMARK nothing", good, bad, good}, "\n")
		if _, err := Parse(strings.NewReader(txt), nil); err != nil {
			t.Errorf("default parse should skip %q, got %v", bad, err)
		}
		_, err := Parse(strings.NewReader(txt), &Options{Strict: true})
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("strict parse of %q want ParseError, got %v", bad, err)
		}
		if perr.Line != 3 || perr.Text != bad {
			t.Errorf("ParseError at line %d text %q", perr.Line, perr.Text)
		}
	}
	// HETATM is not an error, even when strict. It is just not wanted.
	txt := good + "\n" + hetat + "\n"
	if _, err := Parse(strings.NewReader(txt), &Options{Strict: true}); err != nil {
		t.Error(err)
	}
}

func TestHetatmIgnored(t *testing.T) {
	var lines []string
	for _, l := range strings.Split(pdbtest.Chain("A", 3), "\n") {
		lines = append(lines, strings.Replace(l, "ATOM  ", "HETATM", 1))
	}
	grps := parseString(t, strings.Join(lines, "\n"), nil)
	if len(grps.Phi)+len(grps.Psi) != 0 {
		t.Error("HETATM records made groups")
	}
}

// Only the first model is read.
func TestFirstModel(t *testing.T) {
	txt := "MODEL        1\n" + pdbtest.Chain("A", 3) + "ENDMDL\n" +
		"MODEL        2\n" + pdbtest.Chain("A", 3) + "ENDMDL\n"
	grps := parseString(t, txt, nil)
	if len(grps.Phi) != 2 || len(grps.Psi) != 2 {
		t.Errorf("got %d phi %d psi, want 2 and 2", len(grps.Phi), len(grps.Psi))
	}
}

func TestCRLF(t *testing.T) {
	txt := strings.ReplaceAll(pdbtest.Chain("A", 3), "\n", "\r\n")
	grps := parseString(t, txt, &Options{Strict: true})
	if len(grps.Phi) != 2 {
		t.Error("CRLF file gave", len(grps.Phi), "phi groups")
	}
}

// A read error part way through must come back, not be mistaken for
// the end of the file.
func TestReadFailure(t *testing.T) {
	txt := pdbtest.File(pdbtest.Chain("A", 50))
	rdr := brokenio.NewReader(io.NopCloser(strings.NewReader(txt)))
	rdr.SetProbFail(1)
	rdr.SetFracFail(0.5)
	if _, err := Parse(rdr, nil); err == nil {
		t.Error("expected an error from a failing reader")
	}
}

func TestEmpty(t *testing.T) {
	grps := parseString(t, "", nil)
	if grps == nil || len(grps.Phi) != 0 || len(grps.Psi) != 0 {
		t.Error("empty input should give empty groups", grps)
	}
}
