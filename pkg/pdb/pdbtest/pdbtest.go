// Package pdbtest makes small, made up pdb files for testing.
// Backbone atoms sit on a regular helix, so every four consecutive
// backbone atoms have the same, well defined dihedral angle. Side chain
// atoms are put at SideX so a test can see if one leaked into a group.
package pdbtest

import (
	"fmt"
	"math"
	"strings"

	"github.com/andrew-torda/rama/pkg/pdb/cmmn"
)

const (
	SideX  = 999.0
	radius = 1.5
	rise   = 1.0
	turn   = 100 * math.Pi / 180 // per backbone atom
)

var bbNames = [3]string{cmmn.N, cmmn.CA, cmmn.C}

// Backbone returns the position of the k'th backbone atom of a chain,
// counting from zero.
func Backbone(k int) cmmn.Xyz {
	a := float64(k) * turn
	return cmmn.Xyz{X: radius * math.Cos(a), Y: radius * math.Sin(a), Z: float64(k) * rise}
}

// Rounded is Backbone after a trip through the three decimals of a
// pdb file.
func Rounded(k int) cmmn.Xyz {
	r := func(x float64) float64 { return math.Round(x*1000) / 1000 }
	b := Backbone(k)
	return cmmn.Xyz{X: r(b.X), Y: r(b.Y), Z: r(b.Z)}
}

// Line formats one ATOM record in the fixed columns of a pdb file.
func Line(serial int, name, resName, chain string, resNum int, xyz cmmn.Xyz) string {
	return fmt.Sprintf("ATOM  %5d  %-3s %3s %1s%4d    %8.3f%8.3f%8.3f  1.00  0.00           %1.1s",
		serial, name, resName, chain, resNum, xyz.X, xyz.Y, xyz.Z, name)
}

// Chain returns ATOM records for nres residues numbered from 1.
// Each residue is N, CA, C, O, CB in the usual order.
func Chain(chain string, nres int) string {
	var b strings.Builder
	serial := 1
	for r := 0; r < nres; r++ {
		for i, name := range bbNames {
			fmt.Fprintln(&b, Line(serial, name, "ALA", chain, r+1, Backbone(3*r+i)))
			serial++
		}
		for _, name := range []string{"O", "CB"} {
			side := cmmn.Xyz{X: SideX, Y: float64(r), Z: float64(serial)}
			fmt.Fprintln(&b, Line(serial, name, "ALA", chain, r+1, side))
			serial++
		}
	}
	return b.String()
}

// File puts a header in front of some chains and END at the back.
func File(chains ...string) string {
	var b strings.Builder
	b.WriteString("HEADER    MADE UP FOR TESTING                     17-OCT-26   0TST\n")
	for _, c := range chains {
		b.WriteString(c)
		b.WriteString("TER\n")
	}
	b.WriteString("END\n")
	return b.String()
}
