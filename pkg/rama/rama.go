// 15 Oct 2026
// Take a structure, work out phi and psi for every residue that has
// both neighbours and plot them.

package rama

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/andrew-torda/rama/pkg/pdb"
	"github.com/andrew-torda/rama/pkg/pdb/geom"
	"github.com/andrew-torda/rama/pkg/ramaplot"
)

// UsageError is for a command line we cannot work with.
type UsageError string

func (e UsageError) Error() string { return string(e) }

// GeometryError is a group of four atoms with no dihedral angle.
// Kind is "phi" or "psi" and Index counts groups of that kind.
type GeometryError struct {
	Kind   string
	Index  int
	Chain  string
	ResNum int
	Err    error
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("%s %d, chain %q residue %d: %v", e.Kind, e.Index, e.Chain, e.ResNum, e.Err)
}

func (e *GeometryError) Unwrap() error { return e.Err }

// dihedrals does one list of groups. A group without an angle is
// logged and gets a NaN, unless strict is set. Either way, angles[i]
// belongs to grps[i].
func dihedrals(kind string, grps []pdb.Group, strict bool, lg *log.Logger) ([]float64, error) {
	angles := make([]float64, len(grps))
	for i, g := range grps {
		a := g.Atoms
		t, err := geom.Dihedral(a[0], a[1], a[2], a[3])
		angles[i] = t
		if err == nil {
			continue
		}
		gerr := &GeometryError{Kind: kind, Index: i, Chain: g.Chain, ResNum: g.ResNum, Err: err}
		if strict {
			return nil, gerr
		}
		b1, e1 := geom.Bond(a[0], a[1], a[2])
		b2, e2 := geom.Bond(a[1], a[2], a[3])
		lg.Printf("skipping %v, bond angles %.1f %.1f %v", gerr, b1, b2, errors.Join(e1, e2))
	}
	return angles, nil
}

// Angles calculates phi and psi for all the groups. The slices are in
// file order, one value per group. Without strict, groups with no angle
// are NaN.
func Angles(grps *pdb.Groups, strict bool, lg *log.Logger) (phi, psi []float64, err error) {
	if lg == nil {
		lg = log.New(io.Discard, "", 0)
	}
	if phi, err = dihedrals("phi", grps.Phi, strict, lg); err != nil {
		return nil, nil, err
	}
	if psi, err = dihedrals("psi", grps.Psi, strict, lg); err != nil {
		return nil, nil, err
	}
	return phi, psi, nil
}

// Finite drops the pairs where phi or psi is NaN. Pairs are taken in
// group order, up to the shorter slice.
func Finite(phi, psi []float64) (p, q []float64) {
	n := min(len(phi), len(psi))
	p, q = make([]float64, 0, n), make([]float64, 0, n)
	for i := range n {
		if math.IsNaN(phi[i]) || math.IsNaN(psi[i]) {
			continue
		}
		p, q = append(p, phi[i]), append(q, psi[i])
	}
	return p, q
}

// WriteAngles prints phi,psi pairs, one per line in group order. The
// i'th phi group ends on a C and the i'th psi group on the following N,
// so a line is not one residue.
func WriteAngles(w io.Writer, phi, psi []float64) error {
	bw := bufio.NewWriter(w)
	for i := range min(len(phi), len(psi)) {
		fmt.Fprintf(bw, "%.2f,%.2f\n", phi[i], psi[i])
	}
	return bw.Flush()
}

// newFetcher applies the settings which change where structures come from.
func newFetcher(flags *CmdFlag, lg *log.Logger) (*pdb.Fetcher, error) {
	if flags.Site < 0 || flags.Site >= pdb.NSite {
		return nil, UsageError(fmt.Sprintf("site %d, want 0 to %d", flags.Site, pdb.NSite-1))
	}
	f := pdb.NewFetcher(flags.Site)
	if flags.BaseURL != "" {
		f.BaseURL = flags.BaseURL
	}
	if flags.FetchExt != "" {
		f.Ext = flags.FetchExt
	}
	f.Log = lg
	return f, nil
}

// Mymain does the work after the command line is parsed. arg is a file
// name or accession code. The plot goes next to the structure file.
func Mymain(flags *CmdFlag, arg string) (err error) {
	if arg == "" {
		return UsageError("no structure file or accession code")
	}
	lg, closer, err := logWhere(flags.Log)
	if err != nil {
		return fmt.Errorf("%w creating log file", err)
	}
	defer func() { err = errors.Join(err, closer.Close()) }()

	r, err := ramaplot.New(flags.Renderer, ramaplot.Options{Title: flags.Title, Size: flags.Size, Log: lg})
	if err != nil {
		return UsageError(err.Error())
	}
	fetcher, err := newFetcher(flags, lg)
	if err != nil {
		return err
	}
	fname, id, _, err := fetcher.Resolve(arg)
	if err != nil {
		return err
	}
	grps, err := pdb.ReadFile(fname, &pdb.Options{Strict: flags.Strict})
	if err != nil {
		return fmt.Errorf("reading %s: %w", fname, err)
	}
	lg.Printf("%s: %d phi and %d psi groups", fname, len(grps.Phi), len(grps.Psi))
	phi, psi, err := Angles(grps, flags.Strict, lg)
	if err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}
	npair := min(len(phi), len(psi))
	phi, psi = Finite(phi, psi)
	if len(phi) != npair {
		lg.Printf("%d of %d pairs dropped for missing angles", npair-len(phi), npair)
	}
	if flags.Angles {
		if err := WriteAngles(os.Stdout, phi, psi); err != nil {
			return err
		}
	}
	dir, _ := pdb.SplitID(arg)
	return r.Render(phi, psi, ramaplot.OutName(dir, id, flags.ImageExt))
}
