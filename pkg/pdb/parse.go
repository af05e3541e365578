// 12 Oct 2026
// Pull backbone atoms out of old style, fixed column pdb files and
// collect them into the four atom groups needed for phi and psi.

package pdb

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andrew-torda/rama/pkg/pdb/cmmn"
)

// Group is four consecutive backbone atoms from one chain. ResNum is the
// residue number of the last atom and is only used in messages.
type Group struct {
	Chain  string
	ResNum int
	Atoms  [4]cmmn.Xyz
}

// Groups has the phi groups (ending on C) and psi groups (ending on N)
// in the order they were found in the file.
type Groups struct {
	Phi []Group
	Psi []Group
}

// Options controls the parser. By default, ATOM lines which are too short
// or have broken numbers are skipped. With Strict, they are an error.
type Options struct {
	Strict bool
}

// ParseError says where a strict parse gave up.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Column ranges, counting from zero, as slices of an ATOM record.
const (
	nameStart, nameEnd   = 12, 16
	chainStart, chainEnd = 21, 22
	resStart, resEnd     = 22, 26
	xStart, xEnd         = 30, 38
	yStart, yEnd         = 38, 46
	zStart, zEnd         = 46, 54
	minLen               = zEnd
)

// window is the running state of the parse. It holds the last four
// backbone atoms of the current chain in a ring.
type window struct {
	chain string
	ring  [4]cmmn.Atom
	head  int // where the next atom goes, and the oldest when full
	n     int
}

// add returns the window after seeing atom a. A new chain starts
// from empty.
func (w window) add(a cmmn.Atom) window {
	if a.Chain != w.chain {
		w = window{chain: a.Chain}
	}
	w.ring[w.head] = a
	w.head = (w.head + 1) % len(w.ring)
	w.n++
	return w
}

// last4 returns the newest four atoms, oldest first.
func (w window) last4() (g Group) {
	for i := range g.Atoms {
		g.Atoms[i] = w.ring[(w.head+i)%len(w.ring)].Xyz
	}
	newest := w.ring[(w.head+len(w.ring)-1)%len(w.ring)]
	g.Chain, g.ResNum = newest.Chain, newest.ResNum
	return g
}

// step adds one atom to the window and appends to grps if the atom
// closes a phi or psi group.
func step(w window, a cmmn.Atom, grps *Groups) window {
	w = w.add(a)
	if w.n <= 3 {
		return w
	}
	switch a.Name {
	case cmmn.C:
		grps.Phi = append(grps.Phi, w.last4())
	case cmmn.N:
		grps.Psi = append(grps.Psi, w.last4())
	}
	return w
}

// field trims and returns a column range of line.
func field(line string, start, end int) string {
	return strings.TrimSpace(line[start:end])
}

// parseAtom takes an ATOM record and returns the parts we want.
func parseAtom(line string) (a cmmn.Atom, err error) {
	if len(line) < minLen {
		return a, fmt.Errorf("short ATOM record, %d chars", len(line))
	}
	a.Name = field(line, nameStart, nameEnd)
	a.Chain = field(line, chainStart, chainEnd)
	if a.ResNum, err = strconv.Atoi(field(line, resStart, resEnd)); err != nil {
		return a, fmt.Errorf("residue number: %w", err)
	}
	xyz := []struct {
		p          *float64
		start, end int
	}{
		{&a.Xyz.X, xStart, xEnd},
		{&a.Xyz.Y, yStart, yEnd},
		{&a.Xyz.Z, zStart, zEnd},
	}
	for _, c := range xyz {
		if *c.p, err = strconv.ParseFloat(field(line, c.start, c.end), 64); err != nil {
			return a, fmt.Errorf("coordinate: %w", err)
		}
	}
	return a, nil
}

// endOfModel says if we have hit the end of the first model or the
// end of the coordinates.
func endOfModel(line string) bool {
	rec := line
	if len(rec) > 6 {
		rec = rec[:6]
	}
	switch strings.TrimSpace(rec) {
	case "ENDMDL", "END":
		return true
	}
	return false
}

// Parse reads pdb format text from r and returns the phi and psi groups.
// Only ATOM records for N, CA and C are used. Grouping starts again
// whenever the chain changes. Reading stops at the first ENDMDL, so only
// the first model is used.
func Parse(r io.Reader, opts *Options) (*Groups, error) {
	if opts == nil {
		opts = &Options{}
	}
	grps := new(Groups)
	var w window
	scnnr := bufio.NewScanner(r)
	for nline := 1; scnnr.Scan(); nline++ {
		line := strings.TrimRight(scnnr.Text(), "\r")
		if endOfModel(line) {
			break
		}
		if !strings.HasPrefix(line, "ATOM") {
			continue
		}
		a, err := parseAtom(line)
		if err != nil {
			if opts.Strict {
				return nil, &ParseError{Line: nline, Text: line, Err: err}
			}
			continue
		}
		if !cmmn.IsBackbone(a.Name) {
			continue
		}
		w = step(w, a, grps)
	}
	if err := scnnr.Err(); err != nil {
		return nil, fmt.Errorf("reading pdb text: %w", err)
	}
	return grps, nil
}
