// Package cmmn has common definitions for coordinates and
// backbone atoms read from pdb files
package cmmn

// Does our data come from a file or http source ?
const (
	FileSrc byte = iota
	HTTPSrc
)

type Xyz struct{ X, Y, Z float64 }

// Backbone atom names. Nothing else is kept by the parser.
const (
	N  = "N"
	CA = "CA"
	C  = "C"
)

// IsBackbone says if an atom name is one of N, CA or C.
func IsBackbone(name string) bool {
	switch name {
	case N, CA, C:
		return true
	}
	return false
}

// Atom is one backbone atom as it was read. ResNum is only carried along
// for messages.
type Atom struct {
	Name   string
	Chain  string
	ResNum int
	Xyz    Xyz
}
