// Calculate some geometries, vectors, angles and dihedrals

package geom

import (
	"math"

	"github.com/andrew-torda/rama/pkg/pdb/cmmn"
)

const (
	conv = 180 / math.Pi
	tiny = 1e-10 // below this, a vector has no direction
)

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrZeroVec    = Error("zero length vector")
	ErrDegenerate = Error("degenerate dihedral, points are collinear")
	ErrAngle      = Error("broken angle")
)

// Sub gets the difference of two vectors, a - b
func Sub(a, b cmmn.Xyz) (diff cmmn.Xyz) {
	diff.X = a.X - b.X
	diff.Y = a.Y - b.Y
	diff.Z = a.Z - b.Z
	return diff
}

// Cross returns the vector product of two vectors
func Cross(u, v cmmn.Xyz) (res cmmn.Xyz) {
	res.X = u.Y*v.Z - u.Z*v.Y
	res.Y = u.Z*v.X - u.X*v.Z
	res.Z = u.X*v.Y - u.Y*v.X
	return res
}

// Dot returns the dot / scalar product of two vectors
func Dot(u, v cmmn.Xyz) float64 { return u.X*v.X + u.Y*v.Y + u.Z*v.Z }

// Len returns the vector length
func Len(v cmmn.Xyz) float64 { return math.Sqrt(Dot(v, v)) }

// Normalize scales v to unit length. There is no sensible answer for
// the zero vector, so that is an error.
func Normalize(v cmmn.Xyz) (cmmn.Xyz, error) {
	l := Len(v)
	if l < tiny || math.IsNaN(l) {
		return v, ErrZeroVec
	}
	return cmmn.Xyz{X: v.X / l, Y: v.Y / l, Z: v.Z / l}, nil
}

// Bond takes three points and returns the angle at b in degrees.
func Bond(a, b, c cmmn.Xyz) (float64, error) {
	x1, err1 := Normalize(Sub(a, b))
	x2, err2 := Normalize(Sub(c, b))
	if err1 != nil || err2 != nil {
		return math.NaN(), ErrAngle
	}
	cosalpha := Dot(x1, x2)
	if cosalpha > 1 { // numerical noise
		return 0, nil
	}
	if cosalpha < -1 {
		return 180, nil
	}
	return math.Acos(cosalpha) * conv, nil
}

// Dihedral takes four points and returns the dihedral angle about the
// a2-a3 bond in degrees, in (-180, 180]. The sign follows IUPAC, so
// with a2 at the origin, a3 on +z and a1 on +x, a4 at angle t around z
// gives t.
func Dihedral(a1, a2, a3, a4 cmmn.Xyz) (float64, error) {
	b1 := Sub(a2, a1)
	b2 := Sub(a3, a2)
	b3 := Sub(a4, a3)
	n1, err := Normalize(Cross(b1, b2))
	if err != nil {
		return math.NaN(), ErrDegenerate
	}
	n2, err := Normalize(Cross(b2, b3))
	if err != nil {
		return math.NaN(), ErrDegenerate
	}
	b2u, err := Normalize(b2)
	if err != nil {
		return math.NaN(), ErrDegenerate
	}
	m1 := Cross(b2u, n1)
	x := Dot(n1, n2)
	y := Dot(m1, n2)
	tau := math.Atan2(y, x) * conv
	if tau <= -180 {
		tau = 180
	}
	return tau, nil
}
