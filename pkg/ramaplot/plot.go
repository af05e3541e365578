// 13 Oct 2026

// Package ramaplot draws phi/psi pairs as a Ramachandran plot and
// saves it. Both axes run from -180 to 180 and the plot is square.
package ramaplot

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
)

// Renderer takes parallel slices of phi and psi and writes a picture.
type Renderer interface {
	Render(phi, psi []float64, fname string) error
}

// Options are shared by the renderers. Size is the length of a side in
// pixels. A nil Log means no logging.
type Options struct {
	Title string
	Size  int
	Log   *log.Logger
}

const (
	DfltSize = 600
	DfltExt  = "png"
	axisMin  = -180.
	axisMax  = 180.
	xLabel   = "Φ"
	yLabel   = "Ψ"
)

var (
	ErrUnknown = errors.New("unknown renderer")
	ErrFormat  = errors.New("cannot write images with this extension")
)

// Names lists the renderers New knows.
var Names = []string{"raster", "gonum"}

// New returns a renderer by name. An empty name gives the raster one.
func New(name string, opts Options) (Renderer, error) {
	if opts.Size <= 0 {
		opts.Size = DfltSize
	}
	switch strings.ToLower(name) {
	case "", "raster":
		return NewRaster(opts)
	case "gonum":
		return NewGonum(opts), nil
	}
	return nil, fmt.Errorf("%q, want one of %v: %w", name, Names, ErrUnknown)
}

// OutName is where the plot for id goes.
func OutName(dir, id, ext string) string {
	if ext == "" {
		ext = DfltExt
	}
	return filepath.Join(dir, id+"_rama."+strings.TrimPrefix(ext, "."))
}

// npair says how many points we can plot. If the slices differ in
// length, the tail of the longer one is dropped and we say so.
func npair(phi, psi []float64, lg *log.Logger) int {
	n := min(len(phi), len(psi))
	if len(phi) != len(psi) && lg != nil {
		lg.Printf("%d phi and %d psi values, plotting %d pairs", len(phi), len(psi), n)
	}
	return n
}

// ext returns the lower case extension of fname without the dot.
func ext(fname string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(fname), "."))
}
