// 14 Oct 2026
// The same plot with gonum/plot. It can write vector formats, which the
// raster renderer cannot.

package ramaplot

import (
	"fmt"
	"image/color"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const screenDPI = 96 // pixels per inch when gonum writes bitmaps

var gonumExt = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "tif": true, "tiff": true,
	"svg": true, "pdf": true, "eps": true,
}

// Gonum hands the work to gonum.org/v1/plot.
type Gonum struct {
	opts Options
}

func NewGonum(opts Options) *Gonum {
	if opts.Size <= 0 {
		opts.Size = DfltSize
	}
	return &Gonum{opts: opts}
}

// ticks are labelled every tickStep degrees.
func ticks() plot.ConstantTicks {
	var t []plot.Tick
	for a := axisMin; a <= axisMax; a += tickStep {
		t = append(t, plot.Tick{Value: a, Label: strconv.Itoa(int(a))})
	}
	return plot.ConstantTicks(t)
}

// Plot builds the plot without saving it.
func (g *Gonum) Plot(phi, psi []float64) (*plot.Plot, error) {
	n := npair(phi, psi, g.opts.Log)
	p := plot.New()
	p.Title.Text = g.opts.Title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	if n > 0 {
		pts := make(plotter.XYs, n)
		for i := range pts {
			pts[i].X, pts[i].Y = phi[i], psi[i]
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(1.5)
		s.GlyphStyle.Color = color.RGBA{B: 200, A: 255}
		p.Add(s)
	}
	// Constant axes. Set after Add, which stretches them to the data.
	p.X.Min, p.X.Max = axisMin, axisMax
	p.Y.Min, p.Y.Max = axisMin, axisMax
	p.X.Tick.Marker = ticks()
	p.Y.Tick.Marker = ticks()
	return p, nil
}

// Render saves the plot in whatever format the extension of fname says.
func (g *Gonum) Render(phi, psi []float64, fname string) error {
	if !gonumExt[ext(fname)] {
		return fmt.Errorf("%s: %w", fname, ErrFormat)
	}
	p, err := g.Plot(phi, psi)
	if err != nil {
		return err
	}
	side := vg.Length(g.opts.Size) * vg.Inch / screenDPI
	if err := p.Save(side, side, fname); err != nil {
		return err
	}
	if g.opts.Log != nil {
		g.opts.Log.Println("wrote", fname)
	}
	return nil
}
