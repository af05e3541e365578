// 13 Oct 2026
// Draw the plot straight into an image. Text comes from freetype with
// the Go fonts, which have the Greek letters we need.

package ramaplot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"strconv"

	"github.com/andrew-torda/matrix"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	white    = color.RGBA{255, 255, 255, 255}
	black    = color.RGBA{0, 0, 0, 255}
	gridGrey = color.RGBA{220, 220, 220, 255}
)

const (
	gridStep = 60  // degrees between grid lines
	tickStep = 90  // degrees between labelled ticks
	dotRad   = 2   // pixels
	minShade = 200 // lightest point colour, out of 255
)

// Raster draws into an image.RGBA.
type Raster struct {
	opts Options
	font *truetype.Font
}

// frame is where the square plotting area sits in the image.
type frame struct {
	left, top, side int
}

// NewRaster parses the font once, so a Raster can be reused.
func NewRaster(opts Options) (*Raster, error) {
	if opts.Size <= 0 {
		opts.Size = DfltSize
	}
	f, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("font: %w", err)
	}
	return &Raster{opts: opts, font: f}, nil
}

// layout leaves a margin of an eighth at the left and bottom for
// labels and a sixteenth at the top and right.
func layout(size int) frame {
	m := size / 8
	return frame{left: m, top: m / 2, side: size - m - m/2}
}

// px and py map angles to pixels.
func (fr frame) px(phi float64) int {
	return fr.left + int((phi-axisMin)/(axisMax-axisMin)*float64(fr.side-1)+0.5)
}

func (fr frame) py(psi float64) int {
	return fr.top + int((axisMax-psi)/(axisMax-axisMin)*float64(fr.side-1)+0.5)
}

func hline(img draw.Image, x0, x1, y int, c color.Color) {
	for x := x0; x <= x1; x++ {
		img.Set(x, y, c)
	}
}

func vline(img draw.Image, x, y0, y1 int, c color.Color) {
	for y := y0; y <= y1; y++ {
		img.Set(x, y, c)
	}
}

// density bins the points, one bin per pixel of the plotting area.
// It returns the bins and the biggest count.
func density(phi, psi []float64, n int, fr frame) (*matrix.FMatrix2d, float32) {
	bins := matrix.NewFMatrix2d(fr.side, fr.side)
	var biggest float32
	for i := 0; i < n; i++ {
		col := fr.px(phi[i]) - fr.left
		row := fr.py(psi[i]) - fr.top
		if row < 0 || col < 0 || row >= fr.side || col >= fr.side {
			continue // not an angle
		}
		bins.Mat[row][col]++
		biggest = max(biggest, bins.Mat[row][col])
	}
	return bins, biggest
}

// dots draws a filled square for each non-empty bin. Bins with more
// points are darker.
func dots(img *image.RGBA, bins *matrix.FMatrix2d, biggest float32, fr frame) {
	nrow, ncol := bins.Size()
	for row := 0; row < nrow; row++ {
		for col, count := range bins.Mat[row] {
			if count == 0 {
				continue
			}
			v := uint8(float32(minShade) * (1 - count/biggest))
			c := color.RGBA{v, v, 255, 255}
			x, y := fr.left+col, fr.top+row
			r := image.Rect(x-dotRad, y-dotRad, x+dotRad+1, y+dotRad+1)
			r = r.Intersect(image.Rect(fr.left, fr.top, fr.left+ncol, fr.top+nrow))
			draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
		}
	}
}

// text writes s with its centre at x and its baseline at y.
func (r *Raster) text(c *freetype.Context, face font.Face, s string, x, y int) error {
	w := font.MeasureString(face, s).Round()
	_, err := c.DrawString(s, freetype.Pt(x-w/2, y))
	return err
}

// labels puts the tick labels, axis names and title round the frame.
func (r *Raster) labels(img *image.RGBA, fr frame) error {
	size := float64(r.opts.Size) / 40
	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(r.font)
	c.SetFontSize(size)
	c.SetClip(img.Bounds())
	c.SetDst(img)
	c.SetSrc(image.NewUniform(black))
	c.SetHinting(font.HintingFull)
	face := truetype.NewFace(r.font, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	defer face.Close()

	lineHt := int(size + 0.5)
	bottom := fr.top + fr.side
	for a := axisMin; a <= axisMax; a += tickStep {
		s := strconv.Itoa(int(a))
		if err := r.text(c, face, s, fr.px(a), bottom+lineHt+lineHt/2); err != nil {
			return err
		}
		w := font.MeasureString(face, s).Round()
		if err := r.text(c, face, s, fr.left-lineHt/2-w/2, fr.py(a)+lineHt/3); err != nil {
			return err
		}
	}

	big := size * 1.5
	c.SetFontSize(big)
	bigFace := truetype.NewFace(r.font, &truetype.Options{Size: big, DPI: 72})
	defer bigFace.Close()
	if err := r.text(c, bigFace, xLabel, fr.left+fr.side/2, r.opts.Size-lineHt/2); err != nil {
		return err
	}
	if err := r.text(c, bigFace, yLabel, lineHt, fr.top+fr.side/2); err != nil {
		return err
	}
	if r.opts.Title != "" {
		c.SetFontSize(size)
		if err := r.text(c, face, r.opts.Title, fr.left+fr.side/2, fr.top-lineHt/2); err != nil {
			return err
		}
	}
	return nil
}

// Draw makes the picture without saving it.
func (r *Raster) Draw(phi, psi []float64) (*image.RGBA, error) {
	n := npair(phi, psi, r.opts.Log)
	size := r.opts.Size
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)
	fr := layout(size)
	right, bottom := fr.left+fr.side-1, fr.top+fr.side-1

	for a := axisMin + gridStep; a < axisMax; a += gridStep {
		vline(img, fr.px(a), fr.top, bottom, gridGrey)
		hline(img, fr.left, right, fr.py(a), gridGrey)
	}
	bins, biggest := density(phi, psi, n, fr)
	dots(img, bins, biggest, fr)

	hline(img, fr.left, right, fr.top, black)
	hline(img, fr.left, right, bottom, black)
	vline(img, fr.left, fr.top, bottom, black)
	vline(img, right, fr.top, bottom, black)
	for a := axisMin; a <= axisMax; a += tickStep {
		vline(img, fr.px(a), bottom, bottom+4, black)
		hline(img, fr.left-4, fr.left, fr.py(a), black)
	}
	if err := r.labels(img, fr); err != nil {
		return nil, err
	}
	return img, nil
}

// encoders pick an image format from the file extension.
var encoders = map[string]func(io.Writer, image.Image) error{
	"png":  png.Encode,
	"jpg":  func(w io.Writer, img image.Image) error { return jpeg.Encode(w, img, &jpeg.Options{Quality: 95}) },
	"jpeg": func(w io.Writer, img image.Image) error { return jpeg.Encode(w, img, &jpeg.Options{Quality: 95}) },
	"gif":  func(w io.Writer, img image.Image) error { return gif.Encode(w, img, &gif.Options{NumColors: 256}) },
}

// Render draws the plot and writes it to fname.
func (r *Raster) Render(phi, psi []float64, fname string) error {
	encode, ok := encoders[ext(fname)]
	if !ok {
		return fmt.Errorf("%s: %w", fname, ErrFormat)
	}
	img, err := r.Draw(phi, psi)
	if err != nil {
		return err
	}
	fp, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := encode(fp, img); err != nil {
		fp.Close()
		os.Remove(fname)
		return err
	}
	if r.opts.Log != nil {
		r.opts.Log.Println("wrote", fname)
	}
	return fp.Close()
}
