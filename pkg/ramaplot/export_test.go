package ramaplot

// Pixel says where an angle pair lands in an image of the given size.
func Pixel(size int, phi, psi float64) (x, y int) {
	fr := layout(size)
	return fr.px(phi), fr.py(psi)
}

// Corners returns the top left and bottom right of the plotting area.
func Corners(size int) (x0, y0, x1, y1 int) {
	fr := layout(size)
	return fr.left, fr.top, fr.left + fr.side - 1, fr.top + fr.side - 1
}

// Binned returns the biggest bin count for some points.
func Binned(size int, phi, psi []float64) float32 {
	_, biggest := density(phi, psi, min(len(phi), len(psi)), layout(size))
	return biggest
}
