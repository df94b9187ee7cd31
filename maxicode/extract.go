package maxicode

import (
	"github.com/ericlevine/maxigo"
	"github.com/ericlevine/maxigo/bitutil"
	"github.com/ericlevine/maxigo/maxicode/decoder"
)

// ExtractGrid samples the module grid of a symbol that fills the set area
// of image, as in a pure barcode scan with no rotation.
func ExtractGrid(image *bitutil.BitMatrix) (*bitutil.BitMatrix, error) {
	rect, ok := image.EnclosingRectangle()
	if !ok {
		return nil, maxigo.ErrNotFound
	}
	return SampleGrid(image, rect)
}

// SampleGrid samples the 30x33 module grid from rect. Each module is read
// at its centre; odd rows sit half a module to the right.
func SampleGrid(image *bitutil.BitMatrix, rect bitutil.Rect) (*bitutil.BitMatrix, error) {
	if rect.Width <= 0 || rect.Height <= 0 {
		return nil, maxigo.ErrNotFound
	}
	w, h := decoder.GridWidth, decoder.GridHeight
	grid := bitutil.NewBitMatrix(w, h)
	for y := 0; y < h; y++ {
		iy := rect.Top + (y*rect.Height+rect.Height/2)/h
		if iy < 0 || iy >= image.Height() {
			return nil, maxigo.ErrNotFound
		}
		for x := 0; x < w; x++ {
			ix := rect.Left + min((x*rect.Width+rect.Width/2+(y&1)*rect.Width/2)/w, rect.Width)
			if ix < 0 || ix >= image.Width() {
				return nil, maxigo.ErrNotFound
			}
			if image.Get(ix, iy) {
				grid.Set(x, y)
			}
		}
	}
	return grid, nil
}
