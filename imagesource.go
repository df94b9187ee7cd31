package maxigo

import (
	"image"
	"image/color"

	"github.com/ericlevine/maxigo/bitutil"
)

// ImageLuminanceSource is a LuminanceSource backed by an 8-bit greyscale
// copy of a Go image.
type ImageLuminanceSource struct {
	luminances []byte
	width      int
	height     int
}

// NewImageLuminanceSource converts img to greyscale luminance. Gray images
// are copied directly; every other model goes through luminance().
func NewImageLuminanceSource(img image.Image) *ImageLuminanceSource {
	if g, ok := img.(*image.Gray); ok {
		return newGraySource(g)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	lum := make([]byte, w*h)
	for y := 0; y < h; y++ {
		row := lum[y*w : (y+1)*w]
		for x := range row {
			row[x] = luminance(img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return &ImageLuminanceSource{luminances: lum, width: w, height: h}
}

// luminance weights 8-bit RGB as (306R + 601G + 117B + 512) >> 10.
// Fully transparent pixels count as white.
func luminance(c color.Color) byte {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return 0xFF
	}
	r, g, b = r>>8, g>>8, b>>8
	return byte((306*r + 601*g + 117*b + 0x200) >> 10)
}

func newGraySource(img *image.Gray) *ImageLuminanceSource {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	lum := make([]byte, w*h)
	for y := 0; y < h; y++ {
		off := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		copy(lum[y*w:(y+1)*w], img.Pix[off:off+w])
	}
	return &ImageLuminanceSource{luminances: lum, width: w, height: h}
}

// Row returns row y, reusing row when it is large enough.
func (s *ImageLuminanceSource) Row(y int, row []byte) []byte {
	if y < 0 || y >= s.height {
		return nil
	}
	if len(row) < s.width {
		row = make([]byte, s.width)
	}
	copy(row, s.luminances[y*s.width:(y+1)*s.width])
	return row
}

// Matrix returns a copy of the luminance plane.
func (s *ImageLuminanceSource) Matrix() []byte {
	return append([]byte(nil), s.luminances...)
}

func (s *ImageLuminanceSource) Width() int  { return s.width }
func (s *ImageLuminanceSource) Height() int { return s.height }

// BitMatrixToImage renders a BitMatrix as a greyscale image, set bits black.
func BitMatrixToImage(matrix *bitutil.BitMatrix) *image.Gray {
	w, h := matrix.Width(), matrix.Height()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(0xFF)
			if matrix.Get(x, y) {
				v = 0
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}
