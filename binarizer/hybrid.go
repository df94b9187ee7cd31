package binarizer

import (
	"github.com/ericlevine/maxigo"
	"github.com/ericlevine/maxigo/bitutil"
)

const (
	blockSizePower   = 3
	blockSize        = 1 << blockSizePower
	blockSizeMask    = blockSize - 1
	minimumDimension = blockSize * 5
	minDynamicRange  = 24
)

// Hybrid thresholds each 8x8 block against the average black point of the
// surrounding 5x5 blocks. It copes with shadows and gradients that defeat a
// single global threshold. Images smaller than 40 pixels on a side fall back
// to GlobalHistogram.
type Hybrid struct {
	GlobalHistogram
	matrix *bitutil.BitMatrix
}

// NewHybrid creates a Hybrid binarizer over source.
func NewHybrid(source maxigo.LuminanceSource) *Hybrid {
	return &Hybrid{GlobalHistogram: GlobalHistogram{source: source}}
}

// BlackMatrix returns the locally thresholded matrix, computing it once.
func (h *Hybrid) BlackMatrix() (*bitutil.BitMatrix, error) {
	if h.matrix != nil {
		return h.matrix, nil
	}
	width, height := h.source.Width(), h.source.Height()
	if width < minimumDimension || height < minimumDimension {
		m, err := h.GlobalHistogram.BlackMatrix()
		if err != nil {
			return nil, err
		}
		h.matrix = m
		return m, nil
	}

	lum := h.source.Matrix()
	subWidth := (width + blockSizeMask) >> blockSizePower
	subHeight := (height + blockSizeMask) >> blockSizePower
	blackPoints := blockBlackPoints(lum, subWidth, subHeight, width, height)

	m := bitutil.NewBitMatrix(width, height)
	maxX, maxY := width-blockSize, height-blockSize
	for y := 0; y < subHeight; y++ {
		yoff := min(y<<blockSizePower, maxY)
		top := clampNeighbourhood(y, subHeight-3)
		for x := 0; x < subWidth; x++ {
			xoff := min(x<<blockSizePower, maxX)
			left := clampNeighbourhood(x, subWidth-3)
			sum := 0
			for dy := -2; dy <= 2; dy++ {
				for dx := -2; dx <= 2; dx++ {
					sum += blackPoints[top+dy][left+dx]
				}
			}
			thresholdBlock(lum, xoff, yoff, sum/25, width, m)
		}
	}
	h.matrix = m
	return m, nil
}

// clampNeighbourhood keeps a 5x5 window centred on v inside [0, hi+2].
func clampNeighbourhood(v, hi int) int {
	if v < 2 {
		return 2
	}
	return min(v, hi)
}

func thresholdBlock(lum []byte, xoff, yoff, threshold, stride int, m *bitutil.BitMatrix) {
	for y := 0; y < blockSize; y++ {
		row := lum[(yoff+y)*stride+xoff:]
		for x := 0; x < blockSize; x++ {
			if int(row[x]) <= threshold {
				m.Set(xoff+x, yoff+y)
			}
		}
	}
}

// blockBlackPoints computes one black point per 8x8 block. Low-contrast
// blocks borrow from their already computed neighbours so that flat regions
// inside a symbol stay consistent with its edges.
func blockBlackPoints(lum []byte, subWidth, subHeight, width, height int) [][]int {
	maxX, maxY := width-blockSize, height-blockSize
	points := make([][]int, subHeight)
	for y := range points {
		points[y] = make([]int, subWidth)
		yoff := min(y<<blockSizePower, maxY)
		for x := range points[y] {
			xoff := min(x<<blockSizePower, maxX)
			sum, lo, hi := 0, 0xFF, 0
			for yy := 0; yy < blockSize; yy++ {
				row := lum[(yoff+yy)*width+xoff:]
				for xx := 0; xx < blockSize; xx++ {
					p := int(row[xx])
					sum += p
					lo = min(lo, p)
					hi = max(hi, p)
				}
			}

			avg := sum >> (blockSizePower * 2)
			if hi-lo <= minDynamicRange {
				avg = lo / 2
				if y > 0 && x > 0 {
					neighbours := (points[y-1][x] + 2*points[y][x-1] + points[y-1][x-1]) / 4
					if lo < neighbours {
						avg = neighbours
					}
				}
			}
			points[y][x] = avg
		}
	}
	return points
}
