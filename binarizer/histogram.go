// Package binarizer turns greyscale luminance into black/white module data.
package binarizer

import (
	"github.com/ericlevine/maxigo"
	"github.com/ericlevine/maxigo/bitutil"
)

const (
	luminanceBits    = 5
	luminanceShift   = 8 - luminanceBits
	luminanceBuckets = 1 << luminanceBits
)

// GlobalHistogram picks a single black point for the whole image from a
// histogram of its central area. It suits the clean, evenly lit label scans
// MaxiCode is usually printed on.
type GlobalHistogram struct {
	source maxigo.LuminanceSource
}

// NewGlobalHistogram creates a GlobalHistogram binarizer over source.
func NewGlobalHistogram(source maxigo.LuminanceSource) *GlobalHistogram {
	return &GlobalHistogram{source: source}
}

func (g *GlobalHistogram) LuminanceSource() maxigo.LuminanceSource { return g.source }
func (g *GlobalHistogram) Width() int                              { return g.source.Width() }
func (g *GlobalHistogram) Height() int                             { return g.source.Height() }

// BlackMatrix samples four rows across the middle three fifths of the image,
// estimates the black point from their histogram and thresholds every pixel.
func (g *GlobalHistogram) BlackMatrix() (*bitutil.BitMatrix, error) {
	width, height := g.source.Width(), g.source.Height()

	var buckets [luminanceBuckets]int
	row := make([]byte, width)
	for i := 1; i < 5; i++ {
		row = g.source.Row(height*i/5, row)
		for x := width / 5; x < width*4/5; x++ {
			buckets[row[x]>>luminanceShift]++
		}
	}
	blackPoint, err := estimateBlackPoint(buckets[:])
	if err != nil {
		return nil, err
	}

	matrix := bitutil.NewBitMatrix(width, height)
	lum := g.source.Matrix()
	for y := 0; y < height; y++ {
		for x, v := range lum[y*width : (y+1)*width] {
			if int(v) < blackPoint {
				matrix.Set(x, y)
			}
		}
	}
	return matrix, nil
}

// estimateBlackPoint finds the two tallest well-separated peaks of the
// histogram and returns the deepest valley between them, favouring valleys
// closer to the white peak.
func estimateBlackPoint(buckets []int) (int, error) {
	n := len(buckets)
	firstPeak, firstPeakSize, maxCount := 0, 0, 0
	for x, c := range buckets {
		if c > firstPeakSize {
			firstPeak, firstPeakSize = x, c
		}
		if c > maxCount {
			maxCount = c
		}
	}

	// The second peak must be tall and far from the first.
	secondPeak, secondPeakScore := 0, 0
	for x, c := range buckets {
		d := x - firstPeak
		if score := c * d * d; score > secondPeakScore {
			secondPeak, secondPeakScore = x, score
		}
	}
	if firstPeak > secondPeak {
		firstPeak, secondPeak = secondPeak, firstPeak
	}
	if secondPeak-firstPeak <= n/16 {
		return 0, maxigo.ErrNotFound
	}

	bestValley, bestScore := secondPeak-1, -1
	for x := secondPeak - 1; x > firstPeak; x-- {
		d := x - firstPeak
		score := d * d * (secondPeak - x) * (maxCount - buckets[x])
		if score > bestScore {
			bestValley, bestScore = x, score
		}
	}
	return bestValley << luminanceShift, nil
}
