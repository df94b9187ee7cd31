package maxicode

import (
	"errors"
	"image"
	"testing"

	"github.com/ericlevine/maxigo"
	"github.com/ericlevine/maxigo/binarizer"
	"github.com/ericlevine/maxigo/bitutil"
	"github.com/ericlevine/maxigo/internal/symboltest"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func bitmap(img image.Image) *maxigo.BinaryBitmap {
	return maxigo.NewBinaryBitmap(binarizer.NewGlobalHistogram(maxigo.NewImageLuminanceSource(img)))
}

// withCorners is grid as it reads back from a rendered image.
func withCorners(grid *bitutil.BitMatrix) *bitutil.BitMatrix {
	g := grid.Clone()
	g.Set(0, 0)
	g.Set(29, 0)
	g.Set(0, 32)
	return g
}

func TestExtractGridFromRender(t *testing.T) {
	grid := symboltest.Symbol(4, "EXTRACT ME")
	for _, scale := range []int{3, 4, 5, 6, 8} {
		matrix, err := bitmap(symboltest.Render(grid, scale, 2*scale)).BlackMatrix()
		if err != nil {
			t.Fatalf("scale %d: %v", scale, err)
		}
		got, err := ExtractGrid(matrix)
		if err != nil {
			t.Fatalf("scale %d: %v", scale, err)
		}
		if !got.Equals(withCorners(grid)) {
			t.Errorf("scale %d: extracted grid differs\n%s", scale, got)
		}
		again, _ := ExtractGrid(matrix)
		if !again.Equals(got) {
			t.Errorf("scale %d: extraction is not repeatable", scale)
		}
	}
}

func TestExtractGridEmptyImage(t *testing.T) {
	if _, err := ExtractGrid(bitutil.NewBitMatrix(60, 66)); !errors.Is(err, maxigo.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSampleGridOutsideImage(t *testing.T) {
	m := bitutil.NewBitMatrix(30, 33)
	m.SetRegion(0, 0, 30, 33)
	// the last module of an odd row lands one pixel right of the rectangle
	_, err := SampleGrid(m, bitutil.Rect{Width: 30, Height: 33})
	if !errors.Is(err, maxigo.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if _, err := SampleGrid(m, bitutil.Rect{}); !errors.Is(err, maxigo.ErrNotFound) {
		t.Errorf("empty rect: err = %v, want ErrNotFound", err)
	}
}

func TestReaderDecode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "maxicode")
	defer teardown()

	img := symboltest.Render(symboltest.Symbol(4, "HELLO WORLD"), 6, 12)
	result, err := NewReader().Decode(bitmap(img), &maxigo.DecodeOptions{PureBarcode: true})
	if err != nil {
		t.Fatal(err)
	}
	if result.Text != "HELLO WORLD" {
		t.Errorf("text = %q", result.Text)
	}
	if level, _ := result.MetadataString(maxigo.MetadataErrorCorrectionLevel); level != "4" {
		t.Errorf("ec level = %q", level)
	}
	if n, ok := result.Metadata[maxigo.MetadataErrorsCorrected].(int); !ok || n > 2 {
		t.Errorf("errors corrected = %v", result.Metadata[maxigo.MetadataErrorsCorrected])
	}
	if result.NumBits != 8*len(result.RawBytes) {
		t.Errorf("NumBits = %d for %d raw bytes", result.NumBits, len(result.RawBytes))
	}
}

func TestReaderCarrierMetadata(t *testing.T) {
	words := symboltest.Datawords(2, "[)>\x1e01\x1d96TRACK")
	symboltest.SetNumericCarrier(words, 152382802, 9, 840, 1)
	img := symboltest.Render(symboltest.Grid(symboltest.Codewords(words)), 4, 8)

	result, err := NewReader().Decode(bitmap(img), nil)
	if err != nil {
		t.Fatal(err)
	}
	for key, want := range map[maxigo.ResultMetadataKey]string{
		maxigo.MetadataPostalCode:   "152382802",
		maxigo.MetadataCountryCode:  "840",
		maxigo.MetadataServiceClass: "1",
	} {
		if got, _ := result.MetadataString(key); got != want {
			t.Errorf("%v = %q, want %q", key, got, want)
		}
	}
}

type fakeDetector struct {
	grid  *bitutil.BitMatrix
	calls int
}

func (d *fakeDetector) Detect(*bitutil.BitMatrix) (*maxigo.DetectorResult, error) {
	d.calls++
	if d.grid == nil {
		return nil, maxigo.ErrNotFound
	}
	return &maxigo.DetectorResult{
		Bits:   d.grid,
		Points: []maxigo.ResultPoint{{X: 1, Y: 2}, {X: 3, Y: 4}},
	}, nil
}

func TestReaderUsesDetector(t *testing.T) {
	blank := symboltest.Render(bitutil.NewBitMatrix(30, 33), 4, 8)
	det := &fakeDetector{grid: symboltest.Symbol(5, "DETECTED")}

	result, err := NewReader().Decode(bitmap(blank), &maxigo.DecodeOptions{Detector: det})
	if err != nil {
		t.Fatal(err)
	}
	if result.Text != "DETECTED" || len(result.Points) != 2 {
		t.Errorf("result = %q with %d points", result.Text, len(result.Points))
	}

	// a pure barcode hint bypasses the detector
	calls := det.calls
	_, _ = NewReader().Decode(bitmap(blank), &maxigo.DecodeOptions{Detector: det, PureBarcode: true})
	if det.calls != calls {
		t.Error("detector consulted for a pure barcode")
	}

	_, err = NewReader().Decode(bitmap(blank), &maxigo.DecodeOptions{Detector: &fakeDetector{}})
	if !errors.Is(err, maxigo.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestReaderAlsoInverted(t *testing.T) {
	img := symboltest.Invert(symboltest.Render(symboltest.Symbol(4, "NEGATIVE"), 5, 10))

	if _, err := NewReader().Decode(bitmap(img), nil); err == nil {
		t.Fatal("decoded an inverted symbol without AlsoInverted")
	}

	bm := bitmap(img)
	result, err := NewReader().Decode(bm, &maxigo.DecodeOptions{AlsoInverted: true})
	if err != nil {
		t.Fatal(err)
	}
	if result.Text != "NEGATIVE" {
		t.Errorf("text = %q", result.Text)
	}
	cached, _ := bm.BlackMatrix()
	if !cached.Get(0, 0) {
		t.Error("inverting must not touch the cached black matrix")
	}
}

func TestReaderDecodeMatrix(t *testing.T) {
	result, err := NewReader().DecodeMatrix(symboltest.Symbol(4, "GRID"))
	if err != nil {
		t.Fatal(err)
	}
	if result.Text != "GRID" {
		t.Errorf("text = %q", result.Text)
	}
	if _, err := NewReader().DecodeMatrix(bitutil.NewBitMatrix(10, 10)); !errors.Is(err, maxigo.ErrFormat) {
		t.Errorf("err = %v, want ErrFormat", err)
	}
}

func BenchmarkExtractGrid(b *testing.B) {
	matrix, err := bitmap(symboltest.Render(symboltest.Symbol(4, "BENCH"), 6, 12)).BlackMatrix()
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ExtractGrid(matrix); err != nil {
			b.Fatal(err)
		}
	}
}
