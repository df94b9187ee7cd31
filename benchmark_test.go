package maxigo_test

import (
	"testing"

	"github.com/ericlevine/maxigo"
	"github.com/ericlevine/maxigo/binarizer"
	"github.com/ericlevine/maxigo/internal/symboltest"
	"github.com/ericlevine/maxigo/maxicode"
	"github.com/ericlevine/maxigo/maxicode/decoder"
)

var benchText = "[)>\x1e01\x1d96" + "1Z00004951\x1dUPSN\x1d06X610\x1d159"

func BenchmarkDecodeImage(b *testing.B) {
	img := symboltest.Render(symboltest.Symbol(4, benchText), 6, 12)
	reader := maxicode.NewReader()
	opts := &maxigo.DecodeOptions{PureBarcode: true}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		source := maxigo.NewImageLuminanceSource(img)
		bitmap := maxigo.NewBinaryBitmap(binarizer.NewGlobalHistogram(source))
		if _, err := reader.Decode(bitmap, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeImageHybrid(b *testing.B) {
	img := symboltest.Render(symboltest.Symbol(4, benchText), 6, 12)
	reader := maxicode.NewReader()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		source := maxigo.NewImageLuminanceSource(img)
		bitmap := maxigo.NewBinaryBitmap(binarizer.NewHybrid(source))
		if _, err := reader.Decode(bitmap, nil); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeCodewords(b *testing.B) {
	cw := symboltest.Codewords(symboltest.Datawords(4, benchText))
	for i := 0; i < 10; i++ {
		cw[20+5*i] ^= 0x15
	}
	d := decoder.NewDecoder()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := d.DecodeCodewords(cw); err != nil {
			b.Fatal(err)
		}
	}
}
