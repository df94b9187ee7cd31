// Package scan decodes MaxiCode symbols from image files: one at a time,
// in bounded parallel batches, or as they appear in a watched folder.
package scan

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"runtime"
	"strings"

	// image formats accepted by DecodeImage
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/ericlevine/maxigo"
	"github.com/ericlevine/maxigo/binarizer"
	"github.com/ericlevine/maxigo/maxicode"
	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// tracer writes to trace with key 'maxiscan'
func tracer() tracing.Trace {
	return tracing.Select("maxiscan")
}

// ErrImage is returned for input that is not a decodable image.
var ErrImage = errors.New("scan: unreadable image")

// Config configures a Scanner.
type Config struct {
	// Workers bounds the number of files decoded at once. Zero or less
	// means GOMAXPROCS.
	Workers int

	// AlsoInverted retries each image as a negative.
	AlsoInverted bool

	// Charset names the encoding reports transcode text into, by name or
	// ECI value. Empty means no transcoding.
	Charset string
}

// Scanner decodes images read from a file system.
type Scanner struct {
	fs     afero.Fs
	cfg    Config
	reader *maxicode.Reader
}

// New creates a Scanner reading files from fs.
func New(fs afero.Fs, cfg Config) *Scanner {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	return &Scanner{fs: fs, cfg: cfg, reader: maxicode.NewReader()}
}

// Config returns the effective configuration.
func (s *Scanner) Config() Config {
	return s.cfg
}

// Outcome is the result of scanning one file.
type Outcome struct {
	Path   string
	Result *maxigo.Result
	Err    error
}

// DecodeImage decodes the first symbol found in an encoded image. The image
// is binarized with a global histogram first and with local thresholding
// if that fails.
func (s *Scanner) DecodeImage(r io.Reader) (*maxigo.Result, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImage, err)
	}
	tracer().Debugf("decoding %s image %v", format, img.Bounds().Size())
	return s.Decode(img)
}

// Decode decodes the first symbol found in img. A panic raised while
// decoding malformed input is returned as an error.
func (s *Scanner) Decode(img image.Image) (result *maxigo.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("scan: decoder panic: %v", r)
		}
	}()
	src := maxigo.NewImageLuminanceSource(img)
	opts := &maxigo.DecodeOptions{PureBarcode: true, AlsoInverted: s.cfg.AlsoInverted}
	var first error
	for _, b := range []maxigo.Binarizer{binarizer.NewGlobalHistogram(src), binarizer.NewHybrid(src)} {
		r, derr := s.reader.Decode(maxigo.NewBinaryBitmap(b), opts)
		if derr == nil {
			return r, nil
		}
		if first == nil {
			first = derr
		}
	}
	return nil, first
}

// ScanFile decodes the image at path.
func (s *Scanner) ScanFile(path string) Outcome {
	out := Outcome{Path: path}
	f, err := s.fs.Open(path)
	if err != nil {
		out.Err = err
		return out
	}
	defer f.Close()
	out.Result, out.Err = s.DecodeImage(f)
	if out.Err != nil {
		tracer().Infof("%s: %v", path, out.Err)
	} else {
		tracer().Debugf("%s: %q", path, out.Result.Text)
	}
	return out
}

// ScanFiles decodes paths with at most Config.Workers files in flight.
// Outcomes are returned in the order of paths. A failing file does not stop
// the others; once ctx is done the remaining files report its error.
func (s *Scanner) ScanFiles(ctx context.Context, paths []string) []Outcome {
	outcomes := make([]Outcome, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for i, path := range paths {
		if err := gctx.Err(); err != nil {
			outcomes[i] = Outcome{Path: path, Err: err}
			continue
		}
		i, path := i, path
		g.Go(func() error {
			outcomes[i] = s.ScanFile(path)
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

// Supported reports whether path has the extension of a readable image.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp":
		return true
	}
	return false
}
