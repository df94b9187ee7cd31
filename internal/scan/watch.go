package scan

import (
	"context"
	"fmt"

	"github.com/howeyc/fsnotify"
)

// Watch scans every image file created in or moved into dir and passes the
// outcome to fn, until ctx is done. Files are read through the Scanner's
// file system, so dir must name the same directory on both. Writers should
// move finished files into dir: a file created in place may be scanned
// before it is complete.
func (s *Scanner) Watch(ctx context.Context, dir string, fn func(Outcome)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("scan: watching %s: %w", dir, err)
	}
	defer w.Close()
	if err := w.Watch(dir); err != nil {
		return fmt.Errorf("scan: watching %s: %w", dir, err)
	}
	tracer().Infof("watching %s", dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-w.Event:
			if ev == nil {
				return nil
			}
			if ev.IsCreate() && Supported(ev.Name) {
				fn(s.ScanFile(ev.Name))
			}
		case err := <-w.Error:
			if err == nil {
				return nil
			}
			tracer().Errorf("watch %s: %v", dir, err)
		}
	}
}
