// Package source lists and opens the daily job logs a query runs over.
//
// Logs are named by date (YYYYMMDD, optionally with a .gz suffix) and may live
// in a local directory, under an S3 prefix, or as streams of a CloudWatch log
// group. Every source returns its logs sorted ascending by date and opens
// compressed logs transparently.
package source

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/Nao-Mk2/showjobs/internal/model"
)

// Source lists daily job logs and opens them for reading.
type Source interface {
	List(ctx context.Context) ([]model.LogFile, error)
	Open(ctx context.Context, f model.LogFile) (io.ReadCloser, error)
}

// Window restricts the logs a query reads. Days keeps only the most recent
// N logs; Start and End are inclusive date bounds. Zero values impose no
// restriction.
type Window struct {
	Start *time.Time
	End   *time.Time
	Days  int
}

// Select applies w to files, which must be sorted ascending by date. The
// Days limit is applied first, to all files, then the date bounds.
func Select(files []model.LogFile, w Window) []model.LogFile {
	if w.Days > 0 && w.Days < len(files) {
		files = files[len(files)-w.Days:]
	}
	out := make([]model.LogFile, 0, len(files))
	for _, f := range files {
		if w.Start != nil && f.Date.Before(day(*w.Start)) {
			continue
		}
		if w.End != nil && f.Date.After(day(*w.End)) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// collect keeps the dated logs among paths and sorts them by date.
func collect(paths []string) []model.LogFile {
	var files []model.LogFile
	for _, p := range paths {
		if f, ok := model.ParseLogFile(p); ok {
			files = append(files, f)
		}
	}
	sort.SliceStable(files, func(i, j int) bool {
		if files[i].Date.Equal(files[j].Date) {
			return files[i].Name < files[j].Name
		}
		return files[i].Date.Before(files[j].Date)
	})
	return files
}

// decompress wraps rc in a gzip reader when f is compressed.
func decompress(f model.LogFile, rc io.ReadCloser) (io.ReadCloser, error) {
	if !f.Compressed() {
		return rc, nil
	}
	gz, err := gzip.NewReader(rc)
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("gzip %s: %w", f.Name, err)
	}
	return &gzipReadCloser{Reader: gz, under: rc}, nil
}

type gzipReadCloser struct {
	*gzip.Reader
	under io.Closer
}

func (g *gzipReadCloser) Close() error {
	err := g.Reader.Close()
	if cerr := g.under.Close(); err == nil {
		err = cerr
	}
	return err
}
