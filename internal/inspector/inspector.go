package inspector

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/Nao-Mk2/showjobs/internal/fields"
	"github.com/Nao-Mk2/showjobs/internal/jobxml"
	"github.com/Nao-Mk2/showjobs/internal/model"
	"github.com/Nao-Mk2/showjobs/internal/output"
	"github.com/Nao-Mk2/showjobs/internal/scanner"
)

// Opener is the subset of a log source the Inspector reads from.
type Opener interface {
	Open(ctx context.Context, f model.LogFile) (io.ReadCloser, error)
}

// Inspector searches an ordered list of daily job logs.
type Inspector struct {
	src       Opener
	files     []model.LogFile
	formatter fields.Formatter
	log       zerolog.Logger
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithLogger sets the logger used for skipped-file warnings.
func WithLogger(l zerolog.Logger) Option {
	return func(in *Inspector) { in.log = l }
}

// WithFormatter sets the formatter applied to extracted fields.
func WithFormatter(f fields.Formatter) Option {
	return func(in *Inspector) { in.formatter = f }
}

// New creates an Inspector over files, which are read in the order given.
func New(src Opener, files []model.LogFile, opts ...Option) *Inspector {
	in := &Inspector{src: src, files: files, log: zlog.Logger}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Search returns the formatted records accepted by match, in file order.
// A log that cannot be opened or read is skipped with a warning. With
// onlyFirst set the search ends at the first match and later logs are
// never opened.
func (in *Inspector) Search(ctx context.Context, match jobxml.Predicate, onlyFirst bool) ([]model.JobRecord, error) {
	if in.src == nil {
		return nil, errors.New("no log source configured")
	}
	var records []model.JobRecord
	for _, f := range in.files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		found, err := in.searchFile(ctx, f, match, onlyFirst)
		if err != nil {
			in.log.Warn().Err(err).Str("file", f.Path).Msg("skipping job log")
		}
		records = append(records, found...)
		if onlyFirst && len(records) > 0 {
			return records[:1], nil
		}
	}
	return records, nil
}

// Report runs Search and renders the matches as a text report. The report
// is empty when nothing matched.
func (in *Inspector) Report(ctx context.Context, match jobxml.Predicate, onlyFirst bool) (string, error) {
	records, err := in.Search(ctx, match, onlyFirst)
	if err != nil {
		return "", err
	}
	return output.Report(records), nil
}

// searchFile scans a single log. Records matched before a read error are
// still returned alongside the error.
func (in *Inspector) searchFile(ctx context.Context, f model.LogFile, match jobxml.Predicate, onlyFirst bool) ([]model.JobRecord, error) {
	rc, err := in.src.Open(ctx, f)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var records []model.JobRecord
	sc := scanner.New(rc, match, onlyFirst)
	for sc.Next() {
		raw := fields.Extract(sc.Record())
		records = append(records, model.JobRecord{File: f, Fields: in.formatter.FormatAll(raw)})
	}
	return records, sc.Err()
}
