package model

import (
	"path"
	"strings"
	"time"

	"github.com/Nao-Mk2/showjobs/internal/fields"
)

// DateLayout is the stem of a daily job log name, e.g. "20161026".
const DateLayout = "20060102"

// LogFile is one daily job log as listed by a source.
type LogFile struct {
	Name string    // base name, e.g. "20161026" or "20161026.gz"
	Path string    // file path, S3 key or CloudWatch stream name
	Date time.Time // parsed from Name, midnight UTC
}

// Compressed reports whether the log is gzip compressed.
func (f LogFile) Compressed() bool {
	return strings.HasSuffix(f.Name, ".gz")
}

// ParseLogFile builds a LogFile from a source path. ok is false when the
// base name is not a dated job log.
func ParseLogFile(p string) (LogFile, bool) {
	name := path.Base(strings.ReplaceAll(p, "\\", "/"))
	if !strings.HasPrefix(name, "20") {
		return LogFile{}, false
	}
	stem := strings.TrimSuffix(name, ".gz")
	date, err := time.Parse(DateLayout, stem)
	if err != nil {
		return LogFile{}, false
	}
	return LogFile{Name: name, Path: p, Date: date}, true
}

// JobRecord is one matched job with its formatted fields in display order.
type JobRecord struct {
	File   LogFile
	Fields []fields.Field
}

// Value returns the formatted value of name, if present.
func (r JobRecord) Value(name fields.Name) (string, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}
