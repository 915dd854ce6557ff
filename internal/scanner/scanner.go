// Package scanner splits a daily job log into individual <Jobinfo> records
// and yields the ones accepted by a predicate.
package scanner

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/Nao-Mk2/showjobs/internal/jobxml"
)

const (
	recordName  = "Jobinfo"
	recordOpen  = "<" + recordName
	recordClose = "</" + recordName + ">"

	maxLineSize = 16 * 1024 * 1024
)

// Scanner reads job records from a line oriented source. Successive calls to
// Next step through the matching records in file order; Record returns the
// current one and Err reports the first file level failure.
//
// Records that cannot be parsed are skipped silently: log files are appended
// to while they are read, so a record cut short mid-write is expected.
type Scanner struct {
	lines     *bufio.Scanner
	match     jobxml.Predicate
	onlyFirst bool

	buf  bytes.Buffer
	open bool // buf holds a record start not yet closed

	rec  *jobxml.Node
	done bool
	err  error
}

// New returns a Scanner over r. A nil match accepts every record. With
// onlyFirst set the Scanner stops reading after the first match.
func New(r io.Reader, match jobxml.Predicate, onlyFirst bool) *Scanner {
	if match == nil {
		match = jobxml.MatchAll
	}
	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Scanner{lines: lines, match: match, onlyFirst: onlyFirst}
}

// Next advances to the next matching record. It returns false at end of
// input, after the first match in onlyFirst mode, or on a file level error.
func (s *Scanner) Next() bool {
	s.rec = nil
	if s.done {
		return false
	}
	for s.lines.Scan() {
		line := s.lines.Bytes()
		trimmed := bytes.TrimSpace(line)

		if isRecordStart(trimmed) {
			if s.open {
				// The previous record never reached its closing tag.
				s.buf.Reset()
			}
			s.open = true
		}
		s.buf.Write(line)
		s.buf.WriteByte('\n')

		if !bytes.HasPrefix(trimmed, []byte(recordClose)) {
			continue
		}

		rec, err := jobxml.Parse(s.buf.Bytes())
		s.buf.Reset()
		s.open = false
		if err != nil {
			s.fail(err)
			return false
		}
		if rec == nil || rec.Name != recordName || !s.match(rec) {
			continue
		}

		s.rec = rec
		if s.onlyFirst {
			s.done = true
		}
		return true
	}
	if err := s.lines.Err(); err != nil {
		s.fail(fmt.Errorf("read: %w", err))
		return false
	}
	s.done = true
	return false
}

// Record returns the record found by the last successful call to Next.
func (s *Scanner) Record() *jobxml.Node { return s.rec }

// Err returns the file level error that stopped the scan, if any.
func (s *Scanner) Err() error { return s.err }

func (s *Scanner) fail(err error) {
	s.err = err
	s.done = true
}

func isRecordStart(trimmed []byte) bool {
	if !bytes.HasPrefix(trimmed, []byte(recordOpen)) {
		return false
	}
	rest := trimmed[len(recordOpen):]
	return len(rest) == 0 || rest[0] == '>' || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '/'
}
