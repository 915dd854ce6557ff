package fields

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind selects how a raw value is rendered.
type Kind int

const (
	Identity Kind = iota
	Duration      // seconds -> [DD:]HH:MM:SS
	Memory        // "9373440kb" -> "8.9Gb"
	Epoch         // seconds since the epoch -> "Wed Oct 26 22:37:02 2016"
	Presence      // always "True"
)

// EpochLayout renders epoch fields, e.g. "Wed Oct 26 22:37:02 2016".
const EpochLayout = "Mon Jan 02 15:04:05 2006"

type display struct {
	name Name
	kind Kind
}

// displayOrder is the canonical report order.
var displayOrder = []display{
	{JobID, Identity},
	{JobName, Identity},
	{OutputFile, Identity},
	{ErrorFile, Identity},
	{WorkingDirectory, Identity},
	{HomeDirectory, Identity},
	{SubmitArguments, Identity},
	{UserName, Identity},
	{GroupName, Identity},
	{AccountName, Identity},
	{QueueName, Identity},
	{QualityOfService, Identity},
	{Architecture, Identity},
	{OperatingSystem, Identity},
	{NodeCount, Identity},
	{WallclockLimit, Duration},
	{WallclockUsed, Duration},
	{CPUTime, Duration},
	{MemoryUsed, Memory},
	{MemoryLimit, Memory},
	{VmemUsed, Memory},
	{VmemLimit, Memory},
	{SubmitTime, Epoch},
	{StartTime, Epoch},
	{EndTime, Epoch},
	{ExitCode, Identity},
	{MasterHost, Identity},
	{Interactive, Presence},
	{JobDependencies, Identity},
	{JobScript, Identity},
}

var kinds = func() map[Name]Kind {
	m := make(map[Name]Kind, len(displayOrder))
	for _, d := range displayOrder {
		m[d.name] = d.kind
	}
	return m
}()

// Order returns the canonical display order.
func Order() []Name {
	names := make([]Name, len(displayOrder))
	for i, d := range displayOrder {
		names[i] = d.name
	}
	return names
}

// KindOf returns the formatting kind registered for name. Unknown names are
// rendered as-is.
func KindOf(name Name) Kind {
	return kinds[name]
}

// Formatter renders raw values. The zero value formats epoch fields in the
// local time zone.
type Formatter struct {
	Location *time.Location
}

var local Formatter

// Format renders one raw value using the local time zone.
func Format(name Name, raw string) string { return local.Format(name, raw) }

// FormatAll renders every field of m in canonical order using the local
// time zone.
func FormatAll(m Map) []Field { return local.FormatAll(m) }

// Format renders one raw value according to the kind registered for name.
func (f Formatter) Format(name Name, raw string) string {
	switch KindOf(name) {
	case Duration:
		return formatDuration(raw)
	case Memory:
		return formatMemory(raw)
	case Epoch:
		return f.formatEpoch(raw)
	case Presence:
		return "True"
	default:
		return raw
	}
}

// FormatAll renders the fields present in m, in canonical order. Fields
// missing from m produce no entry.
func (f Formatter) FormatAll(m Map) []Field {
	out := make([]Field, 0, len(m))
	for _, d := range displayOrder {
		raw, ok := m[d.name]
		if !ok {
			continue
		}
		out = append(out, Field{Name: d.name, Value: f.Format(d.name, raw)})
	}
	return out
}

func formatDuration(raw string) string {
	secs, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || secs < 0 {
		return raw
	}
	days := secs / 86400
	rem := secs % 86400
	hms := fmt.Sprintf("%02d:%02d:%02d", rem/3600, rem%3600/60, rem%60)
	if days > 0 {
		return fmt.Sprintf("%02d:%s", days, hms)
	}
	return hms
}

func formatMemory(raw string) string {
	if !strings.ContainsAny(raw, "kK") {
		return raw
	}
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	kilo, err := strconv.ParseFloat(digits.String(), 64)
	if err != nil {
		return raw
	}
	if kilo <= 1024 {
		return raw
	}
	mega := kilo / 1024
	if mega > 1024 {
		return fmt.Sprintf("%.1fGb", mega/1024)
	}
	return fmt.Sprintf("%.1fMb", mega)
}

func (f Formatter) formatEpoch(raw string) string {
	secs, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return raw
	}
	loc := f.Location
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(secs, 0).In(loc).Format(EpochLayout)
}
