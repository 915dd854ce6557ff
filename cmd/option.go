package cmd

import (
	"strings"
	"time"

	"github.com/Nao-Mk2/showjobs/internal/config"
	"github.com/Nao-Mk2/showjobs/internal/filter"
	"github.com/Nao-Mk2/showjobs/internal/source"
	"github.com/Nao-Mk2/showjobs/internal/util"
)

// DateLayout is the format of --start and --end.
const DateLayout = "2006-01-02"

// Options holds CLI options after parsing flags and positional arguments.
type Options struct {
	ConfigPath string
	Source     string
	Dir        string
	Region     string
	Profile    string

	JobID   string
	User    string
	Group   string
	Account string
	Queue   string

	StartDate string
	EndDate   string
	Days      int
	OneOnly   bool

	Output string
	Query  string
	Color  bool
	Man    bool
}

// Validate checks flag values and their relationships.
// Returns an error message and exit code; ("", 0) means the options are usable.
func (o *Options) Validate() (string, int) {
	if o.Days < 0 {
		return "error: --days must not be negative", 2
	}
	if _, err := ResolveDateWindow(o.StartDate, o.EndDate, o.Days); err != nil {
		return "error: " + err.Error(), 2
	}
	switch strings.ToLower(o.Output) {
	case "", "text", "json":
	default:
		return "error: --output must be text or json", 2
	}
	if o.Query != "" {
		if strings.ToLower(o.Output) != "json" {
			return "error: --query requires --output json", 2
		}
		if err := util.ValidateQuery(o.Query); err != nil {
			return "error: " + err.Error(), 2
		}
	}
	switch strings.ToLower(o.Source) {
	case "", config.SourceLocal, config.SourceS3, config.SourceCloudWatch:
	default:
		return "error: --source must be local, s3 or cloudwatch", 2
	}
	return "", 0
}

// SetJobIDArg merges a positional job id with --job-id.
// Returns an error message when both are given and differ.
func (o *Options) SetJobIDArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	arg := strings.TrimSpace(args[0])
	if o.JobID != "" && o.JobID != arg {
		return "error: job id given both as argument and --job-id"
	}
	o.JobID = arg
	return ""
}

// Criteria returns the record filter described by the options.
func (o *Options) Criteria() filter.Criteria {
	return filter.Criteria{
		JobID:   o.JobID,
		Queue:   o.Queue,
		Group:   o.Group,
		Account: o.Account,
		User:    o.User,
	}
}

// ApplyTo overrides cfg with the settings given on the command line.
func (o *Options) ApplyTo(cfg config.Config) config.Config {
	if o.Source != "" {
		cfg.Source = strings.ToLower(o.Source)
	}
	if o.Dir != "" {
		cfg.TorqueHome = o.Dir
	}
	if o.Region != "" {
		cfg.Region = o.Region
	}
	if o.Profile != "" {
		cfg.Profile = o.Profile
	}
	return cfg
}

// ResolveDateWindow computes the log selection window from optional
// YYYY-MM-DD bounds and a day count.
// Rules:
// - empty bounds impose no restriction
// - both bounds set: validate start <= end
// - days > 0 keeps only the most recent days logs
func ResolveDateWindow(startStr, endStr string, days int) (source.Window, error) {
	w := source.Window{Days: days}
	if startStr != "" {
		start, err := time.Parse(DateLayout, startStr)
		if err != nil {
			return source.Window{}, err
		}
		w.Start = &start
	}
	if endStr != "" {
		end, err := time.Parse(DateLayout, endStr)
		if err != nil {
			return source.Window{}, err
		}
		w.End = &end
	}
	if w.Start != nil && w.End != nil && w.Start.After(*w.End) {
		return source.Window{}, ErrStartAfterEnd
	}
	return w, nil
}

// ErrStartAfterEnd represents an invalid window where start > end.
var ErrStartAfterEnd = &dateRangeError{"start date is after end date"}

type dateRangeError struct{ s string }

func (e *dateRangeError) Error() string { return e.s }
