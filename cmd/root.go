package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Nao-Mk2/showjobs/internal/client"
	"github.com/Nao-Mk2/showjobs/internal/config"
	"github.com/Nao-Mk2/showjobs/internal/inspector"
	"github.com/Nao-Mk2/showjobs/internal/logger"
	"github.com/Nao-Mk2/showjobs/internal/output"
	"github.com/Nao-Mk2/showjobs/internal/source"
)

const manual = `NAME
       showjobs - list historical job information

SYNOPSIS
       showjobs [-u user_name] [-g group_name] [-a account_name] [-q queue_name]
       [-s start_date] [-e end_date] [-n days] [-o|--oneonly] [--help] [--man]
       [[-j] <job id>]

DESCRIPTION
       The showjobs command lists past job information. It searches through the
       daily TORQUE job log files while filtering according to the specified
       options. The relevant fields for each job are shown in a multi-line
       format, with a blank line between jobs.

OPTIONS
       -a account_name
           Show only job records matching the specified account.

       -e end_date
           Restricts the search to job files up to and including the specified
           date, given as YYYY-MM-DD. The default searches to the latest
           available job file.

       -g group_name
           Show only job records matching the specified group.

       [-j] job_id
           Show only job records matching the specified job id.

       -n days
           Restricts the number of past job files to search.

       -q queue_name
           Show only job records matching the specified queue.

       -s start_date
           Restricts the search to job files from the specified date onwards,
           given as YYYY-MM-DD. The default searches from the earliest available
           job file.

       -u user_name
           Show only job records matching the specified user.

       -o | --one-only | --oneonly
           Show only the first job record found. This is usually much faster and
           gives the same result as omitting the flag when searching for a
           specific non-array job or a specific array job member.

       --source local|s3|cloudwatch
           Where the daily job logs are read from (default local).

       --dir path
           Local job log directory (default /opt/torque_job_logs, or
           TORQUE_HOME_DIR).

       --output text|json, --query expression
           Print JSON instead of the text report, optionally projected with a
           JMESPath expression, e.g. --query '[].fields."Job Id"'.

       -h | --help
           brief help message

       --man
           full documentation

EXAMPLE
       Show job information for job id 220 and restrict the search to the last
       4 days.

       showjobs -n 4 -j 220
`

// usageError carries the exit code for invalid command line input.
type usageError struct {
	msg  string
	code int
}

func (e *usageError) Error() string { return e.msg }

// NewRootCommand builds the showjobs command writing the report to stdout.
func NewRootCommand(stdout io.Writer) *cobra.Command {
	o := &Options{}
	c := &cobra.Command{
		Use:   "showjobs [flags] [job id]",
		Short: "showjobs - list historical job information",
		Long: `showjobs searches the daily TORQUE job logs and prints one block of
fields per matching job. Run with --man for the full manual.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.Man {
				_, err := io.WriteString(stdout, manual)
				return err
			}
			if msg := o.SetJobIDArg(args); msg != "" {
				return &usageError{msg, 2}
			}
			if msg, code := o.Validate(); code != 0 {
				return &usageError{msg, code}
			}
			return Run(cmd.Context(), o, stdout)
		},
	}

	f := c.Flags()
	f.StringVarP(&o.User, "user", "u", "", "show only jobs of this user")
	f.StringVarP(&o.Group, "group", "g", "", "show only jobs of this group")
	f.StringVarP(&o.Account, "account", "a", "", "show only jobs of this account")
	f.StringVarP(&o.Queue, "queue", "q", "", "show only jobs of this queue")
	f.StringVarP(&o.JobID, "job-id", "j", "", "show only the job with this id")
	f.StringVarP(&o.StartDate, "start", "s", "", "first job log date to search (YYYY-MM-DD)")
	f.StringVarP(&o.EndDate, "end", "e", "", "last job log date to search (YYYY-MM-DD)")
	f.IntVarP(&o.Days, "days", "n", 0, "search only the most recent N job logs")
	f.BoolVarP(&o.OneOnly, "one-only", "o", false, "stop at the first matching job")
	f.BoolVar(&o.OneOnly, "oneonly", false, "alias of --one-only")
	_ = f.MarkHidden("oneonly")
	f.BoolVar(&o.Man, "man", false, "print the full manual")
	f.StringVar(&o.ConfigPath, "config", "", "config file (default ~/.config/showjobs/config.toml)")
	f.StringVar(&o.Source, "source", "", "job log source: local, s3 or cloudwatch")
	f.StringVar(&o.Dir, "dir", "", "local job log directory")
	f.StringVar(&o.Output, "output", "text", "output format: text or json")
	f.StringVar(&o.Query, "query", "", "JMESPath expression applied to JSON output")
	f.BoolVar(&o.Color, "color", false, "colourise field labels in the text report")
	f.StringVar(&o.Region, "region", "", "AWS region (optional; falls back to AWS defaults)")
	f.StringVar(&o.Profile, "profile", "", "AWS shared config profile (or set AWS_PROFILE)")
	return c
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context) int {
	c := NewRootCommand(os.Stdout)
	if err := c.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var ue *usageError
		if errors.As(err, &ue) {
			return ue.code
		}
		return 1
	}
	return 0
}

// Run loads configuration, selects the job logs and prints the matching jobs.
func Run(ctx context.Context, o *Options, stdout io.Writer) error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return err
	}
	cfg = o.ApplyTo(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger.Init(cfg.LogLevel, cfg.LogPretty)

	src, err := NewSource(ctx, cfg)
	if err != nil {
		return err
	}
	all, err := src.List(ctx)
	if err != nil {
		return err
	}
	window, err := ResolveDateWindow(o.StartDate, o.EndDate, o.Days)
	if err != nil {
		return err
	}
	files := source.Select(all, window)

	records, err := inspector.New(src, files).Search(ctx, o.Criteria().Predicate(), o.OneOnly)
	if err != nil {
		return err
	}

	var r output.Renderer
	switch strings.ToLower(o.Output) {
	case "json":
		r = output.NewJSONRenderer(stdout, o.Query)
	default:
		r = output.NewTextRenderer(stdout, o.Color)
	}
	return r.Render(records)
}

// NewSource builds the job log source selected by cfg.
func NewSource(ctx context.Context, cfg config.Config) (source.Source, error) {
	auth := client.AuthOptions{Region: cfg.Region, Profile: cfg.Profile}
	switch cfg.Source {
	case config.SourceS3:
		s3c, err := client.NewS3Client(ctx, auth)
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 client: %w", err)
		}
		return source.NewS3(s3c, cfg.S3Bucket, cfg.S3Prefix), nil
	case config.SourceCloudWatch:
		cw, err := client.NewCloudWatchClient(ctx, auth)
		if err != nil {
			return nil, fmt.Errorf("failed to create CloudWatch client: %w", err)
		}
		return source.NewCloudWatch(cw, cfg.LogGroup), nil
	default:
		return source.NewDir(cfg.TorqueHome), nil
	}
}
