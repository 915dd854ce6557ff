// Package config loads showjobs settings.
//
// Settings come from a TOML file (default ~/.config/showjobs/config.toml),
// then environment variables, then command line flags applied by the caller.
// A missing file is not an error: defaults read the local TORQUE job log
// directory /opt/torque_job_logs.
//
// Example config.toml:
//
//	source = "s3"
//	s3_bucket = "hpc-archive"
//	s3_prefix = "torque/job_logs/"
//	region = "us-east-1"
//	log_level = "info"
//
// Environment overrides:
//
//   - TORQUE_HOME_DIR: local job log directory
//   - SHOWJOBS_SOURCE: local, s3 or cloudwatch
//   - AWS_REGION, AWS_PROFILE: AWS settings (a profile in the file wins over AWS_PROFILE)
//   - SHOWJOBS_LOG_LEVEL: zerolog level for diagnostics on stderr
package config
