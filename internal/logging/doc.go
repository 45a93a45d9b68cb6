// Package logging constructs slog loggers for the CLI and pipeline.
//
// Two formats are supported: a pretty console handler for interactive use
// (colored when stdout is a terminal) and a JSON handler for log files and
// machine consumption. Components never build their own loggers; they
// receive a *slog.Logger and attach the standardized field keys defined
// here.
package logging
