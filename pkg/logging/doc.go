// Package logging builds the slog loggers used by pactcore.
//
// Library packages (contract, generate, matching) never create loggers of
// their own. They hold a no-op logger until the host calls their SetLogger
// function:
//
//	log := logging.New(logging.Config{
//	    Level:  logging.ParseLevel("debug"),
//	    Format: logging.FormatJSON,
//	})
//	contract.SetLogger(log)
//	generate.SetLogger(log)
//
// Skipped document entries are reported at warn, generator failures that
// leave a value unchanged at debug.
//
// NewTee fans one record out to several outputs, for example the terminal
// and a log file with its own level and format.
package logging
