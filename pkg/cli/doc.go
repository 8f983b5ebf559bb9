// Package cli provides the pactcore command-line interface.
//
// Commands:
//   - parse-path: show the tokens of a path expression
//   - select: pick the best matching rule list for a concrete path
//   - generate: run body generators over a JSON, XML or text body
//   - match: compare an actual body with an expected one under matching rules
//   - validate: schema-check rule and generator documents
//   - config: print the effective configuration
//   - version: show version information
//
// Every command accepts --json for machine-readable output, --config to
// name the pactcore.yaml file, --log-level and --log-format, and --metrics to
// print the generation and selection counters after the command ran.
package cli
