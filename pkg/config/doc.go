// Package config loads pactcore project configuration and the rule and
// generator documents it points at.
//
// A project is described by pactcore.yaml (JSON is accepted too):
//
//	logging:
//	  level: debug
//	  format: json
//	mode: provider
//	context:
//	  id: 42
//	  mockServer:
//	    url: http://localhost:9000
//	rules:
//	  - contracts/**/*.rules.yaml
//	generators:
//	  - contracts/**/*.generators.yaml
//	documents:
//	  - contracts/**/*.pact.yaml
//
// Glob patterns are resolved relative to the configuration file and support
// "**" for recursive matching. PACTCORE_CONFIG names the configuration file
// when no path is given, and PACTCORE_LOG_LEVEL overrides logging.level.
package config
