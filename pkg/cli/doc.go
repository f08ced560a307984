// Package cli provides the declint command-line interface.
//
// # Commands
//
// lint: Lint source files under a directory
//
//	declint lint \
//		--dir ./Sources \
//		--format github \
//		--fail-on-warning
//
// Each source file is read through its structure document (Foo.swift.structure.json by
// default) or, with parser.type command in the config, through an external structure tool.
// --watch keeps running and re-lints when source or structure files change. --metrics-out
// writes the run's Prometheus metrics in text format.
//
// rules: List the available rules and their parameters
//
//	declint rules --config .declint.yml
//
// # Output Formats
//
// text (default), json (the full run including its id and the files that failed to
// parse), and github (workflow annotations).
package cli
