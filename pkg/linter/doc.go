// Package linter runs style rules over declaration trees and collects their violations.
//
// # Overview
//
// A Rule inspects one decl.File and returns Violations. Rules are registered with a
// RuleRegistry and executed by a LintEngine, which filters them through the Config
// (disabled_rules / only_rules), runs them in name order, and concatenates their
// violations. A ParameterizedRule additionally exposes its ordered RuleParameter list;
// every parameter is evaluated independently, so one declaration can fail several
// severity tiers at once.
//
// # Configuration
//
// Configuration is YAML, discovered in the lint root as .declint.yml:
//
//	disabled_rules:
//	  - objc_identifier
//	excluded:
//	  - Pods
//	parser:
//	  type: structure
//	documentation_comments:
//	  cache_path: .protocols_cache.json
//	  blacklist:
//	    - ^MyVendorDelegate$
//	variable_name_min_length:
//	  - {severity: warning, value: 3}
//	  - {severity: error, value: 2}
//
// DECLINT_LOG_LEVEL, DECLINT_PROTOCOL_CACHE and DECLINT_WORKERS override the file.
//
// # Usage Example
//
//	config, err := linter.LoadConfigFromDir(dir)
//	if err != nil {
//		return err
//	}
//	engine := linter.NewLintEngine(config, linter.WithParser(decl.NewStructureFileParser("")))
//	if err := rules.RegisterDefaultRules(engine.Registry(), rules.Options{Config: config}); err != nil {
//		return err
//	}
//	run, err := engine.LintFiles(ctx, paths)
//
// # Related Packages
//
//   - pkg/linter/rules: Built-in rules
//   - pkg/protocols: Protocol cache and member resolution used by documentation_comments
//   - pkg/decl: Declaration tree model
package linter
