// Package rules contains the built-in declint rules.
//
// The threshold rules (variable_name_min_length, variable_name_max_length,
// type_name_min_length, type_name_max_length) share one traversal: every descendant of the
// root is visited pre-order, names of private declarations lose one leading underscore, and
// each configured parameter that fails yields its own violation.
//
// documentation_comments requires comments on public and internal declarations and their
// direct members. Members that implement a protocol found through the protocol cache, and
// every declaration conforming to a blacklisted protocol, are exempt.
//
// objc_identifier reports @objc attributes that share a line with the declaration.
package rules
