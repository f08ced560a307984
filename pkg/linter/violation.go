package linter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/platinummonkey/declint/pkg/decl"
)

// ErrInvalidSeverity is returned when a severity name is not recognized
var ErrInvalidSeverity = errors.New("invalid severity")

// Severity indicates how serious a violation is
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ParseSeverity converts a case-insensitive severity name to a Severity
func ParseSeverity(s string) (Severity, error) {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case SeverityError:
		return SeverityError, nil
	case SeverityWarning:
		return SeverityWarning, nil
	case SeverityInfo:
		return SeverityInfo, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSeverity, s)
}

// Valid reports whether the severity is one of the known values
func (s Severity) Valid() bool {
	_, err := ParseSeverity(string(s))
	return err == nil
}

// ViolationType groups related violations
type ViolationType string

const (
	TypeDocumentationComment ViolationType = "Documentation Comment"
	TypeNameFormat           ViolationType = "Name Format"
	TypeObjcIdentifier       ViolationType = "Objc Identifier"
)

// Violation represents a linting violation. Violations compare structurally.
type Violation struct {
	Rule     string        `json:"rule"`
	Type     ViolationType `json:"type"`
	Severity Severity      `json:"severity"`
	Location decl.Location `json:"location"`
	Reason   string        `json:"reason"`
}

func (v Violation) String() string {
	var pos string
	if v.Location.HasLine() {
		pos = fmt.Sprintf("%s:%d:%d", v.Location.File, v.Location.Line, v.Location.Character)
	} else {
		pos = fmt.Sprintf("%s@%d", v.Location.File, v.Location.Offset)
	}
	return fmt.Sprintf("%s: %s: %s Violation (%s): %s", pos, v.Severity, v.Type, v.Rule, v.Reason)
}

// RuleParameter is one severity-tagged threshold of a parameterized rule
type RuleParameter struct {
	Severity Severity `yaml:"severity" json:"severity"`
	Value    int      `yaml:"value" json:"value"`
}

// LintResult contains the result of linting a single file
type LintResult struct {
	FilePath   string      `json:"file_path"`
	Violations []Violation `json:"violations"`
}

// Summary provides an overview of all lint results
type Summary struct {
	TotalFiles      int `json:"total_files"`
	FailedFiles     int `json:"failed_files"`
	TotalViolations int `json:"total_violations"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Infos           int `json:"infos"`
}
