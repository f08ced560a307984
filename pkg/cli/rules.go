package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/platinummonkey/declint/pkg/linter"
)

// newRulesCommand creates the command listing the available rules
func newRulesCommand(out io.Writer) *Command {
	fs := flag.NewFlagSet("rules", flag.ContinueOnError)

	var (
		dir        = fs.String("dir", ".", "Directory to search for a config file")
		configFile = fs.String("config", "", "Path to lint config file (.declint.yml)")
	)

	return &Command{
		Name:        "rules",
		Description: "List available lint rules",
		Flags:       fs,
		out:         out,
		Run: func(args []string) error {
			if err := fs.Parse(args); err != nil {
				return err
			}

			config, err := loadLintConfig(*dir, *configFile)
			if err != nil {
				return err
			}
			setup, err := newLintSetup(config, false, false)
			if err != nil {
				return err
			}
			return lintListRules(out, setup.engine)
		},
	}
}

func lintListRules(out io.Writer, engine *linter.LintEngine) error {
	allRules := engine.Registry().GetAllRules()
	enabled := make(map[string]bool)
	for _, rule := range engine.Registry().GetEnabledRules(engine.Config()) {
		enabled[rule.Name()] = true
	}

	fmt.Fprintf(out, "Available lint rules (%d):\n\n", len(allRules))

	for _, t := range []linter.ViolationType{
		linter.TypeDocumentationComment,
		linter.TypeNameFormat,
		linter.TypeObjcIdentifier,
	} {
		rules := engine.Registry().GetRulesByType(t)
		if len(rules) == 0 {
			continue
		}

		fmt.Fprintf(out, "%s Rules:\n", t)
		for _, rule := range rules {
			status := ""
			if !enabled[rule.Name()] {
				status = " [disabled]"
			}
			fmt.Fprintf(out, "  - %-25s%s%s\n    %s\n",
				rule.Name(),
				formatParameters(rule),
				status,
				rule.Description(),
			)
		}
		fmt.Fprintln(out)
	}

	return nil
}

func formatParameters(rule linter.Rule) string {
	parameterized, ok := rule.(linter.ParameterizedRule)
	if !ok {
		return ""
	}
	parts := make([]string, 0, len(parameterized.Parameters()))
	for _, p := range parameterized.Parameters() {
		parts = append(parts, fmt.Sprintf("%s=%d", p.Severity, p.Value))
	}
	return " [" + strings.Join(parts, ", ") + "]"
}
