package bundleconfig

import "strings"

// Validate checks that every rule is scoped by an include or exclude filter
// and that its test compiles.
func Validate(cfg *Config) error {
	for _, rule := range cfg.Module.Rules {
		if !hasFilter(rule.Include) && !hasFilter(rule.Exclude) {
			return &ValidationError{Test: rule.Test, Reason: `"include" option is missing`}
		}
		if _, err := rule.Test.Regexp(); err != nil {
			return &ValidationError{Test: rule.Test, Reason: "test is not a valid regular expression"}
		}
	}
	return nil
}

// hasFilter reports whether filters holds at least one non-blank entry.
func hasFilter(filters []string) bool {
	for _, f := range filters {
		if strings.TrimSpace(f) != "" {
			return true
		}
	}
	return false
}
