// Package filter decides which files are left out of an aggregation run.
//
// A Set is an ordered list of substring rules. Each rule is tested against
// either the filename or the full path; the first rule that matches wins.
package filter

import (
	"path/filepath"
	"strings"

	"github.com/harrison/combiner/internal/models"
)

// Set is an ordered collection of exclusion rules. A nil Set excludes nothing.
type Set struct {
	rules []models.ExclusionRule
}

// New creates a Set from rules, keeping their order
func New(rules []models.ExclusionRule) *Set {
	copied := make([]models.ExclusionRule, len(rules))
	copy(copied, rules)
	return &Set{rules: copied}
}

// StrictRules returns the rules of the strict variant: macOS metadata by
// filename, then image, dependency directory, lockfile, manifest, source map
// and embedded subsystem markers anywhere in the path.
func StrictRules() []models.ExclusionRule {
	return []models.ExclusionRule{
		{Pattern: ".DS_Store", Match: models.MatchName},
		{Pattern: ".png", Match: models.MatchPath},
		{Pattern: "node_modules", Match: models.MatchPath},
		{Pattern: "package-lock.json", Match: models.MatchPath},
		{Pattern: "package.json", Match: models.MatchPath},
		{Pattern: ".map", Match: models.MatchPath},
		{Pattern: "/blockchain", Match: models.MatchPath},
	}
}

// RulesFor returns the preset rules of a variant
func RulesFor(v models.Variant) []models.ExclusionRule {
	if v == models.VariantStrict {
		return StrictRules()
	}
	return []models.ExclusionRule{}
}

// Match returns the first rule excluding path, if any.
// Path rules see slash-separated paths so patterns like "/blockchain" behave
// the same on every platform.
func (s *Set) Match(path string) (models.ExclusionRule, bool) {
	if s == nil {
		return models.ExclusionRule{}, false
	}

	name := filepath.Base(path)
	slashed := filepath.ToSlash(path)

	for _, rule := range s.rules {
		target := slashed
		if rule.Match == models.MatchName {
			target = name
		}
		if strings.Contains(target, rule.Pattern) {
			return rule, true
		}
	}

	return models.ExclusionRule{}, false
}

// Len returns the number of rules
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}
