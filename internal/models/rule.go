package models

import "fmt"

// MatchTarget selects what an exclusion pattern is tested against
type MatchTarget string

const (
	MatchName MatchTarget = "name" // Filename only
	MatchPath MatchTarget = "path" // Full joined path
)

// IdentifierMode selects what the header line names
type IdentifierMode string

const (
	IdentifierName IdentifierMode = "name" // Bare filename
	IdentifierPath IdentifierMode = "path" // Full file path
)

// Variant names a preset of exclusion rules, identifier mode and error tolerance
type Variant string

const (
	VariantStrict     Variant = "strict"
	VariantPermissive Variant = "permissive"
)

// ExclusionRule excludes a file when Pattern occurs anywhere in the matched target.
// Matching is plain substring containment, not glob or extension matching.
type ExclusionRule struct {
	Pattern string      `yaml:"pattern"`
	Match   MatchTarget `yaml:"match"`
}

// String renders the rule as "match:pattern"
func (r ExclusionRule) String() string {
	return fmt.Sprintf("%s:%s", r.Match, r.Pattern)
}

// Validate checks that the rule has a pattern and a known match target
func (r ExclusionRule) Validate() error {
	if r.Pattern == "" {
		return fmt.Errorf("exclusion pattern cannot be empty")
	}
	if !r.Match.Valid() {
		return fmt.Errorf("invalid exclusion match %q for pattern %q, must be one of: name, path", r.Match, r.Pattern)
	}
	return nil
}

// Valid reports whether t is a known match target
func (t MatchTarget) Valid() bool {
	return t == MatchName || t == MatchPath
}

// Valid reports whether m is a known identifier mode
func (m IdentifierMode) Valid() bool {
	return m == IdentifierName || m == IdentifierPath
}

// Valid reports whether v is a known variant
func (v Variant) Valid() bool {
	return v == VariantStrict || v == VariantPermissive
}
