package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReportAdd(t *testing.T) {
	r := &Report{}
	r.Add(FileResult{Path: "/a/one.txt", Name: "one.txt", Status: StatusIncluded, Bytes: 5})
	r.Add(FileResult{Path: "/a/.DS_Store", Name: ".DS_Store", Status: StatusExcluded, Reason: ReasonRule})
	r.Add(FileResult{Path: "/a/img.bin", Name: "img.bin", Status: StatusSkipped, Reason: ReasonNotText})
	r.Add(FileResult{Path: "/a/two.txt", Name: "two.txt", Status: StatusIncluded, Bytes: 7})

	assert.Equal(t, 2, r.Included)
	assert.Equal(t, 1, r.Excluded)
	assert.Equal(t, 1, r.Skipped)
	assert.Equal(t, int64(12), r.TotalBytes)
	assert.Len(t, r.Files, 4)
	assert.Equal(t, []string{"/a/one.txt", "/a/two.txt"}, r.IncludedPaths())

	skipped := r.SkippedFiles()
	if assert.Len(t, skipped, 1) {
		assert.Equal(t, "img.bin", skipped[0].Name)
	}
}

func TestReportDuration(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r := &Report{StartedAt: start}
	assert.Equal(t, time.Duration(0), r.Duration())

	r.FinishedAt = start.Add(1500 * time.Millisecond)
	assert.Equal(t, 1500*time.Millisecond, r.Duration())
}

func TestExclusionRuleValidate(t *testing.T) {
	tests := []struct {
		name    string
		rule    ExclusionRule
		wantErr bool
	}{
		{"name rule", ExclusionRule{Pattern: ".DS_Store", Match: MatchName}, false},
		{"path rule", ExclusionRule{Pattern: "node_modules", Match: MatchPath}, false},
		{"empty pattern", ExclusionRule{Pattern: "", Match: MatchPath}, true},
		{"unknown match", ExclusionRule{Pattern: ".png", Match: "ext"}, true},
		{"missing match", ExclusionRule{Pattern: ".png"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExclusionRuleString(t *testing.T) {
	assert.Equal(t, "path:/blockchain", ExclusionRule{Pattern: "/blockchain", Match: MatchPath}.String())
}

func TestEnumValid(t *testing.T) {
	assert.True(t, VariantStrict.Valid())
	assert.True(t, VariantPermissive.Valid())
	assert.False(t, Variant("lenient").Valid())
	assert.True(t, IdentifierName.Valid())
	assert.True(t, IdentifierPath.Valid())
	assert.False(t, IdentifierMode("").Valid())
}
