package main

import (
	"testing"

	"github.com/harrison/combiner/internal/cmd"
)

func TestVersionDefault(t *testing.T) {
	if cmd.Version == "" {
		t.Error("Version should not be empty")
	}
}

func TestRootCommandVersion(t *testing.T) {
	root := cmd.NewRootCommand()
	if root.Version != cmd.Version {
		t.Errorf("root command version = %q, want %q", root.Version, cmd.Version)
	}
}
