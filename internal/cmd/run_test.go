package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/harrison/combiner/internal/aggregator"
	"github.com/harrison/combiner/internal/models"
	"github.com/harrison/combiner/internal/prompt"
)

// newProject creates a project directory with .combiner/config.yaml and the
// given files, and returns the project directory and config path.
func newProject(t *testing.T, configYAML string, files map[string]string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".combiner", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0755))
	require.NoError(t, os.WriteFile(configPath, []byte(configYAML), 0644))

	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir, configPath
}

// execute runs the root command with args and stdin, returning stdout and stderr
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

const twoDirConfig = `directories:
  - src
  - docs
`

func TestRun_CombinesConfiguredDirectories(t *testing.T) {
	dir, configPath := newProject(t, twoDirConfig, map[string]string{
		"src/main.go":                 "package main",
		"src/node_modules/x/index.js": "ignored",
		"docs/readme.md":              "# readme",
	})
	output := filepath.Join(dir, "combined.txt")

	stdout, stderr, err := execute(t, "", "run", "--config", configPath, "-o", output)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Files combined successfully into "+output)
	assert.Contains(t, stderr, filepath.Join(dir, "src", "main.go"))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	want := aggregator.Header("main.go") + "package main\n" +
		aggregator.Header("readme.md") + "# readme\n"
	assert.Equal(t, want, string(data))
}

func TestRun_PromptsForOutputWhenUnset(t *testing.T) {
	dir, configPath := newProject(t, twoDirConfig, map[string]string{
		"src/a.txt": "alpha",
	})
	output := filepath.Join(dir, "prompted.txt")

	stdout, _, err := execute(t, "  "+output+"  \n", "run", "--config", configPath)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, prompt.Message), "prompt should be printed first, got %q", stdout)
	assert.Contains(t, stdout, "Files combined successfully into "+output)
	assert.FileExists(t, output)
}

func TestRun_EmptyPromptAnswerIsReported(t *testing.T) {
	_, configPath := newProject(t, twoDirConfig, nil)

	stdout, _, err := execute(t, "\n", "run", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "An error occurred: output file name cannot be empty")
	assert.NotContains(t, stdout, "Files combined successfully")
}

func TestRun_PermissiveReadErrorIsPrinted(t *testing.T) {
	files := map[string]string{
		"src/a.txt":   "alpha",
		"src/bad.bin": string([]byte{0xff, 0xfe, 0xfd}),
	}

	t.Run("exit status zero by default", func(t *testing.T) {
		dir, configPath := newProject(t, "variant: permissive\n"+twoDirConfig, files)
		output := filepath.Join(dir, "combined.txt")

		stdout, _, err := execute(t, "", "run", "--config", configPath, "-o", output)
		require.NoError(t, err)
		assert.Contains(t, stdout, "An error occurred: failed to read "+filepath.Join(dir, "src", "bad.bin"))
		assert.NotContains(t, stdout, "Files combined successfully")
	})

	t.Run("fail-on-error returns the error", func(t *testing.T) {
		dir, configPath := newProject(t, "variant: permissive\n"+twoDirConfig, files)
		output := filepath.Join(dir, "combined.txt")

		stdout, _, err := execute(t, "", "run", "--config", configPath, "-o", output, "--fail-on-error")
		require.Error(t, err)
		assert.ErrorIs(t, err, aggregator.ErrNotText)
		assert.Contains(t, stdout, "An error occurred:")
	})
}

func TestRun_StrictSkipsAndWarns(t *testing.T) {
	dir, configPath := newProject(t, twoDirConfig, map[string]string{
		"src/a.txt":   "alpha",
		"src/bad.bin": string([]byte{0xff, 0xfe, 0xfd}),
	})
	output := filepath.Join(dir, "combined.txt")

	stdout, stderr, err := execute(t, "", "run", "--config", configPath, "-o", output)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Files combined successfully into "+output)
	assert.Contains(t, stderr, "1 file(s) skipped")
	// docs does not exist in this project
	assert.Contains(t, stderr, "1 configured directory not found")
}

func TestRun_VariantFlagOverridesConfig(t *testing.T) {
	dir, configPath := newProject(t, "variant: strict\n"+twoDirConfig, map[string]string{
		"src/package.json": "{}",
	})
	output := filepath.Join(dir, "combined.txt")

	_, _, err := execute(t, "", "run", "--config", configPath, "-o", output, "--variant", "permissive")
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	path := filepath.Join(dir, "src", "package.json")
	assert.Equal(t, aggregator.Header(path)+"{}\n", string(data))
}

func TestRun_WritesReport(t *testing.T) {
	dir, configPath := newProject(t, twoDirConfig, map[string]string{
		"src/a.txt":    "alpha",
		"src/logo.png": "png",
	})
	output := filepath.Join(dir, "combined.txt")
	reportPath := filepath.Join(t.TempDir(), "report.yaml")

	_, _, err := execute(t, "", "run", "--config", configPath, "-o", output, "--report", reportPath)
	require.NoError(t, err)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)

	var report models.Report
	require.NoError(t, yaml.Unmarshal(data, &report))
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, output, report.OutputPath)
	assert.Equal(t, 1, report.Included)
	assert.Equal(t, 1, report.Excluded)
	assert.Equal(t, []string{"docs"}, report.MissingDirectories)
}

func TestRun_LogDirCreatesRunLog(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("latest.log symlink requires privileges on windows")
	}
	dir, configPath := newProject(t, twoDirConfig, map[string]string{"src/a.txt": "alpha"})
	output := filepath.Join(dir, "combined.txt")
	logDir := filepath.Join(dir, "logs")

	_, _, err := execute(t, "", "run", "--config", configPath, "-o", output, "--log-dir", logDir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(logDir, "latest.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "=== Combiner Run Log ===")
	assert.Contains(t, string(data), "=== RUN SUMMARY ===")
}

func TestRun_LogDirFailureIsReported(t *testing.T) {
	dir, configPath := newProject(t, twoDirConfig, map[string]string{"src/a.txt": "alpha"})
	output := filepath.Join(dir, "combined.txt")
	// A regular file where the log directory should be
	logDir := filepath.Join(dir, "logs")
	require.NoError(t, os.WriteFile(logDir, []byte("not a directory"), 0644))

	t.Run("exit status zero by default", func(t *testing.T) {
		stdout, _, err := execute(t, "", "run", "--config", configPath, "-o", output, "--log-dir", logDir)
		require.NoError(t, err)
		assert.Contains(t, stdout, "An error occurred: failed to create file logger")
		assert.NotContains(t, stdout, "Files combined successfully")
		assert.NoFileExists(t, output)
	})

	t.Run("fail-on-error returns the error", func(t *testing.T) {
		stdout, _, err := execute(t, "", "run", "--config", configPath, "-o", output, "--log-dir", logDir, "--fail-on-error")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create file logger")
		assert.Contains(t, stdout, "An error occurred:")
	})
}

func TestRun_InvalidConfigurationIsCommandError(t *testing.T) {
	tests := []struct {
		name   string
		config string
		args   []string
		want   string
	}{
		{name: "unknown variant", config: "variant: loose\n", want: "invalid configuration"},
		{name: "malformed yaml", config: "directories: [src\n", want: "failed to load config"},
		{name: "unknown key", config: "directorys:\n  - src\n", want: "failed to load config"},
		{name: "bad log level flag", config: twoDirConfig, args: []string{"--log-level", "loud"}, want: "invalid log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, configPath := newProject(t, tt.config, nil)
			args := append([]string{"run", "--config", configPath, "-o", filepath.Join(t.TempDir(), "out.txt")}, tt.args...)

			_, _, err := execute(t, "", args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRun_RejectsArguments(t *testing.T) {
	_, _, err := execute(t, "", "run", "extra")
	assert.Error(t, err)
}
