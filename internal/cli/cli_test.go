package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/stashgrid/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name       string
		args       []string
		wantExit   bool
		wantCode   int
		wantErr    string
		wantOutput string
		check      func(t *testing.T, cfg *app.AppConfig)
	}{
		{
			name: "positional input with defaults",
			args: []string{"records/"},
			check: func(t *testing.T, cfg *app.AppConfig) {
				assert.Equal(t, "records/", cfg.InputPath)
				assert.Equal(t, "auto", cfg.InputFormat)
				assert.Equal(t, "json", cfg.OutputFormat)
				assert.Equal(t, "edge", cfg.Weighting)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.False(t, cfg.Verify)
			},
		},
		{
			name: "input flag wins over positional",
			args: []string{"-i", "a.hcl", "b.hcl"},
			check: func(t *testing.T, cfg *app.AppConfig) {
				assert.Equal(t, "a.hcl", cfg.InputPath)
			},
		},
		{
			name: "all options",
			args: []string{
				"--input", "data.xml", "--input-format", "XML", "-o", "plan.yaml", "-f", "yaml",
				"--weighting", "fractional", "--verify", "--log-level", "debug", "--log-format", "json",
			},
			check: func(t *testing.T, cfg *app.AppConfig) {
				assert.Equal(t, "xml", cfg.InputFormat)
				assert.Equal(t, "plan.yaml", cfg.OutputPath)
				assert.Equal(t, "yaml", cfg.OutputFormat)
				assert.Equal(t, "fractional", cfg.Weighting)
				assert.True(t, cfg.Verify)
				assert.Equal(t, "debug", cfg.LogLevel)
				assert.Equal(t, "json", cfg.LogFormat)
			},
		},
		{
			name: "server without input",
			args: []string{"--serve-port", "8080"},
			check: func(t *testing.T, cfg *app.AppConfig) {
				assert.Equal(t, 8080, cfg.ServePort)
				assert.Empty(t, cfg.InputPath)
			},
		},
		{
			name:       "help",
			args:       []string{"-h"},
			wantExit:   true,
			wantOutput: "Usage:",
		},
		{
			name:       "no input prints usage",
			args:       []string{},
			wantExit:   true,
			wantOutput: "stashgrid [options] [INPUT_PATH]",
		},
		{
			name:     "unknown flag",
			args:     []string{"--workers", "4"},
			wantCode: 2,
			wantErr:  "unknown flag: --workers",
		},
		{
			name:     "too many arguments",
			args:     []string{"a", "b"},
			wantCode: 2,
			wantErr:  "accepts at most 1 arg(s), received 2",
		},
		{
			name:     "invalid format",
			args:     []string{"-f", "xml", "records/"},
			wantCode: 2,
			wantErr:  `invalid OutputFormat "xml"`,
		},
		{
			name:     "invalid log level",
			args:     []string{"--log-level", "loud", "records/"},
			wantCode: 2,
			wantErr:  `invalid LogLevel "loud"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			out := &bytes.Buffer{}

			// Act
			cfg, shouldExit, err := Parse(tc.args, out)

			// Assert
			if tc.wantErr != "" {
				var exitErr *ExitError
				require.ErrorAs(t, err, &exitErr)
				assert.Equal(t, tc.wantCode, exitErr.Code)
				assert.Contains(t, exitErr.Message, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantExit, shouldExit)
			if tc.wantOutput != "" {
				assert.Contains(t, out.String(), tc.wantOutput)
			}
			if tc.check != nil {
				require.NotNil(t, cfg)
				tc.check(t, cfg)
			}
		})
	}
}

func TestParse_ConfigFile(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "stashgrid.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
input = "from-file"
output_format = "hcl"
weighting = "fractional"
log_level = "warn"
`), 0o600))

	// Act: the explicit flag overrides the file, the rest comes from it.
	cfg, shouldExit, err := Parse([]string{"--config", path, "--log-level", "error"}, &bytes.Buffer{})

	// Assert
	require.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Equal(t, "from-file", cfg.InputPath)
	assert.Equal(t, "hcl", cfg.OutputFormat)
	assert.Equal(t, "fractional", cfg.Weighting)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestParse_ConfigFileInputPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stashgrid.toml")
	require.NoError(t, os.WriteFile(path, []byte(`input = "from-file"`), 0o600))

	testCases := []struct {
		name string
		args []string
		want string
	}{
		{name: "file only", args: []string{"--config", path}, want: "from-file"},
		{name: "positional beats file", args: []string{"--config", path, "from-arg"}, want: "from-arg"},
		{name: "flag beats file", args: []string{"--config", path, "-i", "from-flag"}, want: "from-flag"},
		{name: "flag beats positional", args: []string{"--config", path, "-i", "from-flag", "from-arg"}, want: "from-flag"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, shouldExit, err := Parse(tc.args, &bytes.Buffer{})

			require.NoError(t, err)
			assert.False(t, shouldExit)
			assert.Equal(t, tc.want, cfg.InputPath)
		})
	}
}

func TestParse_ConfigFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stashgrid.toml")
	require.NoError(t, os.WriteFile(path, []byte(`grid = "old"`), 0o600))

	_, _, err := Parse([]string{"--config", path, "records/"}, &bytes.Buffer{})

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "unknown keys")
}
