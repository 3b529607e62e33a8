package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interactive-calculator/internal/calculator"
	"interactive-calculator/internal/config"
	"interactive-calculator/internal/observability"
	"interactive-calculator/internal/testutil"
)

// execute runs the root command with the given stdin and args and returns
// what it wrote to stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	return executeContext(t, context.Background(), strings.NewReader(stdin), args...)
}

func executeContext(t *testing.T, ctx context.Context, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()

	oldLogger := observability.Logger
	t.Cleanup(func() { observability.Logger = oldLogger })

	for _, key := range []string{config.EnvLogLevel, config.EnvBanner, config.EnvTelemetry, config.EnvStatusAddr} {
		t.Setenv(key, "")
	}

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetIn(stdin)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func TestRootCmdRunsSession(t *testing.T) {
	stdout, _, err := execute(t, "3\n4\n+\n5\n0\n/\n")
	require.NoError(t, err)

	testutil.ContainsInOrder(t, stdout,
		calculator.Banner,
		"Result: 3.00 + 4.00 = 7.00",
		"Operations performed: 1",
		calculator.MsgDivisionByZero,
	)
	assert.Equal(t, 1, strings.Count(stdout, "Operations performed"))
}

func TestRootCmdQuit(t *testing.T) {
	stdout, _, err := execute(t, "1\n2\nq\n3\n4\n+\n", "--banner=false")
	require.NoError(t, err)

	assert.NotContains(t, stdout, calculator.Banner)
	assert.True(t, strings.HasSuffix(stdout, calculator.PromptOperator+"\n"))
}

func TestRootCmdKeepsLogsOffStdout(t *testing.T) {
	stdout, stderr, err := execute(t, "2\n2\n*\n", "--banner=false", "--log-level", "info")
	require.NoError(t, err)

	assert.NotContains(t, stdout, "{")
	assert.Contains(t, stdout, "Result: 2.00 * 2.00 = 4.00")

	var messages []string
	for _, line := range strings.Split(strings.TrimSpace(stderr), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "stderr line %q", line)
		messages = append(messages, entry["msg"].(string))
	}
	assert.Contains(t, messages, "calculator operation completed")
	assert.Contains(t, messages, "session ended")
}

func TestRootCmdReadsInputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.txt")
	require.NoError(t, os.WriteFile(path, []byte("10\n4\n-\nq\n"), 0o644))

	stdout, _, err := execute(t, "", "--input", path, "--banner=false")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Result: 10.00 - 4.00 = 6.00")
}

func TestRootCmdMissingInputFile(t *testing.T) {
	_, _, err := execute(t, "", "--input", filepath.Join(t.TempDir(), "missing.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRootCmdRejectsInvalidLogLevel(t *testing.T) {
	_, _, err := execute(t, "", "--log-level", "chatty")

	var verr config.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "log_level", verr.Field)
}

func TestRootCmdConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calculator.yaml")
	require.NoError(t, os.WriteFile(path, []byte("banner: false\n"), 0o644))

	stdout, _, err := execute(t, "1\n1\n+\n", "--config", path)
	require.NoError(t, err)
	assert.NotContains(t, stdout, calculator.Banner)

	stdout, _, err = execute(t, "1\n1\n+\n", "--config", path, "--banner=true")
	require.NoError(t, err)
	assert.Contains(t, stdout, calculator.Banner)
}

func TestRootCmdWithStatusServer(t *testing.T) {
	stdout, _, err := execute(t, "6\n3\n/\n", "--banner=false", "--status-addr", "127.0.0.1:0")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Result: 6.00 / 3.00 = 2.00")
}

func TestRootCmdRejectsArguments(t *testing.T) {
	_, _, err := execute(t, "", "extra")
	require.Error(t, err)
}

func TestRootCmdVersion(t *testing.T) {
	stdout, _, err := execute(t, "", "--version")
	require.NoError(t, err)
	assert.Equal(t, "calculator version dev\n", stdout)
}
