package handlers

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neighborly/internal/core"
)

// runCLI executes the root command against a config file that disables the
// model, so every plan is built from fallback content.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{"OPENAI_API_KEY", "GEMINI_API_KEY", "GOOGLE_GEMINI_API_KEY", "GOOGLE_AI_API_KEY", "AI_PROVIDER", "PORT", "HOST", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
	t.Setenv("USE_OPENAI", "0")

	configPath := filepath.Join(home, "neighborly.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("ai:\n  enabled: false\nlogging:\n  level: error\n"), 0644))

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", configPath}, args...))

	err := root.Execute()
	return out.String(), err
}

func TestPlanCmd_JSON(t *testing.T) {
	out, err := runCLI(t, "plan", "--format", "json", "--organizer", "Maple Street Association", "--date", "2025-12-25", "--time", "4 PM", "--venue", "Maple Street Park")
	require.NoError(t, err)

	var plan core.Plan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))

	assert.NotEmpty(t, plan.ID)
	assert.Equal(t, "Block Party", plan.Request.EventType)
	assert.Equal(t, core.SourceFallback, plan.Ideas.Source)
	assert.Equal(t, core.FailureConfiguration, plan.Invitations.Reason)
	require.Len(t, plan.Invitations.Value, 3)
	assert.Contains(t, plan.Invitations.Value[0].Body, "Block Party organized by Maple Street Association")
	require.Len(t, plan.Timeline.Value, 4)
	assert.Equal(t, "Dec 25 (Event Day)", plan.Timeline.Value[3].Period)
}

func TestPlanCmd_TextDefault(t *testing.T) {
	out, err := runCLI(t, "plan", "--event-type", "Potluck")
	require.NoError(t, err)

	assert.Contains(t, out, "Potluck Plan")
	assert.Equal(t, 3, strings.Count(out, "(fallback)"))
	assert.Contains(t, out, "6–4 Weeks Before")
}

func TestPlanCmd_MarkdownOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plans")

	out, err := runCLI(t, "plan", "--format", "markdown", "--output", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "Plan saved to "+dir)
	assert.Contains(t, out, "## Invitations (fallback)")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "plan_"))
}

func TestPlanCmd_UnknownFormat(t *testing.T) {
	_, err := runCLI(t, "plan", "--format", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["plan"])
}
