package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"profile-summary/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFlags_OnlyChangedFlagsOverride(t *testing.T) {
	cmd := newRootCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--format", "json", "--max-age", "2h", "--cache"}))

	cfg := config.Default()
	cfg.MaxWorkers = 7
	cfg.Token = "from-config"

	opts := &options{}
	flags := cmd.Flags()
	opts.format, _ = flags.GetString("format")
	opts.maxAge, _ = flags.GetDuration("max-age")
	opts.useCache, _ = flags.GetBool("cache")
	opts.workers, _ = flags.GetInt("workers")

	applyFlags(cmd, opts, cfg, []string{"octocat", "arg-token"})

	assert.Equal(t, "octocat", cfg.Username)
	assert.Equal(t, "arg-token", cfg.Token)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 2*time.Hour, cfg.MaxAge)
	assert.True(t, cfg.UseCache)
	assert.Equal(t, 7, cfg.MaxWorkers, "unset flags keep the configured value")
}

func TestPromptUsername(t *testing.T) {
	var prompt bytes.Buffer
	name, err := promptUsername(strings.NewReader("  octocat \n"), &prompt)
	require.NoError(t, err)
	assert.Equal(t, "octocat", name)
	assert.Equal(t, "GitHub username: ", prompt.String())

	name, err = promptUsername(strings.NewReader("hubot"), &prompt)
	require.NoError(t, err)
	assert.Equal(t, "hubot", name)

	_, err = promptUsername(strings.NewReader(""), &prompt)
	assert.Error(t, err)
}

func TestRootCommand_RejectsExtraArgs(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"a", "b", "c"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, logLevel(false))
	assert.Equal(t, slog.LevelDebug, logLevel(true))
}
