package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), &stdout, &stderr, args)
	return stdout.String(), stderr.String(), err
}

func TestRunNoCommand(t *testing.T) {
	_, stderr, err := runCLI(t)
	require.Error(t, err)
	assert.Contains(t, stderr, "Commands:")
}

func TestRunUnknownCommand(t *testing.T) {
	_, _, err := runCLI(t, "frobnicate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frobnicate")
}

func TestRunHelp(t *testing.T) {
	stdout, _, err := runCLI(t, "help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "generate")
	assert.Contains(t, stdout, "export")
}

func TestRunVersion(t *testing.T) {
	stdout, _, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, version)
	assert.Contains(t, stdout, "RekaKata")
}

func TestRunInfoAllPlatforms(t *testing.T) {
	stdout, _, err := runCLI(t, "info")
	require.NoError(t, err)
	assert.Contains(t, stdout, "tiktok")
	assert.Contains(t, stdout, "instagram")
	assert.Contains(t, stdout, "youtube")
	assert.Contains(t, stdout, "9:16")
}

func TestRunInfoSinglePlatform(t *testing.T) {
	stdout, _, err := runCLI(t, "info", "--platform", "reels")
	require.NoError(t, err)
	assert.Contains(t, stdout, "instagram")
	assert.NotContains(t, stdout, "youtube")
}

func TestRunInfoUnsupportedPlatform(t *testing.T) {
	_, _, err := runCLI(t, "info", "--platform", "snapchat")
	require.Error(t, err)
}

func TestRunGenerateRequiresIdea(t *testing.T) {
	_, _, err := runCLI(t, "generate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "idea")
}

func TestRunGenerateRejectsBadFormat(t *testing.T) {
	_, _, err := runCLI(t, "generate", "--format", "xml", "some idea")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format")
}

func TestRunGenerateRejectsUnknownPlatform(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk_test")

	_, _, err := runCLI(t, "generate", "--platform", "snapchat", "some idea")
	require.Error(t, err)
}

func TestSplitPlatforms(t *testing.T) {
	assert.Equal(t, []string{"tiktok"}, splitPlatforms("tiktok"))
	assert.Equal(t, []string{"tiktok", "instagram"}, splitPlatforms("tiktok, instagram"))
	assert.Equal(t, []string{"tiktok"}, splitPlatforms(" , ,"))
}

func TestCLISessionFor(t *testing.T) {
	assert.Equal(t, "cli", cliSessionFor("tiktok", false))
	assert.Equal(t, "cli-instagram", cliSessionFor("instagram", true))
}
