package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arcanaland/greetcard/internal/ai"
	"github.com/arcanaland/greetcard/internal/card"
	"github.com/arcanaland/greetcard/internal/config"
)

// isolate points config, data and API key lookups at an empty temp directory
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("ZHIPU_API_KEY", "")
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	RootCmd.SetOut(buf)
	RootCmd.SetErr(buf)
	RootCmd.SetArgs(args)
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
		RootCmd.SetIn(nil)
		RootCmd.SetArgs(nil)
	})

	err := RootCmd.Execute()
	return buf.String(), err
}

func TestVersionCommandOutputsBuildInfo(t *testing.T) {
	isolate(t)
	originalVersion := version
	t.Cleanup(func() { version = originalVersion })
	version = "1.2.3"

	out, err := execute(t, "version")

	require.NoError(t, err)
	require.Contains(t, out, "greetcard 1.2.3")
	require.Contains(t, out, "commit: none")
}

func TestGenerateJSONIsReproducibleWithSeed(t *testing.T) {
	isolate(t)

	decode := func() card.Card {
		out, err := execute(t, "generate", "--seed", "42", "--to", "Alice", "--from", "Bob", "--decorations", "12", "-o", "json")
		require.NoError(t, err)
		var c card.Card
		require.NoError(t, json.Unmarshal([]byte(out), &c))
		return c
	}

	first := decode()
	second := decode()

	assert.Equal(t, card.Birthday, first.Type)
	assert.Equal(t, card.Elegant, first.Theme)
	assert.Equal(t, "Alice", first.Recipient)
	assert.Len(t, first.Decorations, 12)
	assert.Equal(t, first.Message, second.Message)
	assert.Equal(t, first.Decorations, second.Decorations)
	assert.Equal(t, first.MusicURL, second.MusicURL)
}

func TestGenerateYAML(t *testing.T) {
	isolate(t)

	out, err := execute(t, "generate", "--type", "wedding", "--theme", "vintage", "--seed", "7", "--to", "", "--from", "", "--decorations", "3", "-o", "yaml")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "wedding", doc["type"])
	assert.Equal(t, "vintage", doc["theme"])
	assert.Len(t, doc["decorations"], 3)
	assert.NotContains(t, doc, "recipient")
}

func TestGenerateText(t *testing.T) {
	isolate(t)

	out, err := execute(t, "generate", "--type", "christmas", "--seed", "3", "--to", "Alice", "--from", "Bob", "--decorations", "5", "--width", "60", "-o", "text")
	require.NoError(t, err)

	assert.Contains(t, out, "圣诞")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Bob")
	assert.Contains(t, out, "id ")
}

func TestGenerateRejectsBadInput(t *testing.T) {
	isolate(t)

	_, err := execute(t, "generate", "--type", "party", "-o", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown card type: party")

	_, err = execute(t, "generate", "--type", "birthday", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown output format "xml"`)
}

func TestGenerateUsesConfigDefaults(t *testing.T) {
	isolate(t)

	_, err := execute(t, "config", "set", "default_type", "new-year")
	require.NoError(t, err)

	out, err := execute(t, "generate", "--type", "", "--theme", "", "--seed", "1", "--decorations", "0", "-o", "json")
	require.NoError(t, err)

	var c card.Card
	require.NoError(t, json.Unmarshal([]byte(out), &c))
	assert.Equal(t, card.NewYear, c.Type)
	assert.Empty(t, c.Decorations)
}

func TestPackExportAndValidate(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "builtin.toml")

	_, err := execute(t, "pack", "export", path)
	require.NoError(t, err)

	out, err := execute(t, "pack", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
	assert.NotContains(t, out, "Warnings")
}

func TestPackValidateReportsErrors(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[pack]
id = "broken"
name = "Broken"
version = "1.0.0"

[messages]
party = ["hi"]
`), 0o644))

	out, err := execute(t, "pack", "validate", path)
	require.EqualError(t, err, "validation failed")
	assert.Contains(t, out, "validation errors")
	assert.Contains(t, out, "party")
	assert.Contains(t, out, "Warnings")
}

func TestPackLibrary(t *testing.T) {
	isolate(t)

	_, err := execute(t, "pack", "ls")
	require.NoError(t, err)

	_, err = execute(t, "pack", "init")
	require.NoError(t, err)

	_, err = execute(t, "pack", "export", filepath.Join(config.GetPackLibraryPath(), "mine.toml"))
	require.NoError(t, err)

	_, err = execute(t, "pack", "use", "mine")
	require.NoError(t, err)

	out, err := execute(t, "pack", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "* mine")
	assert.Contains(t, out, "[DEFAULT]")

	_, err = execute(t, "pack", "use", "missing")
	require.Error(t, err)

	_, err = execute(t, "pack", "use", "builtin")
	require.NoError(t, err)
	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.Pack)
}

func TestKeyLifecycle(t *testing.T) {
	isolate(t)

	out, err := execute(t, "key", "set", "google", "abcdefghijklmnop")
	require.NoError(t, err)
	assert.Contains(t, out, "Stored google key abcd****mnop")
	assert.NotContains(t, out, "abcdefghijklmnop")

	out, err = execute(t, "key", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "abcd****mnop")
	assert.Contains(t, out, "not set")

	_, err = execute(t, "key", "clear", "google")
	require.NoError(t, err)

	out, err = execute(t, "key", "ls")
	require.NoError(t, err)
	assert.NotContains(t, out, "abcd****mnop")
}

func TestKeySetReadsStdin(t *testing.T) {
	isolate(t)
	RootCmd.SetIn(strings.NewReader("zhipu-secret-key\n"))

	_, err := execute(t, "key", "set", "zhipu")
	require.NoError(t, err)

	out, err := execute(t, "key", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "zhip****-key")
}

func TestKeySetRejectsUnknownProvider(t *testing.T) {
	isolate(t)

	_, err := execute(t, "key", "set", "openai", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestAIMessageWithoutKey(t *testing.T) {
	isolate(t)

	_, err := execute(t, "ai", "message", "-p", "google", "-t", "birthday")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ai.ErrUnconfigured))
	assert.Contains(t, err.Error(), "GOOGLE_API_KEY")
}

func TestAIMessageFromZhipu(t *testing.T) {
	isolate(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"title\":\"生日快乐\",\"message\":[\"愿你笑口常开\"],\"signature\":\"好友\"}"}}]}`))
	}))
	t.Cleanup(server.Close)

	_, err := execute(t, "config", "set", "zhipu.base_url", server.URL)
	require.NoError(t, err)
	t.Setenv("ZHIPU_API_KEY", "test-key")

	out, err := execute(t, "ai", "message", "-p", "zhipu", "-t", "birthday")
	require.NoError(t, err)
	assert.Contains(t, out, "生日快乐")
	assert.Contains(t, out, "愿你笑口常开")
	assert.Contains(t, out, "好友")
}

func TestAIImageFallsBackWithoutKey(t *testing.T) {
	isolate(t)

	out, err := execute(t, "ai", "image", "-p", "google", "-t", "wedding")
	require.NoError(t, err)
	assert.Contains(t, out, ai.DefaultImageURL(card.Wedding))
	assert.Contains(t, out, "default")
}

func TestConfigCommands(t *testing.T) {
	isolate(t)

	out, err := execute(t, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, config.GetConfigFilePath(), strings.TrimSpace(out))

	_, err = execute(t, "config", "set", "decoration_count", "500")
	require.Error(t, err)

	_, err = execute(t, "config", "set", "colour", "red")
	require.ErrorIs(t, err, config.ErrUnknownKey)

	_, err = execute(t, "config", "set", "default_theme", "nature")
	require.NoError(t, err)

	out, err = execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `default_theme = "nature"`)
}

func TestCardRequestValidation(t *testing.T) {
	isolate(t)

	_, err := execute(t, "generate", "--type", "birthday", "--theme", "neon", "-o", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown theme: neon")

	_, err = execute(t, "generate", "--theme", "", "--to", strings.Repeat("a", 41), "-o", "json")
	require.EqualError(t, err, "--to is longer than 40 characters")

	_, err = execute(t, "generate", "--to", "", "--decorations", "500", "-o", "json")
	require.EqualError(t, err, "invalid --decorations: 500")
}

func TestPackExportReportsWriteFailures(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "exported.toml")
	out, err := execute(t, "pack", "export", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Pack written to "+path)

	out, err = execute(t, "pack", "export", filepath.Join(dir, "missing", "exported.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error creating pack file")
	assert.NotContains(t, out, "Pack written")
}

func TestPackListWarnsAboutInvalidPacks(t *testing.T) {
	isolate(t)

	_, err := execute(t, "pack", "init")
	require.NoError(t, err)
	broken := filepath.Join(config.GetPackLibraryPath(), "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("[messages]\nbirthday = [\"\"]\n"), 0o644))

	out, err := execute(t, "pack", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, "skipping invalid pack")
	assert.Contains(t, out, "No packs found")
}
