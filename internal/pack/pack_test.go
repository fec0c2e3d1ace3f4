package pack

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/greetcard/internal/card"
)

func TestDefaultCoversEveryName(t *testing.T) {
	p := Default()

	for _, ct := range card.AllTypes() {
		msgs, err := p.MessagesFor(ct)
		require.NoError(t, err)
		assert.NotEmpty(t, msgs)

		tracks, err := p.MusicFor(ct)
		require.NoError(t, err)
		assert.NotEmpty(t, tracks)

		patterns, err := p.PatternsFor(ct)
		require.NoError(t, err)
		assert.NotEmpty(t, patterns)
	}
	for _, theme := range card.AllThemes() {
		_, err := p.ColorScheme(theme)
		require.NoError(t, err)
	}
	assert.Equal(t, "/music/beautiful-love.mp3", p.Music[card.Wedding][1])
}

func TestDefaultReturnsFreshMaps(t *testing.T) {
	a := Default()
	a.Messages[card.Birthday] = nil

	b := Default()
	assert.NotEmpty(t, b.Messages[card.Birthday])
}

func TestAccessorsReportMissingEntries(t *testing.T) {
	p := &Pack{}

	_, err := p.MessagesFor(card.Birthday)
	require.Error(t, err)
	_, err = p.ColorScheme(card.Elegant)
	require.Error(t, err)
	_, err = p.MusicFor(card.Birthday)
	require.Error(t, err)
	_, err = p.PatternsFor(card.Birthday)
	require.Error(t, err)
}

func TestLoadReplacesWholeEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "festive.toml")
	content := `
[pack]
id = "festive"
name = "Festive"
version = "2.0"

[messages]
Birthday = ["生日快乐！"]

[color_schemes.nature]
primary = "#000000"
secondary = "#111111"
accent = "#222222"
text = "#333333"
background = "#ffffff"

[patterns]
thank-you = ["Ribbon"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	base := Default()

	assert.Equal(t, "festive", p.ID)
	assert.Equal(t, path, p.Path)
	assert.Equal(t, []string{"生日快乐！"}, p.Messages[card.Birthday])
	assert.Equal(t, base.Messages[card.Wedding], p.Messages[card.Wedding])
	assert.Equal(t, card.ColorScheme{Primary: "#000000", Secondary: "#111111", Accent: "#222222", Text: "#333333", Background: "#ffffff"}, p.ColorSchemes[card.Nature])
	assert.Equal(t, base.ColorSchemes[card.Elegant], p.ColorSchemes[card.Elegant])
	assert.Equal(t, []card.DecorationType{card.Ribbon}, p.Patterns[card.ThankYou])

	assert.Contains(t, p.Fallbacks, "messages.wedding")
	assert.Contains(t, p.Fallbacks, "color_schemes.elegant")
	assert.NotContains(t, p.Fallbacks, "messages.birthday")
	assert.NotContains(t, p.Fallbacks, "color_schemes.nature")
}

func TestLoadRejectsUnknownNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[patterns]\nbirthday = [\"candles\"]\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "candles")

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestEncodeRoundTripsDefault(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Default().Encode(&buf))

	path := filepath.Join(t.TempDir(), "export.toml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, p.Fallbacks)

	base := Default()
	assert.Equal(t, base.Messages, p.Messages)
	assert.Equal(t, base.ColorSchemes, p.ColorSchemes)
	assert.Equal(t, base.Music, p.Music)
	assert.Equal(t, base.Patterns, p.Patterns)
	assert.Equal(t, DefaultID, p.ID)
}

func TestLoadRejectsIncompleteEntries(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "partial color scheme",
			content: "[color_schemes.elegant]\nprimary = \"#123456\"\n",
			wantErr: "color_schemes.elegant: secondary is required",
		},
		{
			name: "non hex color",
			content: `[color_schemes.cute]
primary = "pink"
secondary = "#111111"
accent = "#222222"
text = "#333333"
background = "#ffffff"
`,
			wantErr: `color_schemes.cute: primary "pink" is not a hex color`,
		},
		{
			name:    "blank template",
			content: "[messages]\nbirthday = [\"\"]\n",
			wantErr: "messages.birthday[0]: entry is blank",
		},
		{
			name:    "empty track list",
			content: "[music]\nwedding = []\n",
			wantErr: "music.wedding: list is empty",
		},
		{
			name:    "blank track",
			content: "[music]\nwedding = [\"/music/a.mp3\", \"  \"]\n",
			wantErr: "music.wedding[1]: entry is blank",
		},
		{
			name:    "empty pattern list",
			content: "[patterns]\nchristmas = []\n",
			wantErr: "patterns.christmas: list is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "pack.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			p, err := Load(path)
			require.Error(t, err)
			assert.Nil(t, p)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
