package prepare

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTokens = `{
  "colors": {
    "brand": {"500": "#6c5ce7", "600": "#5a4bd1"},
    "neutral": {"100": "#f5f6fa"},
    "accent": {"500": "#00cec9"}
  },
  "logo": "public/logo.png"
}`

func TestParseDocumentValid(t *testing.T) {
	doc, err := ParseDocument([]byte(sampleTokens))
	require.NoError(t, err)

	assert.Equal(t, "#6c5ce7", doc.Colors.Brand["500"])
	assert.Equal(t, "public/logo.png", doc.Logo)
}

func TestParseDocumentRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "nope"},
		{name: "missing colors", raw: `{"logo": "x.png"}`},
		{name: "unknown color group", raw: `{"colors": {"tertiary": {"500": "#fff"}}}`},
		{name: "non-string leaf", raw: `{"colors": {"brand": {"500": 42}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestVarsAreFlattenedAndOrdered(t *testing.T) {
	doc, err := ParseDocument([]byte(`{
	  "colors": {
	    "brand": {"600": "#5a4bd1", "500": "#6c5ce7"},
	    "accent": {"hover": {"500": "#00b5b1"}}
	  }
	}`))
	require.NoError(t, err)

	assert.Equal(t, []Var{
		{Name: "color-brand-500", Value: "#6c5ce7"},
		{Name: "color-brand-600", Value: "#5a4bd1"},
		{Name: "color-accent-hover-500", Value: "#00b5b1"},
	}, doc.Vars())
}

func TestRenderCSS(t *testing.T) {
	doc, err := ParseDocument([]byte(sampleTokens))
	require.NoError(t, err)

	css, err := RenderCSS(doc)
	require.NoError(t, err)

	assert.Contains(t, css, ":root{")
	assert.Contains(t, css, "--color-brand-500:#6c5ce7;")
	assert.Contains(t, css, "--color-neutral-100:#f5f6fa;")
	assert.Contains(t, css, "background-color:var(--color-brand-500)!important")
	assert.Contains(t, css, ".ic-app-header__logomark")
}

func TestBuildWritesAssets(t *testing.T) {
	srcDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "dist")
	tokensPath := filepath.Join(srcDir, "default.json")
	require.NoError(t, os.WriteFile(tokensPath, []byte(sampleTokens), 0600))

	require.NoError(t, os.MkdirAll(filepath.Join(srcDir, "public"), 0750))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "public", "logo.png"), []byte("png"), 0600))

	result, err := Build(Options{
		TokensPath: tokensPath,
		OutDir:     outDir,
		ThemeName:  "Stimulo",
		SourceDir:  srcDir,
	})
	require.NoError(t, err)

	css, err := os.ReadFile(result.Stylesheet)
	require.NoError(t, err)
	assert.Contains(t, string(css), "--color-brand-500:#6c5ce7;")
	assert.Equal(t, filepath.Join(outDir, "stimulo.css"), result.Stylesheet)

	script, err := os.ReadFile(result.Script)
	require.NoError(t, err)
	assert.Equal(t, "/* placeholder */", string(script))

	logo, err := os.ReadFile(result.Logo)
	require.NoError(t, err)
	assert.Equal(t, "png", string(logo))

	// No favicon named in the tokens: skipped, not an error.
	assert.Empty(t, result.Favicon)
}

func TestBuildSkipsMissingImages(t *testing.T) {
	srcDir := t.TempDir()
	tokensPath := filepath.Join(srcDir, "default.json")
	require.NoError(t, os.WriteFile(tokensPath, []byte(sampleTokens), 0600))

	result, err := Build(Options{
		TokensPath: tokensPath,
		OutDir:     filepath.Join(t.TempDir(), "dist"),
		ThemeName:  "Stimulo",
		SourceDir:  srcDir,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Logo)
}

func TestBuildMissingTokens(t *testing.T) {
	_, err := Build(Options{
		TokensPath: filepath.Join(t.TempDir(), "absent.json"),
		OutDir:     t.TempDir(),
		ThemeName:  "Stimulo",
	})
	assert.Error(t, err)
}
