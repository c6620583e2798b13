package prepare

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// scriptPlaceholder is written as the theme's JavaScript asset until the
// theme ships real client script.
const scriptPlaceholder = "/* placeholder */"

// Candidate locations for images the token document names only loosely.
var (
	logoCandidates    = []string{"public/logo.png", "assets/logo.png", "static/logo.png"}
	faviconCandidates = []string{"public/favicon.ico", "assets/favicon.ico", "static/favicon.ico"}
)

// Options configures an asset build.
type Options struct {
	// TokensPath is the design-token JSON document.
	TokensPath string

	// OutDir is the dist directory assets are written to.
	OutDir string

	// ThemeName names the generated stylesheet and script files
	// (lowercased, e.g. "Stimulo" -> stimulo.css).
	ThemeName string

	// SourceDir is the root that logo/favicon paths resolve against.
	SourceDir string
}

// Result lists the built asset paths. Logo and Favicon are empty when the
// source image was not found; that is a skip, not an error.
type Result struct {
	Stylesheet string
	Script     string
	Logo       string
	Favicon    string
}

// Build reads and validates the token document, renders the stylesheet and
// placeholder script into OutDir, and stages logo/favicon images when their
// sources exist.
func Build(opts Options) (*Result, error) {
	raw, err := os.ReadFile(opts.TokensPath)
	if err != nil {
		return nil, fmt.Errorf("read tokens: %w", err)
	}

	doc, err := ParseDocument(raw)
	if err != nil {
		return nil, err
	}

	css, err := RenderCSS(doc)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.OutDir, 0750); err != nil {
		return nil, fmt.Errorf("create dist directory: %w", err)
	}

	base := strings.ToLower(opts.ThemeName)
	result := &Result{
		Stylesheet: filepath.Join(opts.OutDir, base+".css"),
		Script:     filepath.Join(opts.OutDir, base+".js"),
	}

	if err := os.WriteFile(result.Stylesheet, []byte(css), 0644); err != nil {
		return nil, fmt.Errorf("write stylesheet: %w", err)
	}
	if err := os.WriteFile(result.Script, []byte(scriptPlaceholder), 0644); err != nil {
		return nil, fmt.Errorf("write script: %w", err)
	}

	result.Logo, err = stageImage(opts.SourceDir, opts.OutDir, doc.Logo, logoCandidates)
	if err != nil {
		return nil, err
	}
	result.Favicon, err = stageImage(opts.SourceDir, opts.OutDir, doc.Favicon, faviconCandidates)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// stageImage copies the first existing source image into outDir. The
// token-named path is tried first, then the well-known candidates. A token
// document that names no image stages nothing.
func stageImage(sourceDir, outDir, named string, candidates []string) (string, error) {
	if named == "" {
		return "", nil
	}

	for _, rel := range append([]string{named}, candidates...) {
		src := filepath.Join(sourceDir, rel)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		dst := filepath.Join(outDir, filepath.Base(src))
		if err := copyFile(src, dst); err != nil {
			return "", fmt.Errorf("stage %s: %w", rel, err)
		}
		return dst, nil
	}
	return "", nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
