package prepare

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

//go:embed theme.css.tmpl
var cssTemplate string

var cssTmpl = template.Must(
	template.New("theme.css.tmpl").Funcs(sprig.FuncMap()).Parse(cssTemplate),
)

// RenderCSS renders the theme stylesheet: a :root block exposing the token
// variables, followed by the fixed Canvas override rules that consume them.
func RenderCSS(doc *Document) (string, error) {
	var out strings.Builder
	err := cssTmpl.Execute(&out, struct{ Vars []Var }{Vars: doc.Vars()})
	if err != nil {
		return "", fmt.Errorf("render stylesheet: %w", err)
	}
	return out.String(), nil
}
