// Package prepare builds deployable theme assets from a design-token
// document: a stylesheet of CSS custom properties plus Canvas override
// rules, a placeholder script file, and staged logo/favicon images.
package prepare

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed tokens.schema.json
var tokensSchema []byte

var (
	schemaOnce     sync.Once
	schemaErr      error
	compiledSchema *jsonschema.Schema
)

// Document is the design-token document read from tokens/default.json.
// Color groups nest arbitrarily; leaves are CSS color values.
type Document struct {
	Colors  Colors `json:"colors"`
	Logo    string `json:"logo,omitempty"`
	Favicon string `json:"favicon,omitempty"`
}

// Colors holds the three token groups the generated stylesheet exposes.
type Colors struct {
	Brand   map[string]any `json:"brand,omitempty"`
	Neutral map[string]any `json:"neutral,omitempty"`
	Accent  map[string]any `json:"accent,omitempty"`
}

// Var is one emitted CSS custom property.
type Var struct {
	Name  string
	Value string
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("tokens.schema.json", bytes.NewReader(tokensSchema)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile("tokens.schema.json")
	})
	return compiledSchema, schemaErr
}

// ParseDocument validates raw token JSON against the schema and decodes it.
func ParseDocument(raw []byte) (*Document, error) {
	sch, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("load token schema: %w", err)
	}

	var untyped any
	if err := json.Unmarshal(raw, &untyped); err != nil {
		return nil, fmt.Errorf("parse tokens: %w", err)
	}
	if err := sch.Validate(untyped); err != nil {
		return nil, fmt.Errorf("invalid token document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode tokens: %w", err)
	}
	return &doc, nil
}

// Vars flattens the color groups into CSS custom properties. Nested groups
// join with "-" (`--color-brand-500`). Order is deterministic: group order
// brand, neutral, accent, then sorted keys within each level.
func (d *Document) Vars() []Var {
	var vars []Var
	vars = flatten("color-brand", d.Colors.Brand, vars)
	vars = flatten("color-neutral", d.Colors.Neutral, vars)
	vars = flatten("color-accent", d.Colors.Accent, vars)
	return vars
}

func flatten(prefix string, group map[string]any, vars []Var) []Var {
	keys := make([]string, 0, len(group))
	for k := range group {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := group[k].(type) {
		case string:
			vars = append(vars, Var{Name: prefix + "-" + k, Value: v})
		case map[string]any:
			vars = flatten(prefix+"-"+k, v, vars)
		}
	}
	return vars
}
