package formats

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Shader catalog errors.
var (
	ErrUnknownDecl    = errors.New("unknown vertex declaration name")
	ErrUnknownPreset  = errors.New("unknown shader preset")
	ErrNoDeclaration  = errors.New("no vertex declaration for skin flag")
	ErrInvalidCatalog = errors.New("invalid shader catalog")
)

type xmlShaderManager struct {
	Presets []xmlPreset `xml:"Shaders>ShaderPreSet"`
}

type xmlPreset struct {
	Name  string    `xml:"name,attr"`
	Items []xmlItem `xml:"VertexDeclarations>Item"`
}

type xmlItem struct {
	Skinned  string       `xml:"skinned,attr"`
	Elements []xmlElement `xml:"Element"`
}

type xmlElement struct {
	Usage string `xml:"usage,attr"`
	Type  string `xml:"type,attr"`
}

type catalogKey struct {
	preset  string
	skinned bool
}

// Catalog maps shader presets and skin flags to vertex layouts. It is
// read-only once loaded.
type Catalog struct {
	layouts map[catalogKey]VertexLayout
	presets map[string]bool
}

// LoadCatalog reads a ShaderManager XML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog parses ShaderManager XML. Every usage and type name is
// validated up front.
func ParseCatalog(data []byte) (*Catalog, error) {
	var doc xmlShaderManager
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	c := &Catalog{
		layouts: make(map[catalogKey]VertexLayout),
		presets: make(map[string]bool),
	}

	for _, p := range doc.Presets {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: preset without name", ErrInvalidCatalog)
		}
		c.presets[p.Name] = true

		for _, item := range p.Items {
			skinned, err := parseBool(item.Skinned)
			if err != nil {
				return nil, fmt.Errorf("%w: preset %s: skinned %q", ErrInvalidCatalog, p.Name, item.Skinned)
			}

			layout := make(VertexLayout, len(item.Elements))
			for i, e := range item.Elements {
				usage, err := ParseDeclUsage(e.Usage)
				if err != nil {
					return nil, fmt.Errorf("preset %s: %w", p.Name, err)
				}
				typ, err := ParseDeclType(e.Type)
				if err != nil {
					return nil, fmt.Errorf("preset %s: %w", p.Name, err)
				}
				layout[i] = VertexElement{Usage: usage, Type: typ, Ordinal: i}
			}

			key := catalogKey{preset: p.Name, skinned: skinned}
			if _, dup := c.layouts[key]; !dup {
				c.layouts[key] = layout
			}
		}
	}

	return c, nil
}

// Layout returns the vertex layout of a preset for the given skin flag.
func (c *Catalog) Layout(preset string, skinned bool) (VertexLayout, error) {
	if !c.presets[preset] {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, preset)
	}
	layout, ok := c.layouts[catalogKey{preset: preset, skinned: skinned}]
	if !ok {
		return nil, fmt.Errorf("%w: %s skinned=%t", ErrNoDeclaration, preset, skinned)
	}
	return layout, nil
}

// Len returns the number of presets.
func (c *Catalog) Len() int {
	return len(c.presets)
}

// parseBool accepts the True/False spellings used by OpenFormats files.
func parseBool(s string) (bool, error) {
	return strconv.ParseBool(strings.ToLower(strings.TrimSpace(s)))
}
