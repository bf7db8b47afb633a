package formats

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Mesh format errors.
var (
	ErrNoSkinned         = errors.New("no Skinned line")
	ErrInvalidSkinned    = errors.New("invalid Skinned value")
	ErrMalformedGeometry = errors.New("malformed Geometry block")
)

// Vertex is one raw vertex record: attribute groups in declaration order,
// each a list of numeric tokens.
type Vertex [][]string

// Geometry is a Geometry block of a mesh file.
type Geometry struct {
	ShaderIndex int
	Indices     []int
	Vertices    []Vertex
}

// Mesh is a parsed OpenFormats mesh file.
type Mesh struct {
	Skinned    bool
	Geometries []Geometry
}

// ParseMesh parses mesh file text.
func ParseMesh(data []byte) (*Mesh, error) {
	root, err := ParseBlocks(data)
	if err != nil {
		return nil, err
	}

	skinned := root.Find("Skinned", false)
	if skinned == nil || len(skinned.Args) == 0 {
		return nil, ErrNoSkinned
	}

	mesh := &Mesh{}
	mesh.Skinned, err = parseBool(skinned.Args[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %q on line %d", ErrInvalidSkinned, skinned.Args[0], skinned.Line)
	}

	for i, b := range root.FindAll("Geometry") {
		geom, err := parseGeometry(b)
		if err != nil {
			return nil, fmt.Errorf("geometry %d (line %d): %w", i, b.Line, err)
		}
		mesh.Geometries = append(mesh.Geometries, *geom)
	}

	return mesh, nil
}

func parseGeometry(b *Block) (*Geometry, error) {
	shaderIndex := b.Child("ShaderIndex")
	if shaderIndex == nil || len(shaderIndex.Args) == 0 {
		return nil, fmt.Errorf("%w: missing ShaderIndex", ErrMalformedGeometry)
	}
	idx, err := strconv.Atoi(shaderIndex.Args[0])
	if err != nil {
		return nil, fmt.Errorf("%w: ShaderIndex %q", ErrMalformedGeometry, shaderIndex.Args[0])
	}

	geom := &Geometry{ShaderIndex: idx}

	indices := b.Find("Indices", true)
	if indices == nil {
		return nil, fmt.Errorf("%w: missing Indices", ErrMalformedGeometry)
	}
	for _, line := range indices.Lines() {
		for _, field := range strings.Fields(line) {
			v, err := strconv.Atoi(field)
			if err != nil || v < 0 {
				return nil, fmt.Errorf("%w: index %q", ErrMalformedGeometry, field)
			}
			geom.Indices = append(geom.Indices, v)
		}
	}

	vertices := b.Find("Vertices", true)
	if vertices == nil {
		return nil, fmt.Errorf("%w: missing Vertices", ErrMalformedGeometry)
	}
	lines := vertices.Lines()
	geom.Vertices = make([]Vertex, len(lines))
	for i, line := range lines {
		geom.Vertices[i] = ParseVertex(line)
	}

	return geom, nil
}

// ParseVertex splits a vertex record on '/' into attribute groups.
func ParseVertex(line string) Vertex {
	parts := strings.Split(line, "/")
	v := make(Vertex, len(parts))
	for i, p := range parts {
		v[i] = strings.Fields(p)
	}
	return v
}
