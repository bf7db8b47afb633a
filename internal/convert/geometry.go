package convert

import (
	"errors"
	"fmt"

	"github.com/Faultbox/odr2obj/pkg/formats"
)

// Geometry decoding errors.
var (
	ErrMissingUsage = errors.New("vertex layout lacks required usage")
	ErrShaderIndex  = errors.New("shader index out of range")
	ErrIndexCount   = errors.New("index count is not a multiple of 3")
	ErrIndexRange   = errors.New("index out of vertex range")
	ErrShortVertex  = errors.New("vertex record is missing attribute groups")
)

// requiredUsages are the attributes emitted per vertex, in output order.
var requiredUsages = [3]formats.DeclUsage{
	formats.UsagePosition,
	formats.UsageNormal,
	formats.UsageTexCoord,
}

// Selection holds the attribute group ordinals of position, normal and
// texcoord within a vertex record.
type Selection struct {
	Ordinals [3]int
	Types    [3]formats.DeclType
}

// SelectAttributes finds the first position, normal and texcoord element of
// a layout. A usage the layout lacks falls back to ordinal 0 and is
// reported in missing, unless strict is set, in which case it is an error.
func SelectAttributes(layout formats.VertexLayout, strict bool) (sel Selection, missing []formats.DeclUsage, err error) {
	for i, usage := range requiredUsages {
		ordinal, ok := layout.Index(usage)
		if !ok {
			if strict {
				return Selection{}, nil, fmt.Errorf("%w: %s", ErrMissingUsage, usage)
			}
			missing = append(missing, usage)
		}
		sel.Ordinals[i] = ordinal
		if ordinal < len(layout) {
			sel.Types[i] = layout[ordinal].Type
		}
	}
	return sel, missing, nil
}

// Vertex is a vertex reduced to the emitted attributes.
type Vertex struct {
	Position []string
	Normal   []string
	TexCoord []string
}

// Geometry is a decoded geometry block ready for output.
type Geometry struct {
	Shader   int
	Vertices []Vertex
	Faces    [][3]int

	// Mismatched counts attribute groups whose value count differs from
	// the declared type.
	Mismatched int
}

// Project reduces a raw geometry block to position, normal and texcoord per
// vertex. With validate set every index must address a vertex of the block.
func Project(g *formats.Geometry, sel Selection, validate bool) (*Geometry, error) {
	if len(g.Indices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d", ErrIndexCount, len(g.Indices))
	}

	out := &Geometry{
		Shader:   g.ShaderIndex,
		Vertices: make([]Vertex, len(g.Vertices)),
		Faces:    make([][3]int, len(g.Indices)/3),
	}

	for i, raw := range g.Vertices {
		var groups [3][]string
		for k, ordinal := range sel.Ordinals {
			if ordinal >= len(raw) {
				return nil, fmt.Errorf("%w: vertex %d has %d groups, need group %d",
					ErrShortVertex, i, len(raw), ordinal)
			}
			groups[k] = raw[ordinal]
			if n := sel.Types[k].Components(); n > 0 && len(groups[k]) != n {
				out.Mismatched++
			}
		}
		if len(groups[2]) < 2 {
			return nil, fmt.Errorf("%w: vertex %d texcoord has %d values", ErrShortVertex, i, len(groups[2]))
		}
		out.Vertices[i] = Vertex{Position: groups[0], Normal: groups[1], TexCoord: groups[2]}
	}

	for i := range out.Faces {
		for k := 0; k < 3; k++ {
			idx := g.Indices[i*3+k]
			if validate && idx >= len(g.Vertices) {
				return nil, fmt.Errorf("%w: index %d, %d vertices", ErrIndexRange, idx, len(g.Vertices))
			}
			out.Faces[i][k] = idx
		}
	}

	return out, nil
}
