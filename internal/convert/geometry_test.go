package convert

import (
	"errors"
	"testing"

	"github.com/Faultbox/odr2obj/pkg/formats"
)

var (
	staticLayout = formats.VertexLayout{
		{Usage: formats.UsagePosition, Type: formats.TypeFloat3, Ordinal: 0},
		{Usage: formats.UsageNormal, Type: formats.TypeFloat3, Ordinal: 1},
		{Usage: formats.UsageColor, Type: formats.TypeD3DColor, Ordinal: 2},
		{Usage: formats.UsageTexCoord, Type: formats.TypeFloat2, Ordinal: 3},
		{Usage: formats.UsageTexCoord, Type: formats.TypeFloat2, Ordinal: 4},
	}
	positionOnly = formats.VertexLayout{
		{Usage: formats.UsagePosition, Type: formats.TypeFloat3, Ordinal: 0},
	}
)

func TestSelectAttributes(t *testing.T) {
	sel, missing, err := SelectAttributes(staticLayout, true)
	if err != nil {
		t.Fatalf("SelectAttributes failed: %v", err)
	}
	if len(missing) != 0 {
		t.Errorf("expected no missing usages, got %v", missing)
	}
	if sel.Ordinals != [3]int{0, 1, 3} {
		t.Errorf("expected ordinals [0 1 3], got %v", sel.Ordinals)
	}
	if sel.Types[2] != formats.TypeFloat2 {
		t.Errorf("expected texcoord type FLOAT2, got %s", sel.Types[2])
	}

	sel, missing, err = SelectAttributes(positionOnly, false)
	if err != nil {
		t.Fatalf("lenient SelectAttributes failed: %v", err)
	}
	if len(missing) != 2 || missing[0] != formats.UsageNormal || missing[1] != formats.UsageTexCoord {
		t.Errorf("expected NORMAL and TEXCOORD missing, got %v", missing)
	}
	if sel.Ordinals != [3]int{0, 0, 0} {
		t.Errorf("missing usages should fall back to 0, got %v", sel.Ordinals)
	}

	if _, _, err := SelectAttributes(positionOnly, true); !errors.Is(err, ErrMissingUsage) {
		t.Errorf("expected ErrMissingUsage in strict mode, got %v", err)
	}
}

func vertex(line string) formats.Vertex {
	return formats.ParseVertex(line)
}

func TestProject(t *testing.T) {
	sel, _, _ := SelectAttributes(staticLayout, true)

	g := &formats.Geometry{
		ShaderIndex: 2,
		Indices:     []int{0, 1, 2, 2, 1, 3},
		Vertices: []formats.Vertex{
			vertex("0 0 0 / 0 0 1 / 255 255 255 255 / 0 0.3 / 9 9"),
			vertex("1 0 0 / 0 0 1 / 255 255 255 255 / 1 0.3 / 9 9"),
			vertex("0 1 0 / 0 0 1 / 255 255 255 255 / 0 1 / 9 9"),
			vertex("1 1 0 / 0 0 1 / 255 255 255 255 / 1 1 / 9 9"),
		},
	}

	out, err := Project(g, sel, true)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	if out.Shader != 2 {
		t.Errorf("expected shader 2, got %d", out.Shader)
	}
	if len(out.Faces) != 2 || out.Faces[1] != [3]int{2, 1, 3} {
		t.Errorf("unexpected faces %v", out.Faces)
	}
	if got := out.Vertices[1].TexCoord; len(got) != 2 || got[0] != "1" || got[1] != "0.3" {
		t.Errorf("texcoord should come from the first TEXCOORD group, got %v", got)
	}
	if out.Mismatched != 0 {
		t.Errorf("expected no mismatched groups, got %d", out.Mismatched)
	}
}

func TestProject_Errors(t *testing.T) {
	sel, _, _ := SelectAttributes(staticLayout, true)
	verts := []formats.Vertex{
		vertex("0 0 0 / 0 0 1 / 255 255 255 255 / 0 0"),
		vertex("1 0 0 / 0 0 1 / 255 255 255 255 / 1 0"),
		vertex("0 1 0 / 0 0 1 / 255 255 255 255 / 0 1"),
	}

	tests := []struct {
		name     string
		indices  []int
		vertices []formats.Vertex
		validate bool
		wantErr  error
	}{
		{"partial triangle", []int{0, 1}, verts, true, ErrIndexCount},
		{"index past end", []int{0, 1, 3}, verts, true, ErrIndexRange},
		{"short vertex", []int{0, 1, 2}, append(verts[:2:2], vertex("0 1 0 / 0 0 1")), true, ErrShortVertex},
		{"short texcoord", []int{0, 1, 2}, append(verts[:2:2], vertex("0 1 0 / 0 0 1 / 1 / 0")), true, ErrShortVertex},
		{"unchecked range", []int{0, 1, 3}, verts, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &formats.Geometry{Indices: tt.indices, Vertices: tt.vertices}
			_, err := Project(g, sel, tt.validate)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestProject_Mismatched(t *testing.T) {
	sel, _, _ := SelectAttributes(staticLayout, true)
	g := &formats.Geometry{
		Indices: []int{0, 0, 0},
		Vertices: []formats.Vertex{
			vertex("0 0 / 0 0 1 / 255 255 255 255 / 0 0 0"),
		},
	}

	out, err := Project(g, sel, true)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	if out.Mismatched != 2 {
		t.Errorf("expected 2 mismatched groups, got %d", out.Mismatched)
	}
}
