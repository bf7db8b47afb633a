// Package wavefront writes Wavefront OBJ geometry and MTL material documents.
package wavefront

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Writer errors.
var (
	ErrAttributeCount = errors.New("position, normal and texcoord counts differ")
)

// Header returns the version marker written as the first line of both
// documents.
func Header(version string) string {
	return "# V " + version
}

// Material is one newmtl block. Empty map paths are omitted.
type Material struct {
	Name        string
	DiffuseMap  string // map_Kd
	BumpMap     string // map_bump
	SpecularMap string // map_Ks
}

// WriteMTL writes a material library.
func WriteMTL(w io.Writer, header string, materials []Material) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s\n\n", header)
	for _, m := range materials {
		fmt.Fprintf(bw, "newmtl %s\n", m.Name)
		if m.DiffuseMap != "" {
			fmt.Fprintf(bw, "map_Kd %s\n", m.DiffuseMap)
		}
		if m.BumpMap != "" {
			fmt.Fprintf(bw, "map_bump %s\n", m.BumpMap)
		}
		if m.SpecularMap != "" {
			fmt.Fprintf(bw, "map_Ks %s\n", m.SpecularMap)
		}
		bw.WriteString("\n")
	}

	return bw.Flush()
}

// Object is one named OBJ object. Positions, Normals and TexCoords share a
// single index space; Faces index into it starting at 0.
type Object struct {
	Name      string
	Material  string
	Positions [][]string
	Normals   [][]string
	TexCoords [][]string
	Faces     [][3]int
}

// OBJWriter writes objects into one OBJ document, keeping the running
// 1-based vertex offset so face indices stay valid across objects.
type OBJWriter struct {
	w      *bufio.Writer
	offset int
}

// NewOBJWriter writes the document header and material library reference.
func NewOBJWriter(w io.Writer, header, mtllib string) *OBJWriter {
	ow := &OBJWriter{
		w:      bufio.NewWriter(w),
		offset: 1,
	}
	fmt.Fprintf(ow.w, "%s\n\n", header)
	if mtllib != "" {
		fmt.Fprintf(ow.w, "mtllib %s\n\n", mtllib)
	}
	return ow
}

// Offset returns the index the next object's first vertex will receive.
func (ow *OBJWriter) Offset() int {
	return ow.offset
}

// WriteObject appends an object and advances the offset by its vertex
// count.
func (ow *OBJWriter) WriteObject(o *Object) error {
	n := len(o.Positions)
	if len(o.Normals) != n || len(o.TexCoords) != n {
		return fmt.Errorf("%w: object %s has %d/%d/%d", ErrAttributeCount, o.Name,
			n, len(o.Normals), len(o.TexCoords))
	}

	w := ow.w
	fmt.Fprintf(w, "o %s\n\n", o.Name)
	fmt.Fprintf(w, "usemtl %s\n\n", o.Material)

	writeVectors(w, "v", o.Positions)
	writeVectors(w, "vn", o.Normals)
	writeVectors(w, "vt", o.TexCoords)

	for _, f := range o.Faces {
		a, b, c := f[0]+ow.offset, f[1]+ow.offset, f[2]+ow.offset
		fmt.Fprintf(w, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}
	w.WriteString("\n")

	ow.offset += n
	return nil
}

// Flush writes buffered output.
func (ow *OBJWriter) Flush() error {
	return ow.w.Flush()
}

func writeVectors(w *bufio.Writer, tag string, values [][]string) {
	for _, v := range values {
		w.WriteString(tag)
		if len(v) > 0 {
			w.WriteString(" ")
			w.WriteString(strings.Join(v, " "))
		}
		w.WriteString("\n")
	}
	w.WriteString("\n")
}
