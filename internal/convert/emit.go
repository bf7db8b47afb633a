package convert

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/odr2obj/pkg/formats"
	"github.com/Faultbox/odr2obj/pkg/wavefront"
)

// Render produces the OBJ and MTL documents of an asset.
func (c *Converter) Render(a *Asset, mtllib string) (obj, mtl []byte, err error) {
	header := wavefront.Header(FormatVersion)

	var objBuf bytes.Buffer
	ow := wavefront.NewOBJWriter(&objBuf, header, mtllib)
	for _, o := range Objects(a) {
		if err := ow.WriteObject(o); err != nil {
			return nil, nil, err
		}
	}
	if err := ow.Flush(); err != nil {
		return nil, nil, err
	}

	var mtlBuf bytes.Buffer
	if err := wavefront.WriteMTL(&mtlBuf, header, Materials(a)); err != nil {
		return nil, nil, err
	}

	return objBuf.Bytes(), mtlBuf.Bytes(), nil
}

// Materials returns one material per shader.
func Materials(a *Asset) []wavefront.Material {
	out := make([]wavefront.Material, len(a.Shaders))
	for i, s := range a.Shaders {
		out[i] = wavefront.Material{
			Name:        s.Name,
			DiffuseMap:  s.Textures[formats.SamplerDiffuse],
			BumpMap:     s.Textures[formats.SamplerBump],
			SpecularMap: s.Textures[formats.SamplerSpec],
		}
	}
	return out
}

// Objects returns one object per geometry block, in tier then mesh order.
// Names are "<asset>_<tier>_<n>" with n counting from 1 within each mesh.
func Objects(a *Asset) []*wavefront.Object {
	var out []*wavefront.Object
	for _, sub := range a.Meshes {
		tier := strings.ToLower(sub.Tier.String())
		for n, g := range sub.Geometries {
			o := &wavefront.Object{
				Name:      fmt.Sprintf("%s_%s_%d", a.Name, tier, n+1),
				Material:  a.Shaders[g.Shader].Name,
				Positions: make([][]string, len(g.Vertices)),
				Normals:   make([][]string, len(g.Vertices)),
				TexCoords: make([][]string, len(g.Vertices)),
				Faces:     g.Faces,
			}
			for i, v := range g.Vertices {
				o.Positions[i] = v.Position
				o.Normals[i] = v.Normal
				o.TexCoords[i] = FlipV(v.TexCoord)
			}
			out = append(out, o)
		}
	}
	return out
}

// FlipV returns a copy of a texture coordinate with V replaced by 1-V.
// A V that is not a number is kept as authored.
func FlipV(tc []string) []string {
	out := append([]string(nil), tc...)
	if len(out) < 2 {
		return out
	}
	v, err := strconv.ParseFloat(out[1], 64)
	if err != nil {
		return out
	}
	out[1] = strconv.FormatFloat(1-v, 'f', -1, 64)
	return out
}
