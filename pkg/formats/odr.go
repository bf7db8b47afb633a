package formats

import (
	"errors"
	"fmt"
	"strings"
)

// ODR format errors.
var (
	ErrNoShaders  = errors.New("no Shaders block")
	ErrNoLodGroup = errors.New("no LodGroup block")
)

// Sampler identifies one of the texture samplers read from a shader block.
type Sampler int

const (
	SamplerDiffuse Sampler = iota
	SamplerBump
	SamplerSpec
	samplerCount
)

var samplerKeys = [samplerCount]string{
	SamplerDiffuse: "DiffuseSampler",
	SamplerBump:    "BumpSampler",
	SamplerSpec:    "SpecSampler",
}

// Samplers lists every sampler in output order.
var Samplers = []Sampler{SamplerDiffuse, SamplerBump, SamplerSpec}

// String returns the ODR keyword of the sampler.
func (s Sampler) String() string {
	if s >= 0 && s < samplerCount {
		return samplerKeys[s]
	}
	return fmt.Sprintf("Sampler(%d)", int(s))
}

// Shader is a shader block of an ODR asset.
type Shader struct {
	Preset   string               // Preset name, e.g. "gta_default.sps"
	Samplers [samplerCount]string // Raw sampler paths, empty when absent
}

// Sampler returns the raw path authored for a sampler.
func (s *Shader) Sampler(which Sampler) string {
	return s.Samplers[which]
}

// LodTier is a level of detail group.
type LodTier int

const (
	LodHigh LodTier = iota
	LodMed
	LodLow
	LodVlow
)

// LodTiers lists the tiers in enumeration order.
var LodTiers = []LodTier{LodHigh, LodMed, LodLow, LodVlow}

var lodNames = [...]string{
	LodHigh: "High",
	LodMed:  "Med",
	LodLow:  "Low",
	LodVlow: "Vlow",
}

// String returns the ODR keyword of the tier.
func (t LodTier) String() string {
	if t >= 0 && int(t) < len(lodNames) {
		return lodNames[t]
	}
	return fmt.Sprintf("LodTier(%d)", int(t))
}

// ODR is a parsed OpenFormats model description.
type ODR struct {
	Shaders []Shader
	Lods    map[LodTier][]string // Mesh file references per tier; absent tiers have no key
}

// ParseODR parses ODR text.
func ParseODR(data []byte) (*ODR, error) {
	root, err := ParseBlocks(data)
	if err != nil {
		return nil, err
	}

	shaders := root.Find("Shaders", true)
	if shaders == nil {
		return nil, ErrNoShaders
	}
	lodGroup := root.Find("LodGroup", true)
	if lodGroup == nil {
		return nil, ErrNoLodGroup
	}

	odr := &ODR{
		Lods: make(map[LodTier][]string),
	}

	for _, b := range shaders.Children {
		if !b.HasBody {
			continue
		}
		odr.Shaders = append(odr.Shaders, parseShader(b))
	}

	for _, tier := range LodTiers {
		b := lodGroup.Child(tier.String())
		if b == nil || !b.HasBody {
			continue
		}
		var meshes []string
		for _, line := range b.Children {
			if line.Name != "" {
				meshes = append(meshes, line.Name)
			}
		}
		odr.Lods[tier] = meshes
	}

	return odr, nil
}

func parseShader(b *Block) Shader {
	s := Shader{
		Preset: strings.TrimSpace(b.Raw),
	}
	for _, which := range Samplers {
		if line := b.Child(samplerKeys[which]); line != nil {
			s.Samplers[which] = strings.TrimSpace(line.Text)
		}
	}
	return s
}
