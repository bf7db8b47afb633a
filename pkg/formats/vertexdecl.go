package formats

import (
	"fmt"
	"strings"
)

// DeclUsage identifies the meaning of a vertex element (D3DDECLUSAGE).
type DeclUsage int

const (
	UsagePosition     DeclUsage = 0
	UsageBlendWeight  DeclUsage = 1
	UsageBlendIndices DeclUsage = 2
	UsageNormal       DeclUsage = 3
	UsagePSize        DeclUsage = 4
	UsageTexCoord     DeclUsage = 5
	UsageTangent      DeclUsage = 6
	UsageBinormal     DeclUsage = 7
	UsageTessFactor   DeclUsage = 8
	UsagePositionT    DeclUsage = 9
	UsageColor        DeclUsage = 10
	UsageFog          DeclUsage = 11
	UsageDepth        DeclUsage = 12
	UsageSample       DeclUsage = 13
)

var usageNames = [...]string{
	UsagePosition:     "POSITION",
	UsageBlendWeight:  "BLENDWEIGHT",
	UsageBlendIndices: "BLENDINDICES",
	UsageNormal:       "NORMAL",
	UsagePSize:        "PSIZE",
	UsageTexCoord:     "TEXCOORD",
	UsageTangent:      "TANGENT",
	UsageBinormal:     "BINORMAL",
	UsageTessFactor:   "TESSFACTOR",
	UsagePositionT:    "POSITIONT",
	UsageColor:        "COLOR",
	UsageFog:          "FOG",
	UsageDepth:        "DEPTH",
	UsageSample:       "SAMPLE",
}

// String returns the catalog name, e.g. "D3DDECLUSAGE_POSITION".
func (u DeclUsage) String() string {
	if u >= 0 && int(u) < len(usageNames) {
		return "D3DDECLUSAGE_" + usageNames[u]
	}
	return fmt.Sprintf("DeclUsage(%d)", int(u))
}

// ParseDeclUsage parses a usage name with or without the D3DDECLUSAGE_
// prefix.
func ParseDeclUsage(s string) (DeclUsage, error) {
	name := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "D3DDECLUSAGE_")
	for i, n := range usageNames {
		if n == name {
			return DeclUsage(i), nil
		}
	}
	return 0, fmt.Errorf("%w: usage %q", ErrUnknownDecl, s)
}

// DeclType is the storage format of a vertex element (D3DDECLTYPE).
type DeclType int

const (
	TypeFloat1    DeclType = 0
	TypeFloat2    DeclType = 1
	TypeFloat3    DeclType = 2
	TypeFloat4    DeclType = 3
	TypeD3DColor  DeclType = 4
	TypeUByte4    DeclType = 5
	TypeShort2    DeclType = 6
	TypeShort4    DeclType = 7
	TypeUByte4N   DeclType = 8
	TypeShort2N   DeclType = 9
	TypeShort4N   DeclType = 10
	TypeUShort2N  DeclType = 11
	TypeUShort4N  DeclType = 12
	TypeUDec3     DeclType = 13
	TypeDec3N     DeclType = 14
	TypeFloat16x2 DeclType = 15
	TypeFloat16x4 DeclType = 16
	TypeUnused    DeclType = 17
)

type declTypeInfo struct {
	name       string
	components int
}

// Component counts as they appear in text vertex records.
var declTypes = [...]declTypeInfo{
	TypeFloat1:    {"FLOAT1", 1},
	TypeFloat2:    {"FLOAT2", 2},
	TypeFloat3:    {"FLOAT3", 3},
	TypeFloat4:    {"FLOAT4", 4},
	TypeD3DColor:  {"D3DCOLOR", 4},
	TypeUByte4:    {"UBYTE4", 4},
	TypeShort2:    {"SHORT2", 2},
	TypeShort4:    {"SHORT4", 4},
	TypeUByte4N:   {"UBYTE4N", 4},
	TypeShort2N:   {"SHORT2N", 2},
	TypeShort4N:   {"SHORT4N", 4},
	TypeUShort2N:  {"USHORT2N", 2},
	TypeUShort4N:  {"USHORT4N", 4},
	TypeUDec3:     {"UDEC3", 3},
	TypeDec3N:     {"DEC3N", 3},
	TypeFloat16x2: {"FLOAT16_2", 2},
	TypeFloat16x4: {"FLOAT16_4", 4},
	TypeUnused:    {"UNUSED", 0},
}

// String returns the catalog name, e.g. "D3DDECLTYPE_FLOAT3".
func (t DeclType) String() string {
	if t >= 0 && int(t) < len(declTypes) {
		return "D3DDECLTYPE_" + declTypes[t].name
	}
	return fmt.Sprintf("DeclType(%d)", int(t))
}

// Components returns the number of values the type contributes to a
// vertex record. Unused yields 0.
func (t DeclType) Components() int {
	if t >= 0 && int(t) < len(declTypes) {
		return declTypes[t].components
	}
	return 0
}

// ParseDeclType parses a type name with or without the D3DDECLTYPE_ prefix.
func ParseDeclType(s string) (DeclType, error) {
	name := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "D3DDECLTYPE_")
	for i, info := range declTypes {
		if info.name == name {
			return DeclType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: type %q", ErrUnknownDecl, s)
}

// VertexElement is one attribute slot of a vertex declaration.
type VertexElement struct {
	Usage   DeclUsage
	Type    DeclType
	Ordinal int // Position within the declaration and the vertex record
}

// VertexLayout is an ordered vertex declaration.
type VertexLayout []VertexElement

// Index returns the ordinal of the first element with the given usage.
func (l VertexLayout) Index(usage DeclUsage) (int, bool) {
	for _, e := range l {
		if e.Usage == usage {
			return e.Ordinal, true
		}
	}
	return 0, false
}
