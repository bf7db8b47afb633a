// Package convert turns ODR assets into Wavefront OBJ and MTL documents.
package convert

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/odr2obj/internal/config"
	"github.com/Faultbox/odr2obj/internal/logger"
	"github.com/Faultbox/odr2obj/internal/texture"
	"github.com/Faultbox/odr2obj/pkg/formats"
	"github.com/Faultbox/odr2obj/pkg/wavefront"
)

const (
	// FormatVersion is written as the first line of every output document
	// and compared on later runs to skip converted assets.
	FormatVersion = "0.13"

	// AssetExt is the extension of convertible assets.
	AssetExt = ".odr"
)

// Status is the outcome of converting one asset.
type Status int

const (
	StatusConverted Status = iota
	StatusSkipped
	StatusNotAsset
	StatusFailed
)

// String returns a human-readable status.
func (s Status) String() string {
	switch s {
	case StatusConverted:
		return "converted"
	case StatusSkipped:
		return "skipped"
	case StatusNotAsset:
		return "not an asset"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Shader is a shader of an asset with its textures resolved.
type Shader struct {
	Name     string // Material name, "<asset>_<ordinal>"
	Preset   string
	Textures [3]string // Image paths indexed by formats.Sampler, empty when unresolved
}

// SubMesh is a decoded mesh file of a LOD tier.
type SubMesh struct {
	Tier       formats.LodTier
	Path       string
	Skinned    bool
	Geometries []*Geometry
}

// Asset is a fully decoded ODR asset.
type Asset struct {
	Name    string
	Dir     string
	Shaders []Shader
	Meshes  []SubMesh
}

// Converter converts ODR assets using a shader catalog.
type Converter struct {
	catalog *formats.Catalog
	cfg     config.ConvertConfig
}

// New creates a converter.
func New(catalog *formats.Catalog, cfg config.ConvertConfig) *Converter {
	return &Converter{
		catalog: catalog,
		cfg:     cfg,
	}
}

// OutputPaths returns the OBJ and MTL paths written for an asset.
func OutputPaths(assetPath string) (obj, mtl string) {
	base := strings.TrimSuffix(assetPath, filepath.Ext(assetPath))
	return base + ".obj", base + ".mtl"
}

// Convert converts one asset. Outputs are written beside the asset. Unless
// force is set, an asset whose OBJ already carries the current version
// marker is skipped.
func (c *Converter) Convert(path string, force bool) (Status, error) {
	if !IsAsset(path) {
		logger.Debug("not an ODR file", zap.String("path", path))
		return StatusNotAsset, nil
	}

	full, err := filepath.Abs(path)
	if err != nil {
		return StatusFailed, err
	}
	objPath, mtlPath := OutputPaths(full)

	if !force && upToDate(objPath) {
		logger.Info("skipping", zap.String("asset", path))
		return StatusSkipped, nil
	}

	logger.Info("converting", zap.String("asset", path))
	start := time.Now()

	asset, err := c.Load(full)
	if err != nil {
		return StatusFailed, err
	}

	obj, mtl, err := c.Render(asset, filepath.Base(mtlPath))
	if err != nil {
		return StatusFailed, err
	}

	if err := os.WriteFile(objPath, obj, 0644); err != nil {
		return StatusFailed, fmt.Errorf("writing obj: %w", err)
	}
	if err := os.WriteFile(mtlPath, mtl, 0644); err != nil {
		return StatusFailed, fmt.Errorf("writing mtl: %w", err)
	}

	logger.Info("created",
		zap.String("obj", filepath.Base(objPath)),
		zap.String("mtl", filepath.Base(mtlPath)),
		zap.Duration("took", time.Since(start)))

	return StatusConverted, nil
}

// Summary counts batch outcomes.
type Summary struct {
	Converted int
	Skipped   int
	Ignored   int
	Failed    int
}

// ConvertBatch converts every path in order. A failing asset is logged and
// the batch moves on.
func (c *Converter) ConvertBatch(paths []string) Summary {
	var sum Summary
	for _, p := range paths {
		status, err := c.Convert(p, c.cfg.Force)
		if err != nil {
			logger.Error("conversion failed", zap.String("asset", p), zap.Error(err))
		}

		switch status {
		case StatusConverted:
			sum.Converted++
		case StatusSkipped:
			sum.Skipped++
		case StatusNotAsset:
			sum.Ignored++
			continue
		case StatusFailed:
			sum.Failed++
		}
		logger.Info(strings.Repeat("-", 45))
	}
	return sum
}

// upToDate reports whether the OBJ at path starts with the current version
// marker.
func upToDate(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil {
		return false
	}
	return line == wavefront.Header(FormatVersion)+"\n"
}

// Load parses an asset and everything it references.
func (c *Converter) Load(path string) (*Asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	odr, err := formats.ParseODR(data)
	if err != nil {
		return nil, err
	}
	if c.cfg.Dump {
		logger.Debug("parsed asset", zap.String("path", path), zap.String("dump", Dump(odr)))
	}

	dir := filepath.Dir(path)
	asset := &Asset{
		Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Dir:  dir,
	}

	resolver := texture.NewResolver(dir)
	for i := range odr.Shaders {
		asset.Shaders = append(asset.Shaders, c.resolveShader(resolver, asset.Name, i, &odr.Shaders[i]))
	}

	for _, tier := range formats.LodTiers {
		meshes, ok := odr.Lods[tier]
		if !ok {
			continue
		}
		for _, ref := range meshes {
			sub, err := c.decodeMesh(resolver.Abs(texture.LocalPath(ref)), asset.Shaders)
			if err != nil {
				return nil, fmt.Errorf("mesh %s: %w", ref, err)
			}
			sub.Tier = tier
			sub.Path = ref
			asset.Meshes = append(asset.Meshes, *sub)
		}
	}

	return asset, nil
}

func (c *Converter) resolveShader(r *texture.Resolver, asset string, ordinal int, s *formats.Shader) Shader {
	out := Shader{
		Name:   fmt.Sprintf("%s_%d", asset, ordinal),
		Preset: s.Preset,
	}

	for _, which := range formats.Samplers {
		raw := s.Sampler(which)
		if raw == "" {
			continue
		}
		image, err := r.Resolve(raw)
		if err != nil {
			logger.Warn("texture unresolved",
				zap.String("shader", out.Name),
				zap.Stringer("sampler", which),
				zap.Error(err))
			continue
		}
		out.Textures[which] = image

		if !texture.HasImageExt(image) {
			logger.Warn("unexpected image extension", zap.String("image", image))
		}
		if c.cfg.ProbeImages {
			c.probe(r, image)
		}
	}

	return out
}

func (c *Converter) probe(r *texture.Resolver, image string) {
	info, err := texture.Probe(r.Abs(filepath.FromSlash(image)))
	if err != nil {
		logger.Warn("image probe failed", zap.String("image", image), zap.Error(err))
		return
	}
	logger.Debug("image",
		zap.String("path", image),
		zap.String("format", info.Format),
		zap.Int("width", info.Width),
		zap.Int("height", info.Height))
}

func (c *Converter) decodeMesh(path string, shaders []Shader) (*SubMesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	mesh, err := formats.ParseMesh(data)
	if err != nil {
		return nil, err
	}
	if c.cfg.Dump {
		logger.Debug("parsed mesh", zap.String("path", path), zap.String("dump", Dump(mesh)))
	}

	sub := &SubMesh{Skinned: mesh.Skinned}
	for i := range mesh.Geometries {
		g := &mesh.Geometries[i]
		if g.ShaderIndex < 0 || g.ShaderIndex >= len(shaders) {
			return nil, fmt.Errorf("geometry %d: %w: %d of %d", i, ErrShaderIndex, g.ShaderIndex, len(shaders))
		}
		shader := shaders[g.ShaderIndex]

		layout, err := c.catalog.Layout(shader.Preset, mesh.Skinned)
		if err != nil {
			return nil, fmt.Errorf("geometry %d: %w", i, err)
		}
		sel, missing, err := SelectAttributes(layout, c.cfg.StrictUsage)
		if err != nil {
			return nil, fmt.Errorf("geometry %d: shader %s: %w", i, shader.Preset, err)
		}
		for _, usage := range missing {
			logger.Warn("vertex layout lacks usage, using group 0",
				zap.String("preset", shader.Preset),
				zap.Bool("skinned", mesh.Skinned),
				zap.Stringer("usage", usage))
		}

		geom, err := Project(g, sel, c.cfg.ValidateIndices)
		if err != nil {
			return nil, fmt.Errorf("geometry %d: %w", i, err)
		}
		if geom.Mismatched > 0 {
			logger.Debug("attribute values differ from declared type",
				zap.String("preset", shader.Preset),
				zap.Int("groups", geom.Mismatched))
		}
		sub.Geometries = append(sub.Geometries, geom)
	}

	return sub, nil
}

// IsAsset reports whether path has the asset extension.
func IsAsset(path string) bool {
	return strings.EqualFold(filepath.Ext(path), AssetExt)
}
