// Package texture resolves shader sampler references to image files via
// OTX texture descriptors.
package texture

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/Faultbox/odr2obj/internal/logger"
	"github.com/Faultbox/odr2obj/pkg/formats"
)

// Resolver errors.
var (
	ErrUnsafePath = errors.New("not a valid path")
	ErrNotFound   = errors.New("could not find a matching path")
)

const descriptorExt = ".otx"

var validPath = regexp.MustCompile(`^[\\/\w\-. ]+$`)

// Resolver finds the image behind a sampler path. All lookups are relative
// to the asset directory it was created for.
type Resolver struct {
	base string
}

// NewResolver creates a resolver rooted at the asset directory base.
func NewResolver(base string) *Resolver {
	if base == "" {
		base = "."
	}
	return &Resolver{base: base}
}

// Base returns the asset directory.
func (r *Resolver) Base() string {
	return r.base
}

// Resolve returns the image path for a raw sampler value, slash-separated
// and relative to the asset directory.
func (r *Resolver) Resolve(sampler string) (string, error) {
	if !validPath.MatchString(sampler) {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, sampler)
	}

	otx, err := r.locate(LocalPath(sampler))
	if err != nil {
		return "", fmt.Errorf("sampler %q: %w", sampler, err)
	}
	otx = r.override(otx)

	data, err := os.ReadFile(r.Abs(otx))
	if err != nil {
		return "", fmt.Errorf("reading descriptor: %w", err)
	}
	desc, err := formats.ParseOTX(data)
	if err != nil {
		return "", fmt.Errorf("descriptor %s: %w", otx, err)
	}

	image := LocalPath(desc.Image)
	if !filepath.IsAbs(image) {
		image = filepath.Join(filepath.Dir(otx), image)
	}
	return filepath.ToSlash(image), nil
}

// locate finds the descriptor file for a sampler path.
func (r *Resolver) locate(path string) (string, error) {
	if r.isFile(path) {
		return path, nil
	}
	if strings.EqualFold(filepath.Ext(path), descriptorExt) {
		return "", ErrNotFound
	}

	logger.Info("sampler did not specify location, searching", zap.String("sampler", path))

	name := filepath.Base(path)
	candidates := []string{
		path + descriptorExt,
		filepath.Join(path, name+descriptorExt),
		filepath.Join("..", path, name+descriptorExt),
	}
	for _, c := range candidates {
		if r.isFile(c) {
			logger.Info("found descriptor", zap.String("path", c))
			return c, nil
		}
	}

	matches, err := doublestar.Glob(os.DirFS(r.base), "*/"+name+descriptorExt)
	if err != nil {
		return "", fmt.Errorf("searching %s: %w", name, err)
	}
	for _, m := range matches {
		c := filepath.FromSlash(m)
		if r.isFile(c) {
			logger.Info("found descriptor", zap.String("path", c))
			return c, nil
		}
	}

	return "", ErrNotFound
}

// override prefers a descriptor in a "<dir>+hidr" or "<dir>+hi" sibling
// directory, in that order.
func (r *Resolver) override(otx string) string {
	dir, file := filepath.Split(otx)
	dir = strings.TrimRight(dir, string(filepath.Separator))

	for _, suffix := range []string{"+hidr", "+hi"} {
		candidate := filepath.Join(dir+suffix, file)
		if r.isFile(candidate) {
			logger.Debug("using high detail descriptor", zap.String("path", candidate))
			return candidate
		}
	}
	return otx
}

// Abs returns path joined to the asset directory unless already absolute.
func (r *Resolver) Abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.base, path)
}

func (r *Resolver) isFile(path string) bool {
	info, err := os.Stat(r.Abs(path))
	return err == nil && info.Mode().IsRegular()
}

// LocalPath converts an authored path, which may use backslashes, to the
// host separator.
func LocalPath(p string) string {
	return filepath.FromSlash(strings.ReplaceAll(strings.TrimSpace(p), `\`, "/"))
}
