package texture

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
)

// ErrUnknownImage is returned for files that are not a recognized image.
var ErrUnknownImage = errors.New("unrecognized image format")

// ImageExts lists the extensions expected behind a texture descriptor.
var ImageExts = []string{".png", ".tga", ".dds", ".jpg", ".jpeg", ".bmp"}

// ImageInfo describes a probed image.
type ImageInfo struct {
	Format string
	Width  int
	Height int
}

// HasImageExt reports whether path ends in one of ImageExts.
func HasImageExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range ImageExts {
		if ext == e {
			return true
		}
	}
	return false
}

// Probe reads the header of an image file and returns its dimensions.
// The decoder is chosen by extension.
func Probe(path string) (*ImageInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	var decode func(io.Reader) (image.Config, error)
	switch ext {
	case ".png":
		decode = png.DecodeConfig
	case ".jpg", ".jpeg":
		decode = jpeg.DecodeConfig
	case ".bmp":
		decode = bmp.DecodeConfig
	case ".tga":
		decode = tga.DecodeConfig
	case ".dds":
		return probeDDS(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownImage, path)
	}

	cfg, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &ImageInfo{Format: strings.TrimPrefix(ext, "."), Width: cfg.Width, Height: cfg.Height}, nil
}

// probeDDS reads width and height from a DirectDraw Surface header.
func probeDDS(data []byte) (*ImageInfo, error) {
	if len(data) < 20 || !bytes.HasPrefix(data, []byte("DDS ")) {
		return nil, fmt.Errorf("%w: bad DDS header", ErrUnknownImage)
	}
	// magic(4) size(4) flags(4) height(4) width(4)
	height := binary.LittleEndian.Uint32(data[12:16])
	width := binary.LittleEndian.Uint32(data[16:20])
	return &ImageInfo{Format: "dds", Width: int(width), Height: int(height)}, nil
}
