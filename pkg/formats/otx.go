package formats

import (
	"errors"
	"strings"
)

// ErrNoImage is returned for a texture descriptor without an Image line.
var ErrNoImage = errors.New("no Image line in texture descriptor")

// OTX is a parsed OpenFormats texture descriptor.
type OTX struct {
	Image string // Image path relative to the descriptor
}

// ParseOTX parses texture descriptor text.
func ParseOTX(data []byte) (*OTX, error) {
	root, err := ParseBlocks(data)
	if err != nil {
		return nil, err
	}

	image := root.Find("Image", false)
	if image == nil || strings.TrimSpace(image.Text) == "" {
		return nil, ErrNoImage
	}

	return &OTX{Image: strings.TrimSpace(image.Text)}, nil
}
