package texture

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/Faultbox/odr2obj/internal/logger"
	"github.com/Faultbox/odr2obj/pkg/formats"
)

func TestMain(m *testing.M) {
	logger.Replace(zap.NewNop())
	os.Exit(m.Run())
}

// writeFile creates path (slash-separated, relative to dir) with content.
func writeFile(t *testing.T, dir, path, content string) {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func descriptor(image string) string {
	return "Version 8 2\n{\n\tImage " + image + "\n\tType Regular\n}\n"
}

func TestResolver_Resolve(t *testing.T) {
	root := t.TempDir()
	asset := filepath.Join(root, "models")

	writeFile(t, asset, "wall.otx", descriptor("tex/wall.png"))
	writeFile(t, asset, "direct/floor.otx", descriptor("floor.dds"))
	writeFile(t, asset, "textures/brick/brick.otx", descriptor(`img\brick.dds`))
	writeFile(t, root, "shared/shared.otx", descriptor("shared.tga"))
	writeFile(t, asset, "lib/stone.otx", descriptor("stone.png"))
	writeFile(t, asset, "detail/roof.otx", descriptor("roof.png"))
	writeFile(t, asset, "detail+hidr/roof.otx", descriptor("roof_hidr.png"))
	writeFile(t, asset, "plain/door.otx", descriptor("door.png"))
	writeFile(t, asset, "plain+hi/door.otx", descriptor("door_hi.png"))

	tests := []struct {
		name    string
		sampler string
		want    string
	}{
		{"sibling otx", "wall", "tex/wall.png"},
		{"existing descriptor", "direct/floor.otx", "direct/floor.dds"},
		{"directory of same name", `textures\brick`, "textures/brick/img/brick.dds"},
		{"parent directory", "shared", "../shared/shared.tga"},
		{"wildcard search", "stone", "lib/stone.png"},
		{"hidr override", "detail/roof.otx", "detail+hidr/roof_hidr.png"},
		{"hi override", "plain/door.otx", "plain+hi/door_hi.png"},
	}

	r := NewResolver(asset)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.sampler)
			if err != nil {
				t.Fatalf("Resolve(%q) failed: %v", tt.sampler, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.sampler, got, tt.want)
			}
		})
	}
}

func TestResolver_Errors(t *testing.T) {
	asset := t.TempDir()
	writeFile(t, asset, "empty.otx", "Version 8 2\n{\n\tType Regular\n}\n")

	tests := []struct {
		name    string
		sampler string
		wantErr error
	}{
		{"semicolon", "wall;rm", ErrUnsafePath},
		{"colon", "C:wall", ErrUnsafePath},
		{"empty", "", ErrUnsafePath},
		{"missing", "nothing", ErrNotFound},
		{"missing otx is not searched", "nothing.otx", ErrNotFound},
		{"descriptor without image", "empty", formats.ErrNoImage},
	}

	r := NewResolver(asset)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(tt.sampler)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestResolver_Abs(t *testing.T) {
	r := NewResolver("")
	if r.Base() != "." {
		t.Errorf("expected base '.', got %q", r.Base())
	}

	r = NewResolver("/assets")
	if got := r.Abs("tex/a.png"); got != filepath.Join("/assets", "tex", "a.png") {
		t.Errorf("unexpected Abs result %q", got)
	}
	if got := r.Abs("/other/a.png"); got != "/other/a.png" {
		t.Errorf("absolute path should be kept, got %q", got)
	}
}

func TestLocalPath(t *testing.T) {
	want := filepath.Join("textures", "brick", "a.otx")
	if got := LocalPath(` textures\brick/a.otx `); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
