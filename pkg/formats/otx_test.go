package formats

import (
	"errors"
	"testing"
)

func TestParseOTX(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		want    string
		wantErr error
	}{
		{
			name: "descriptor",
			src:  "Version 8 2\n{\n\tImage tex/wall.png\n\tType Regular\n}\n",
			want: "tex/wall.png",
		},
		{
			name: "spaces in path",
			src:  "{\n\tImage my textures\\wall 01.dds\n}\n",
			want: `my textures\wall 01.dds`,
		},
		{
			name:    "missing image",
			src:     "Version 8 2\n{\n\tType Regular\n}\n",
			wantErr: ErrNoImage,
		},
		{
			name:    "empty image",
			src:     "{\n\tImage\n}\n",
			wantErr: ErrNoImage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			otx, err := ParseOTX([]byte(tt.src))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseOTX failed: %v", err)
			}
			if otx.Image != tt.want {
				t.Errorf("got %q, want %q", otx.Image, tt.want)
			}
		})
	}
}
