package main

import (
	"bytes"
	"testing"

	"github.com/cgtinker/rsraw/core"
)

func TestThumbFileData(t *testing.T) {
	rgb := []byte{0xff, 0x00, 0x00, 0x00, 0xff, 0x00}

	cases := []struct {
		name    string
		thumb   core.ThumbnailImage
		wantExt string
		want    []byte
	}{
		{
			name:    "jpeg passthrough",
			thumb:   core.ThumbnailImage{Format: core.ThumbJPEG, Data: []byte{0xff, 0xd8, 0xff}},
			wantExt: ".jpg",
			want:    []byte{0xff, 0xd8, 0xff},
		},
		{
			name:    "bitmap gains P6 header",
			thumb:   core.ThumbnailImage{Format: core.ThumbBitmap, Width: 2, Height: 1, Colors: 3, Data: rgb},
			wantExt: ".ppm",
			want:    append([]byte("P6\n2 1\n255\n"), rgb...),
		},
		{
			name:    "bitmap16 stays raw",
			thumb:   core.ThumbnailImage{Format: core.ThumbBitmap16, Width: 1, Height: 1, Colors: 3, Data: rgb},
			wantExt: ".bin",
			want:    rgb,
		},
		{
			name:    "single channel bitmap stays raw",
			thumb:   core.ThumbnailImage{Format: core.ThumbBitmap, Width: 6, Height: 1, Colors: 1, Data: rgb},
			wantExt: ".bin",
			want:    rgb,
		},
		{
			name:    "unknown format stays raw",
			thumb:   core.ThumbnailImage{Format: core.ThumbUnknown, Data: rgb},
			wantExt: ".bin",
			want:    rgb,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ext, data := thumbFileData(tc.thumb)
			if ext != tc.wantExt {
				t.Errorf("ext: got %q, want %q", ext, tc.wantExt)
			}
			if !bytes.Equal(data, tc.want) {
				t.Errorf("data: got %x, want %x", data, tc.want)
			}
		})
	}
}
