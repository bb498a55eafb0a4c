package engine_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/cgtinker/rsraw/config"
	"github.com/cgtinker/rsraw/core"
	"github.com/cgtinker/rsraw/engine"
	apperrors "github.com/cgtinker/rsraw/errors"
)

// Real raw assets are large and not vendored; tests that need one skip when
// it is absent. Drop sample files into engine/testdata to enable them.
func loadAsset(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if errors.Is(err, os.ErrNotExist) {
		t.Skipf("raw asset %s not present", name)
	}
	if err != nil {
		t.Fatalf("read asset %s: %v", name, err)
	}
	return data
}

func openAsset(t *testing.T, name string) *engine.Raw {
	t.Helper()
	raw, err := engine.Open(loadAsset(t, name), config.Default())
	if err != nil {
		t.Fatalf("open %s: %v", name, err)
	}
	t.Cleanup(func() { raw.Close() })
	return raw
}

func TestOpen_EmptyBuffer(t *testing.T) {
	_, err := engine.Open(nil, config.Default())
	if !errors.Is(err, apperrors.ErrEmptyInput) {
		t.Errorf("Open(nil): got %v, want ErrEmptyInput", err)
	}
}

func TestOpen_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.MaxRawMemoryMB = 0
	_, err := engine.Open([]byte{1, 2, 3}, cfg)
	if !apperrors.IsCategory(err, apperrors.CategoryConfig) {
		t.Errorf("Open with bad config: got %v, want config-category error", err)
	}
}

func TestOpen_GarbageBuffer(t *testing.T) {
	buf := make([]byte, 4096)
	for i := range buf {
		buf[i] = byte(i * 7)
	}
	_, err := engine.Open(buf, config.Default())
	if err == nil {
		t.Fatal("Open(garbage): got nil error, want open failure")
	}
	if !apperrors.IsCategory(err, apperrors.CategoryOpen) {
		t.Errorf("Open(garbage): error category not open: %v", err)
	}
}

// Known capture parameters of the vendored sample files.
var assetCases = []struct {
	file      string
	width     int
	height    int
	colors    int
	iso       int
	shutter   float32
	aperture  float32
	focal     float32
	lensMin   float32
	lensMax   float32
	focusType core.FocusType
	mount     string
}{
	{
		file: "test-z8.NEF", width: 8280, height: 5520, colors: 3,
		iso: 250, shutter: 1.0 / 100.0, aperture: 3.5, focal: 105,
		lensMin: 105, lensMax: 105, focusType: core.FocusPrime, mount: "Nikon Z",
	},
	{
		file: "test-a7rm4.ARW", width: 9568, height: 6376, colors: 3,
		iso: 320, shutter: 1.0 / 500.0, aperture: 4.0, focal: 40,
		lensMin: 40, lensMax: 40, focusType: core.FocusPrime, mount: "Sony E",
	},
}

func TestFullInfo_KnownFiles(t *testing.T) {
	for _, tc := range assetCases {
		t.Run(tc.file, func(t *testing.T) {
			raw := openAsset(t, tc.file)

			// Metadata must be available straight after Open, no Unpack.
			info := raw.FullInfo()
			if info.Width != tc.width || info.Height != tc.height {
				t.Errorf("geometry: got %dx%d, want %dx%d",
					info.Width, info.Height, tc.width, tc.height)
			}
			if info.Pixels != tc.width*tc.height {
				t.Errorf("pixels: got %d, want %d", info.Pixels, tc.width*tc.height)
			}
			if info.Colors != tc.colors {
				t.Errorf("colors: got %d, want %d", info.Colors, tc.colors)
			}
			if info.ISOSpeed != tc.iso {
				t.Errorf("iso: got %d, want %d", info.ISOSpeed, tc.iso)
			}
			if info.Shutter != tc.shutter {
				t.Errorf("shutter: got %v, want %v", info.Shutter, tc.shutter)
			}
			if info.Aperture != tc.aperture {
				t.Errorf("aperture: got %v, want %v", info.Aperture, tc.aperture)
			}
			if info.FocalLength != tc.focal {
				t.Errorf("focal length: got %v, want %v", info.FocalLength, tc.focal)
			}
			if info.Lens.MinFocal != tc.lensMin || info.Lens.MaxFocal != tc.lensMax {
				t.Errorf("lens focal range: got %v-%v, want %v-%v",
					info.Lens.MinFocal, info.Lens.MaxFocal, tc.lensMin, tc.lensMax)
			}
			if info.Lens.Focus != tc.focusType {
				t.Errorf("focus type: got %s, want %s", info.Lens.Focus, tc.focusType)
			}
			if info.Lens.Mount != tc.mount {
				t.Errorf("mount: got %q, want %q", info.Lens.Mount, tc.mount)
			}
			if info.Datetime == nil {
				t.Error("datetime: got nil, want a capture timestamp")
			}
			if got := raw.ChannelDescription(); got != "RGBG" {
				t.Errorf("channel description: got %q, want \"RGBG\"", got)
			}
			if raw.Filters() == 0 {
				t.Error("filters: got 0, want a Bayer pattern code")
			}

			// Snapshots are stable across repeated calls without mutation.
			again := raw.FullInfo()
			if info.Width != again.Width || info.ISOSpeed != again.ISOSpeed ||
				info.Model != again.Model || info.Lens != again.Lens {
				t.Error("repeated FullInfo snapshots differ")
			}
		})
	}
}

func TestRawPixels_RequiresUnpack(t *testing.T) {
	raw := openAsset(t, assetCases[0].file)
	if _, err := raw.RawPixels(); !errors.Is(err, apperrors.ErrNotUnpacked) {
		t.Errorf("RawPixels before Unpack: got %v, want ErrNotUnpacked", err)
	}
}

func TestRawPixels_Geometry(t *testing.T) {
	raw := openAsset(t, assetCases[0].file)
	if err := raw.Unpack(); err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	view, err := raw.RawPixels()
	if err != nil {
		t.Fatalf("RawPixels: %v", err)
	}
	data, err := view.Data()
	if err != nil {
		t.Fatalf("Data: %v", err)
	}
	if want := raw.RawWidth() * raw.RawHeight(); len(data) != want {
		t.Errorf("pixel count: got %d, want raw_width*raw_height = %d", len(data), want)
	}
	if raw.RawWidth() < raw.Width() || raw.RawHeight() < raw.Height() {
		t.Errorf("raw geometry %dx%d smaller than processed %dx%d",
			raw.RawWidth(), raw.RawHeight(), raw.Width(), raw.Height())
	}
}

func TestPixelView_InvalidatedByProcess(t *testing.T) {
	raw := openAsset(t, assetCases[0].file)
	if err := raw.Unpack(); err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	view, err := raw.RawPixels()
	if err != nil {
		t.Fatalf("RawPixels: %v", err)
	}

	// Copied data must survive later mutating calls; borrowed views must not.
	data, err := view.Data()
	if err != nil {
		t.Fatalf("Data: %v", err)
	}
	n := min(len(data), 4096)
	before := make([]uint16, n)
	copy(before, data)
	witness := make([]uint16, n)
	copy(witness, data)

	img, err := raw.Process(core.BitDepth8)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	defer img.Close()

	if view.Valid() {
		t.Error("view still valid after Process")
	}
	if _, err := view.Data(); !errors.Is(err, apperrors.ErrStaleView) {
		t.Errorf("stale view Data: got %v, want ErrStaleView", err)
	}
	for i := range before {
		if before[i] != witness[i] {
			t.Fatalf("copied pixel %d corrupted by Process", i)
		}
	}
}

func TestProcess_BitDepths(t *testing.T) {
	for _, depth := range []core.BitDepth{core.BitDepth8, core.BitDepth16} {
		t.Run(fmt.Sprintf("%d-bit", depth), func(t *testing.T) {
			raw := openAsset(t, assetCases[1].file)
			if err := raw.Unpack(); err != nil {
				t.Fatalf("Unpack: %v", err)
			}
			img, err := raw.Process(depth)
			if err != nil {
				t.Fatalf("Process: %v", err)
			}
			defer img.Close()

			if img.Bits() != int(depth) {
				t.Errorf("bits: got %d, want %d", img.Bits(), depth)
			}
			want := img.Width() * img.Height() * img.Colors() * depth.Bytes()
			if img.DataSize() != want {
				t.Errorf("data size: got %d, want w*h*c*(bits/8) = %d", img.DataSize(), want)
			}
			if img.Format() != core.ImageBitmap {
				t.Errorf("format: got %s, want bitmap", img.Format())
			}
			if len(img.Data()) != img.DataSize() {
				t.Errorf("Data length %d != DataSize %d", len(img.Data()), img.DataSize())
			}
		})
	}
}

func TestProcess_InvalidDepth(t *testing.T) {
	raw := openAsset(t, assetCases[0].file)
	if _, err := raw.Process(core.BitDepth(12)); !errors.Is(err, apperrors.ErrInvalidBitDepth) {
		t.Errorf("Process(12): got %v, want ErrInvalidBitDepth", err)
	}
}

func TestProcess_RequiresUnpack(t *testing.T) {
	raw := openAsset(t, assetCases[0].file)
	if _, err := raw.Process(core.BitDepth8); !errors.Is(err, apperrors.ErrNotUnpacked) {
		t.Errorf("Process before Unpack: got %v, want ErrNotUnpacked", err)
	}
}

func TestExtractThumbnails_CountAndOrder(t *testing.T) {
	for _, tc := range assetCases {
		t.Run(tc.file, func(t *testing.T) {
			raw := openAsset(t, tc.file)
			thumbs, err := raw.ExtractThumbnails()
			if err != nil {
				t.Fatalf("ExtractThumbnails: %v", err)
			}
			if len(thumbs) != raw.ThumbnailCount() {
				t.Errorf("thumbnail count: got %d, want engine-reported %d",
					len(thumbs), raw.ThumbnailCount())
			}
			for i, th := range thumbs {
				if th.Size() == 0 {
					t.Errorf("thumbnail %d: empty data buffer", i)
				}
				if th.Width <= 0 || th.Height <= 0 {
					t.Errorf("thumbnail %d: bad geometry %dx%d", i, th.Width, th.Height)
				}
			}
		})
	}
}

func TestThumbnails_OutliveHandle(t *testing.T) {
	raw := openAsset(t, assetCases[0].file)
	thumbs, err := raw.ExtractThumbnails()
	if err != nil {
		t.Fatalf("ExtractThumbnails: %v", err)
	}
	if len(thumbs) == 0 {
		t.Skip("sample carries no thumbnails")
	}
	first := make([]byte, len(thumbs[0].Data))
	copy(first, thumbs[0].Data)

	raw.Close()

	if string(first) != string(thumbs[0].Data) {
		t.Error("thumbnail buffer changed after handle close; copy is not owned")
	}
}

func TestClose_Idempotent(t *testing.T) {
	raw := openAsset(t, assetCases[0].file)
	if err := raw.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := raw.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	// Accessors degrade to zero values instead of touching freed memory.
	if got := raw.Width(); got != 0 {
		t.Errorf("Width after Close: got %d, want 0", got)
	}
	if _, ok := raw.Datetime(); ok {
		t.Error("Datetime after Close: got present, want absent")
	}
	if err := raw.Unpack(); !errors.Is(err, apperrors.ErrClosed) {
		t.Errorf("Unpack after Close: got %v, want ErrClosed", err)
	}
}

func TestUnpack_Idempotent(t *testing.T) {
	raw := openAsset(t, assetCases[0].file)
	if err := raw.Unpack(); err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if err := raw.Unpack(); err != nil {
		t.Errorf("second Unpack: got %v, want nil", err)
	}
}
