package engine

/*
#include <libraw/libraw.h>
*/
import "C"

import (
	"unsafe"

	apperrors "github.com/cgtinker/rsraw/errors"
)

// PixelView is a borrowed window over the engine's unpacked sensor buffer,
// sized RawWidth × RawHeight. It stays valid only until the next call that
// mutates the owning handle (Process, ExtractThumbnails, Close); after that
// Data fails with ErrStaleView instead of reading freed engine memory.
type PixelView struct {
	r      *Raw
	gen    uint64
	width  int
	height int
}

// RawWidth returns the sensor-buffer width, which includes masked border
// pixels and therefore exceeds the processed Width.
func (r *Raw) RawWidth() int {
	if !r.alive() {
		return 0
	}
	return int(r.data.sizes.raw_width)
}

// RawHeight returns the sensor-buffer height.
func (r *Raw) RawHeight() int {
	if !r.alive() {
		return 0
	}
	return int(r.data.sizes.raw_height)
}

// RawPixels returns a borrowed view over the unpacked sensor data. It is only
// legal after Unpack.
func (r *Raw) RawPixels() (*PixelView, error) {
	if !r.alive() {
		return nil, apperrors.New(apperrors.CategoryState, "engine.raw_pixels", apperrors.ErrClosed)
	}
	if !r.unpacked() {
		return nil, apperrors.New(apperrors.CategoryState, "engine.raw_pixels", apperrors.ErrNotUnpacked)
	}
	if r.data.rawdata.raw_image == nil {
		return nil, apperrors.New(apperrors.CategoryState, "engine.raw_pixels", apperrors.ErrNoRawBuffer)
	}
	return &PixelView{r: r, gen: r.gen, width: r.RawWidth(), height: r.RawHeight()}, nil
}

// Width returns the view width in sensor pixels.
func (v *PixelView) Width() int { return v.width }

// Height returns the view height in sensor pixels.
func (v *PixelView) Height() int { return v.height }

// Len returns Width × Height.
func (v *PixelView) Len() int { return v.width * v.height }

// Valid reports whether the view still matches the handle's buffer
// generation.
func (v *PixelView) Valid() bool {
	return v.r.alive() && v.gen == v.r.gen
}

// Data returns the borrowed sensor samples. The slice aliases engine memory:
// it must not be retained across any mutating call on the handle. Copy it if
// it has to outlive the view.
func (v *PixelView) Data() ([]uint16, error) {
	if !v.Valid() {
		return nil, apperrors.New(apperrors.CategoryState, "engine.pixel_view", apperrors.ErrStaleView)
	}
	ptr := (*uint16)(unsafe.Pointer(v.r.data.rawdata.raw_image))
	return unsafe.Slice(ptr, v.Len()), nil
}
