package engine

/*
#include <libraw/libraw.h>
*/
import "C"

import (
	"errors"
	"runtime"
	"unsafe"

	"github.com/cgtinker/rsraw/core"
	apperrors "github.com/cgtinker/rsraw/errors"
)

// ProcessedImage owns a developed image buffer allocated by the engine. Its
// lifetime is independent of the handle that produced it: the handle may be
// closed or reused without affecting the image. The buffer is released
// exactly once, by Close, through the engine's dedicated image-release call.
type ProcessedImage struct {
	img *C.libraw_processed_image_t
}

// Process runs the full develop pipeline at the given output bit depth and
// materializes the result into an independently owned memory image. Only
// legal after Unpack. The bit depth is validated before the engine is
// touched; anything but 8 or 16 is a contract violation.
func (r *Raw) Process(depth core.BitDepth) (*ProcessedImage, error) {
	if !depth.Valid() {
		return nil, apperrors.New(apperrors.CategoryProcess, "engine.process", apperrors.ErrInvalidBitDepth)
	}
	if !r.alive() {
		return nil, apperrors.New(apperrors.CategoryState, "engine.process", apperrors.ErrClosed)
	}
	if !r.unpacked() {
		return nil, apperrors.New(apperrors.CategoryState, "engine.process", apperrors.ErrNotUnpacked)
	}

	r.data.params.output_bps = C.int(depth)
	r.gen++ // the pipeline reallocates engine-internal buffers

	if err := status(apperrors.CategoryProcess, "engine.run_pipeline",
		C.libraw_dcraw_process(r.data)); err != nil {
		return nil, err
	}

	var code C.int
	img := C.libraw_dcraw_make_mem_image(r.data, &code)
	if err := status(apperrors.CategoryMaterialize, "engine.materialize", code); err != nil {
		return nil, err
	}
	if img == nil {
		return nil, apperrors.New(apperrors.CategoryMaterialize, "engine.materialize",
			errors.New("engine returned no image buffer"))
	}

	p := &ProcessedImage{img: img}
	runtime.SetFinalizer(p, func(pi *ProcessedImage) { pi.Close() })
	return p, nil
}

// Close releases the engine-allocated image buffer. Idempotent; a finalizer
// invokes it as a backstop.
func (p *ProcessedImage) Close() error {
	if p.img != nil {
		C.libraw_dcraw_clear_mem(p.img)
		p.img = nil
		runtime.SetFinalizer(p, nil)
	}
	return nil
}

// Width returns the developed image width in pixels.
func (p *ProcessedImage) Width() int {
	if p.img == nil {
		return 0
	}
	return int(p.img.width)
}

// Height returns the developed image height in pixels.
func (p *ProcessedImage) Height() int {
	if p.img == nil {
		return 0
	}
	return int(p.img.height)
}

// Colors returns the number of color channels.
func (p *ProcessedImage) Colors() int {
	if p.img == nil {
		return 0
	}
	return int(p.img.colors)
}

// Bits returns the per-channel bit depth the pipeline produced.
func (p *ProcessedImage) Bits() int {
	if p.img == nil {
		return 0
	}
	return int(p.img.bits)
}

// DataSize returns the pixel buffer length in bytes, consistent with
// Width × Height × Colors × Bits/8 for bitmap output.
func (p *ProcessedImage) DataSize() int {
	if p.img == nil {
		return 0
	}
	return int(p.img.data_size)
}

// Format returns the layout of the buffer.
func (p *ProcessedImage) Format() core.ImageFormat {
	if p.img == nil {
		return core.ImageUnknown
	}
	switch p.img._type {
	case C.LIBRAW_IMAGE_JPEG:
		return core.ImageJPEG
	case C.LIBRAW_IMAGE_BITMAP:
		return core.ImageBitmap
	default:
		return core.ImageUnknown
	}
}

// Data returns the pixel buffer. The slice aliases the engine-allocated
// memory and is valid until Close; use Bytes for an owned copy.
func (p *ProcessedImage) Data() []byte {
	if p.img == nil {
		return nil
	}
	ptr := (*byte)(unsafe.Pointer(&p.img.data[0]))
	return unsafe.Slice(ptr, p.DataSize())
}

// Bytes returns an owned copy of the pixel buffer.
func (p *ProcessedImage) Bytes() []byte {
	if p.img == nil {
		return nil
	}
	out := make([]byte, p.DataSize())
	copy(out, p.Data())
	return out
}
