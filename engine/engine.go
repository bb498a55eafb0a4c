// Package engine wraps the native LibRaw decoder behind a single-owner
// handle. The handle walks a fixed lifecycle: Open parses the container,
// Unpack decodes the sensor data, and only then are pixel-level operations
// (RawPixels, Process) legal. Metadata accessors work from Open onward.
//
// A Raw may be handed off between goroutines, but calls on one handle must
// never overlap: the native decoder has no internal locking. Wrap the handle
// in rsraw.Synchronized to share it.
package engine

/*
#cgo LDFLAGS: -lraw
#include <stdlib.h>
#include <libraw/libraw.h>
*/
import "C"

import (
	"errors"
	"runtime"
	"unsafe"

	"github.com/cgtinker/rsraw/config"
	apperrors "github.com/cgtinker/rsraw/errors"
)

type stage int

const (
	stageOpened stage = iota + 1
	stageUnpacked
	stageClosed
)

// Raw owns exactly one native decoder resource. The resource and every
// buffer the engine allocates under it are released exactly once, by Close.
type Raw struct {
	data *C.libraw_data_t

	// Private copy of the input container. LibRaw reads from this buffer on
	// every later call, so it lives in C memory for as long as the handle.
	buf    unsafe.Pointer
	bufLen int

	st  stage
	gen uint64 // bumped by every call that may reallocate engine buffers
	cfg config.Config
}

// status maps a non-zero engine status code onto a typed error, attaching the
// engine's own message. A zero code maps to nil.
func status(cat apperrors.Category, op string, code C.int) error {
	if code == 0 {
		return nil
	}
	msg := C.GoString(C.libraw_strerror(code))
	return apperrors.Status(cat, op, int(code), msg)
}

// Open parses an in-memory raw container (NEF, ARW, ...) and returns an
// Opened handle. The input bytes are copied; the caller's buffer may be
// reused immediately.
func Open(buf []byte, cfg config.Config) (*Raw, error) {
	if len(buf) == 0 {
		return nil, apperrors.New(apperrors.CategoryOpen, "engine.open", apperrors.ErrEmptyInput)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, apperrors.New(apperrors.CategoryConfig, "engine.open", err)
	}

	data := C.libraw_init(0)
	if data == nil {
		return nil, apperrors.New(apperrors.CategoryOpen, "engine.init",
			errors.New("engine state allocation failed"))
	}

	cbuf := C.CBytes(buf)
	if err := status(apperrors.CategoryOpen, "engine.open_buffer",
		C.libraw_open_buffer(data, cbuf, C.size_t(len(buf)))); err != nil {
		C.libraw_close(data)
		C.free(cbuf)
		return nil, err
	}

	r := &Raw{data: data, buf: cbuf, bufLen: len(buf), st: stageOpened, cfg: cfg}
	runtime.SetFinalizer(r, func(h *Raw) { h.Close() })
	return r, nil
}

// Unpack decodes the raw sensor data into the engine's internal per-pixel
// buffer, unlocking RawPixels and Process. The engine is configured to prefer
// its high-fidelity unpack front-end and to cap its peak raw-buffer
// allocation, per the handle's Config. Calling Unpack on an already unpacked
// handle is a no-op.
func (r *Raw) Unpack() error {
	switch r.st {
	case stageClosed:
		return apperrors.New(apperrors.CategoryState, "engine.unpack", apperrors.ErrClosed)
	case stageUnpacked:
		return nil
	}

	rp := &r.data.rawparams
	if r.cfg.PreferRawSpeed {
		rp.use_rawspeed = 1
	}
	rp.max_raw_memory_mb = C.uint(r.cfg.MaxRawMemoryMB)

	r.gen++
	if err := status(apperrors.CategoryUnpack, "engine.unpack", C.libraw_unpack(r.data)); err != nil {
		return err
	}
	r.st = stageUnpacked
	return nil
}

// Close releases the native decoder and every engine-owned buffer under it.
// Close is idempotent and safe after any prior failure; a finalizer invokes
// it as a backstop for handles that were never closed explicitly.
func (r *Raw) Close() error {
	if r.st == stageClosed {
		return nil
	}
	r.st = stageClosed
	r.gen++
	if r.data != nil {
		C.libraw_close(r.data)
		r.data = nil
	}
	if r.buf != nil {
		C.free(r.buf)
		r.buf = nil
	}
	runtime.SetFinalizer(r, nil)
	return nil
}

// alive reports whether engine memory may still be read through this handle.
func (r *Raw) alive() bool { return r.st != stageClosed && r.data != nil }

// unpacked reports whether pixel-level operations are legal.
func (r *Raw) unpacked() bool { return r.st == stageUnpacked && r.data != nil }
