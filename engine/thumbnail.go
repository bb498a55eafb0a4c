package engine

/*
#include <libraw/libraw.h>
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/cgtinker/rsraw/core"
	apperrors "github.com/cgtinker/rsraw/errors"
)

// ThumbnailCount returns the number of embedded thumbnails the engine
// reports for the container.
func (r *Raw) ThumbnailCount() int {
	if !r.alive() {
		return 0
	}
	return int(r.data.thumbs_list.thumbcount)
}

// unpackThumb decodes the thumbnail at index i and returns the raw engine
// status code. Indirection keeps the call replaceable in tests, which cannot
// reach into cgo themselves.
var unpackThumb = func(r *Raw, i int) int {
	return int(C.libraw_unpack_thumb_ex(r.data, C.int(i)))
}

// ExtractThumbnails decodes every embedded thumbnail in engine index order,
// copying each into an owned buffer so the results outlive the handle. No
// deduplication or filtering is applied. On the first failing index the call
// aborts and discards any partial results. Legal after Open; Unpack is not
// required.
func (r *Raw) ExtractThumbnails() ([]core.ThumbnailImage, error) {
	if !r.alive() {
		return nil, apperrors.New(apperrors.CategoryState, "engine.extract_thumbnails", apperrors.ErrClosed)
	}

	count := r.ThumbnailCount()
	thumbs := make([]core.ThumbnailImage, 0, count)
	r.gen++ // per-index decodes reuse the engine's single thumbnail buffer
	for i := 0; i < count; i++ {
		op := fmt.Sprintf("engine.unpack_thumb[%d]", i)
		if err := status(apperrors.CategoryThumbnail, op,
			C.int(unpackThumb(r, i))); err != nil {
			return nil, err
		}
		t := &r.data.thumbnail
		thumbs = append(thumbs, core.ThumbnailImage{
			Format: thumbFormat(int(t.tformat)),
			Width:  int(t.twidth),
			Height: int(t.theight),
			Colors: int(t.tcolors),
			Data:   C.GoBytes(unsafe.Pointer(t.thumb), C.int(t.tlength)),
		})
	}
	return thumbs, nil
}

func thumbFormat(f int) core.ThumbFormat {
	switch f {
	case C.LIBRAW_THUMBNAIL_JPEG:
		return core.ThumbJPEG
	case C.LIBRAW_THUMBNAIL_BITMAP:
		return core.ThumbBitmap
	case C.LIBRAW_THUMBNAIL_BITMAP16:
		return core.ThumbBitmap16
	case C.LIBRAW_THUMBNAIL_LAYER:
		return core.ThumbLayer
	case C.LIBRAW_THUMBNAIL_ROLLEI:
		return core.ThumbRollei
	default:
		return core.ThumbUnknown
	}
}
