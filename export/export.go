// Package export converts developed engine output into Go images and common
// on-disk formats. It deliberately depends only on the processed-image
// accessor surface, not on the decoder handle.
package export

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"strings"

	"github.com/lmittmann/ppm"
	"golang.org/x/image/tiff"

	"github.com/cgtinker/rsraw/core"
	apperrors "github.com/cgtinker/rsraw/errors"
)

// Processed is the subset of a developed image needed for conversion.
// engine.ProcessedImage satisfies it.
type Processed interface {
	Width() int
	Height() int
	Colors() int
	Bits() int
	Format() core.ImageFormat
	Data() []byte
}

// Image converts a developed image into an image.Image. JPEG buffers are
// decoded directly. 8-bit 3-channel bitmaps are read through their Portable
// Pixel Map form, the engine's native interleaved layout; 16-bit bitmaps are
// assembled sample by sample, because the engine emits them in host byte
// order rather than the big-endian order PPM prescribes.
func Image(p Processed) (image.Image, error) {
	switch p.Format() {
	case core.ImageJPEG:
		img, err := jpeg.Decode(bytes.NewReader(p.Data()))
		return img, apperrors.Wrap(apperrors.CategoryMaterialize, "export.image.jpeg", err)

	case core.ImageBitmap:
		if p.Colors() != 3 {
			return nil, apperrors.New(apperrors.CategoryMaterialize, "export.image",
				fmt.Errorf("unsupported channel count %d, want 3", p.Colors()))
		}
		switch p.Bits() {
		case 8:
			header := ppmHeader(p.Width(), p.Height(), 8)
			img, err := ppm.Decode(io.MultiReader(strings.NewReader(header), bytes.NewReader(p.Data())))
			return img, apperrors.Wrap(apperrors.CategoryMaterialize, "export.image.bitmap", err)
		case 16:
			return image16(p)
		default:
			return nil, apperrors.New(apperrors.CategoryMaterialize, "export.image",
				apperrors.ErrInvalidBitDepth)
		}

	default:
		return nil, apperrors.New(apperrors.CategoryMaterialize, "export.image",
			fmt.Errorf("unknown image format %q", p.Format()))
	}
}

// image16 assembles an RGBA64 image from interleaved 16-bit RGB samples in
// host byte order.
func image16(p Processed) (image.Image, error) {
	w, h := p.Width(), p.Height()
	data := p.Data()
	if want := w * h * 6; len(data) < want {
		return nil, apperrors.New(apperrors.CategoryMaterialize, "export.image.bitmap",
			fmt.Errorf("pixel buffer is %d bytes, want %d", len(data), want))
	}
	img := image.NewRGBA64(image.Rect(0, 0, w, h))
	i := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA64(x, y, color.RGBA64{
				R: binary.NativeEndian.Uint16(data[i:]),
				G: binary.NativeEndian.Uint16(data[i+2:]),
				B: binary.NativeEndian.Uint16(data[i+4:]),
				A: 0xffff,
			})
			i += 6
		}
	}
	return img, nil
}

// WriteTIFF converts p and writes it as a deflate-compressed TIFF.
func WriteTIFF(w io.Writer, p Processed) error {
	img, err := Image(p)
	if err != nil {
		return err
	}
	err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	return apperrors.Wrap(apperrors.CategoryMaterialize, "export.tiff", err)
}

// WritePPM writes the bitmap buffer as a binary Portable Pixel Map. Only
// 3-channel bitmap output is representable. 16-bit samples are swapped to
// the big-endian order P6 prescribes; 8-bit data is written as is.
func WritePPM(w io.Writer, p Processed) error {
	if p.Format() != core.ImageBitmap || p.Colors() != 3 {
		return apperrors.New(apperrors.CategoryMaterialize, "export.ppm",
			fmt.Errorf("ppm output requires 3-channel bitmap, got %q with %d channels",
				p.Format(), p.Colors()))
	}
	if p.Bits() != 8 && p.Bits() != 16 {
		return apperrors.New(apperrors.CategoryMaterialize, "export.ppm",
			apperrors.ErrInvalidBitDepth)
	}
	if _, err := io.WriteString(w, ppmHeader(p.Width(), p.Height(), p.Bits())); err != nil {
		return apperrors.Wrap(apperrors.CategoryMaterialize, "export.ppm", err)
	}
	data := p.Data()
	if p.Bits() == 16 {
		be := make([]byte, len(data))
		for i := 0; i+1 < len(data); i += 2 {
			binary.BigEndian.PutUint16(be[i:], binary.NativeEndian.Uint16(data[i:]))
		}
		data = be
	}
	_, err := w.Write(data)
	return apperrors.Wrap(apperrors.CategoryMaterialize, "export.ppm", err)
}

func ppmHeader(width, height, bits int) string {
	return fmt.Sprintf("P6\n%d %d\n%d\n", width, height, (1<<bits)-1)
}
