package engine

/*
#include <libraw/libraw.h>
*/
import "C"

import (
	"time"
	"unsafe"

	"github.com/cgtinker/rsraw/core"
	"github.com/cgtinker/rsraw/utils"
)

// Metadata accessors are valid any time after Open, never fail, and return
// zero values for absent or unparseable fields. After Close they return zero
// values rather than touching released engine memory.

// ctext copies a fixed-size C text buffer and normalizes it to owned UTF-8.
func ctext(p unsafe.Pointer, n int) string {
	return utils.TextField(C.GoBytes(p, C.int(n)))
}

// Width returns the processed-image width in pixels.
func (r *Raw) Width() int {
	if !r.alive() {
		return 0
	}
	return int(r.data.sizes.width)
}

// Height returns the processed-image height in pixels.
func (r *Raw) Height() int {
	if !r.alive() {
		return 0
	}
	return int(r.data.sizes.height)
}

// Pixels returns Width × Height.
func (r *Raw) Pixels() int { return r.Width() * r.Height() }

// Colors returns the number of color channels.
func (r *Raw) Colors() int {
	if !r.alive() {
		return 0
	}
	return int(r.data.idata.colors)
}

// ISOSpeed returns the capture ISO.
func (r *Raw) ISOSpeed() int {
	if !r.alive() {
		return 0
	}
	return int(r.data.other.iso_speed)
}

// Shutter returns the shutter speed as fractional seconds.
func (r *Raw) Shutter() float32 {
	if !r.alive() {
		return 0
	}
	return float32(r.data.other.shutter)
}

// Aperture returns the f-number.
func (r *Raw) Aperture() float32 {
	if !r.alive() {
		return 0
	}
	return float32(r.data.other.aperture)
}

// FocalLength returns the capture focal length in millimetres.
func (r *Raw) FocalLength() float32 {
	if !r.alive() {
		return 0
	}
	return float32(r.data.other.focal_len)
}

// Datetime returns the capture timestamp in the local timezone. A zero or
// negative epoch is reported as absent, never as an error.
func (r *Raw) Datetime() (time.Time, bool) {
	if !r.alive() {
		return time.Time{}, false
	}
	ts := int64(r.data.other.timestamp)
	if ts <= 0 {
		return time.Time{}, false
	}
	return time.Unix(ts, 0), true
}

// GPS returns the parsed GPS tag, or the zero value when the file has none.
func (r *Raw) GPS() core.GpsInfo {
	if !r.alive() {
		return core.GpsInfo{}
	}
	g := &r.data.other.parsed_gps
	return core.GpsInfo{
		Latitude:     [3]float32{float32(g.latitude[0]), float32(g.latitude[1]), float32(g.latitude[2])},
		Longitude:    [3]float32{float32(g.longitude[0]), float32(g.longitude[1]), float32(g.longitude[2])},
		GpsTimestamp: [3]float32{float32(g.gpstimestamp[0]), float32(g.gpstimestamp[1]), float32(g.gpstimestamp[2])},
		Altitude:     float32(g.altitude),
		AltitudeRef:  byte(g.altref),
		LatitudeRef:  utils.RefField(byte(g.latref)),
		LongitudeRef: utils.RefField(byte(g.longref)),
		Status:       utils.RefField(byte(g.gpsstatus)),
		Parsed:       g.gpsparsed != 0,
	}
}

// Artist returns the EXIF artist field.
func (r *Raw) Artist() string {
	if !r.alive() {
		return ""
	}
	return ctext(unsafe.Pointer(&r.data.other.artist[0]), len(r.data.other.artist))
}

// Description returns the EXIF description, surrounding whitespace trimmed.
func (r *Raw) Description() string {
	if !r.alive() {
		return ""
	}
	return utils.DescriptionField(C.GoBytes(unsafe.Pointer(&r.data.other.desc[0]), C.int(len(r.data.other.desc))))
}

// Make returns the camera make.
func (r *Raw) Make() string {
	if !r.alive() {
		return ""
	}
	return ctext(unsafe.Pointer(&r.data.idata._make[0]), len(r.data.idata._make))
}

// Model returns the camera model.
func (r *Raw) Model() string {
	if !r.alive() {
		return ""
	}
	return ctext(unsafe.Pointer(&r.data.idata.model[0]), len(r.data.idata.model))
}

// NormalizedMake returns the make as normalized by the engine's camera table.
func (r *Raw) NormalizedMake() string {
	if !r.alive() {
		return ""
	}
	return ctext(unsafe.Pointer(&r.data.idata.normalized_make[0]), len(r.data.idata.normalized_make))
}

// NormalizedModel returns the model as normalized by the engine's camera table.
func (r *Raw) NormalizedModel() string {
	if !r.alive() {
		return ""
	}
	return ctext(unsafe.Pointer(&r.data.idata.normalized_model[0]), len(r.data.idata.normalized_model))
}

// Software returns the firmware or software tag.
func (r *Raw) Software() string {
	if !r.alive() {
		return ""
	}
	return ctext(unsafe.Pointer(&r.data.idata.software[0]), len(r.data.idata.software))
}

// RawCount returns the number of raw frames in the container.
func (r *Raw) RawCount() int {
	if !r.alive() {
		return 0
	}
	return int(r.data.idata.raw_count)
}

// DNGVersion returns the DNG version tag, zero for non-DNG files.
func (r *Raw) DNGVersion() uint32 {
	if !r.alive() {
		return 0
	}
	return uint32(r.data.idata.dng_version)
}

// Filters returns the color filter array pattern code.
func (r *Raw) Filters() uint32 {
	if !r.alive() {
		return 0
	}
	return uint32(r.data.idata.filters)
}

// ChannelDescription returns the engine's channel-order descriptor, e.g. "RGBG".
func (r *Raw) ChannelDescription() string {
	if !r.alive() {
		return ""
	}
	return ctext(unsafe.Pointer(&r.data.idata.cdesc[0]), len(r.data.idata.cdesc))
}

// LensInfo returns the lens descriptor for the frame.
func (r *Raw) LensInfo() core.LensInfo {
	if !r.alive() {
		return core.LensInfo{}
	}
	l := &r.data.lens
	mn := &l.makernotes
	minFocal := float32(l.MinFocal)
	maxFocal := float32(l.MaxFocal)
	return core.LensInfo{
		MinFocal:              minFocal,
		MaxFocal:              maxFocal,
		MaxApertureAtMinFocal: float32(l.MaxAp4MinFocal),
		MaxApertureAtMaxFocal: float32(l.MaxAp4MaxFocal),
		Make:                  ctext(unsafe.Pointer(&l.LensMake[0]), len(l.LensMake)),
		Name:                  ctext(unsafe.Pointer(&l.Lens[0]), len(l.Lens)),
		Serial:                ctext(unsafe.Pointer(&l.LensSerial[0]), len(l.LensSerial)),
		InternalSerial:        ctext(unsafe.Pointer(&l.InternalLensSerial[0]), len(l.InternalLensSerial)),
		FocalIn35mm:           int(l.FocalLengthIn35mmFormat),
		Mount:                 mountName(int(mn.LensMount)),
		Focus:                 core.ClassifyFocus(int(mn.FocalType), minFocal, maxFocal),
		FeaturePrefix:         ctext(unsafe.Pointer(&mn.LensFeatures_pre[0]), len(mn.LensFeatures_pre)),
		FeatureSuffix:         ctext(unsafe.Pointer(&mn.LensFeatures_suf[0]), len(mn.LensFeatures_suf)),
	}
}

// FullInfo aggregates every metadata accessor into one owned snapshot.
// Metadata is stable after Open, so repeated snapshots are identical.
func (r *Raw) FullInfo() core.FullRawInfo {
	info := core.FullRawInfo{
		Width:       r.Width(),
		Height:      r.Height(),
		Pixels:      r.Pixels(),
		Colors:      r.Colors(),
		ISOSpeed:    r.ISOSpeed(),
		Shutter:     r.Shutter(),
		Aperture:    r.Aperture(),
		FocalLength: r.FocalLength(),
		GPS:         r.GPS(),
		Artist:      r.Artist(),
		Description: r.Description(),
		Make:        r.Make(),
		Model:       r.Model(),
		NormMake:    r.NormalizedMake(),
		NormModel:   r.NormalizedModel(),
		Software:    r.Software(),
		RawCount:    r.RawCount(),
		DNGVersion:  r.DNGVersion(),
		Lens:        r.LensInfo(),
	}
	if ts, ok := r.Datetime(); ok {
		info.Datetime = &ts
	}
	return info
}
