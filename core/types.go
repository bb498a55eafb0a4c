package core

import "time"

// BitDepth selects the develop pipeline's output precision per channel.
// Only BitDepth8 and BitDepth16 are legal; everything else is rejected
// before the engine is invoked.
type BitDepth int

const (
	BitDepth8  BitDepth = 8
	BitDepth16 BitDepth = 16
)

// Valid reports whether d is one of the two supported output depths.
func (d BitDepth) Valid() bool { return d == BitDepth8 || d == BitDepth16 }

// Bytes returns the per-sample byte width.
func (d BitDepth) Bytes() int { return int(d) / 8 }

// ImageFormat tags the layout of a developed image buffer.
type ImageFormat string

const (
	ImageJPEG    ImageFormat = "jpeg"
	ImageBitmap  ImageFormat = "bitmap"
	ImageUnknown ImageFormat = "unknown"
)

// ThumbFormat tags the encoding of an embedded thumbnail.
type ThumbFormat string

const (
	ThumbJPEG     ThumbFormat = "jpeg"
	ThumbBitmap   ThumbFormat = "bitmap"
	ThumbBitmap16 ThumbFormat = "bitmap16"
	ThumbLayer    ThumbFormat = "layer"
	ThumbRollei   ThumbFormat = "rollei"
	ThumbUnknown  ThumbFormat = "unknown"
)

// FocusType classifies a lens as fixed focal length or zoom.
type FocusType string

const (
	FocusUnknown FocusType = "unknown"
	FocusPrime   FocusType = "prime"
	FocusZoom    FocusType = "zoom"
)

// Engine makernote focal-type codes.
const (
	focalTypeFixed = 1
	focalTypeZoom  = 2
)

// ClassifyFocus maps the engine's makernote focal-type code to a FocusType.
// Cameras that leave the code unset are classified from the focal range:
// a degenerate range is a prime lens.
func ClassifyFocus(code int, minFocal, maxFocal float32) FocusType {
	switch code {
	case focalTypeFixed:
		return FocusPrime
	case focalTypeZoom:
		return FocusZoom
	}
	if minFocal > 0 && minFocal == maxFocal {
		return FocusPrime
	}
	if minFocal > 0 && maxFocal > minFocal {
		return FocusZoom
	}
	return FocusUnknown
}

// GpsInfo carries the coordinate and reference fields as reported by the
// engine. A raw file without a GPS tag yields the zero value.
type GpsInfo struct {
	Latitude     [3]float32 `json:"latitude"`      // degrees, minutes, seconds
	Longitude    [3]float32 `json:"longitude"`     // degrees, minutes, seconds
	GpsTimestamp [3]float32 `json:"gps_timestamp"` // hours, minutes, seconds
	Altitude     float32    `json:"altitude"`
	AltitudeRef  byte       `json:"altitude_ref"`
	LatitudeRef  string     `json:"latitude_ref"`  // "N" or "S"
	LongitudeRef string     `json:"longitude_ref"` // "E" or "W"
	Status       string     `json:"status"`
	Parsed       bool       `json:"parsed"`
}

// LensInfo describes the lens a frame was captured with. It is a pure
// transform of the engine's lens fields with no independent lifecycle.
type LensInfo struct {
	MinFocal              float32   `json:"min_focal"`
	MaxFocal              float32   `json:"max_focal"`
	MaxApertureAtMinFocal float32   `json:"max_aperture_at_min_focal"`
	MaxApertureAtMaxFocal float32   `json:"max_aperture_at_max_focal"`
	Make                  string    `json:"lens_make"`
	Name                  string    `json:"lens_name"`
	Serial                string    `json:"lens_serial"`
	InternalSerial        string    `json:"internal_lens_serial"`
	FocalIn35mm           int       `json:"focal_length_in_35mm_format"`
	Mount                 string    `json:"mount"`
	Focus                 FocusType `json:"focus_type"`
	FeaturePrefix         string    `json:"feature_prefix"`
	FeatureSuffix         string    `json:"feature_suffix"`
}

// FullRawInfo is a read-only snapshot of everything the engine knows about a
// frame short of pixel data. All numeric fields are in caller-friendly units
// (shutter as fractional seconds, focal length in millimetres).
type FullRawInfo struct {
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	Pixels      int        `json:"pixels"` // Width × Height
	Colors      int        `json:"colors"`
	ISOSpeed    int        `json:"iso_speed"`
	Shutter     float32    `json:"shutter"`
	Aperture    float32    `json:"aperture"`
	FocalLength float32    `json:"focal_len"`
	Datetime    *time.Time `json:"datetime,omitempty"` // nil when absent or unparseable
	GPS         GpsInfo    `json:"gps"`
	Artist      string     `json:"artist"`
	Description string     `json:"desc"`
	Make        string     `json:"make"`
	Model       string     `json:"model"`
	NormMake    string     `json:"normalized_make"`
	NormModel   string     `json:"normalized_model"`
	Software    string     `json:"software"`
	RawCount    int        `json:"raw_count"`
	DNGVersion  uint32     `json:"dng_version"`
	Lens        LensInfo   `json:"lens_info"`
}

// ThumbnailImage is one embedded thumbnail, eagerly copied out of engine
// memory so its lifetime is independent of the handle that produced it.
type ThumbnailImage struct {
	Format ThumbFormat `json:"format"`
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Colors int         `json:"colors"`
	Data   []byte      `json:"-"`
}

// Size returns the encoded byte length.
func (t ThumbnailImage) Size() int { return len(t.Data) }
