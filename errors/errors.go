package errors

import (
	"errors"
	"fmt"
)

// Category classifies error types by the decode stage that produced them.
type Category string

const (
	CategoryOpen        Category = "open"
	CategoryUnpack      Category = "unpack"
	CategoryThumbnail   Category = "thumbnail"
	CategoryProcess     Category = "process"
	CategoryMaterialize Category = "materialize"
	CategoryConfig      Category = "config"
	CategoryState       Category = "state"
)

// fatalThreshold splits LibRaw status codes: everything below it left the
// decoder in an unusable state.
const fatalThreshold = -100000

// EngineError is the structured error type used throughout the module.
type EngineError struct {
	Category Category
	Op       string // operation name
	Code     int    // engine status code; 0 when the failure is not engine-reported
	Err      error
}

func (e *EngineError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("[%s] %s: %v (status %d)", e.Category, e.Op, e.Err, e.Code)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Category, e.Op, e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }

// New creates an EngineError for a failure originating in this module.
func New(category Category, op string, err error) *EngineError {
	return &EngineError{Category: category, Op: op, Err: err}
}

// Status creates an EngineError from a non-zero engine status code and the
// engine's own message for it.
func Status(category Category, op string, code int, msg string) *EngineError {
	return &EngineError{Category: category, Op: op, Code: code, Err: errors.New(msg)}
}

// Wrap wraps an existing error with context.
func Wrap(category Category, op string, err error) error {
	if err == nil {
		return nil
	}
	return New(category, op, err)
}

// IsCategory reports whether err belongs to the given category.
func IsCategory(err error, cat Category) bool {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Category == cat
	}
	return false
}

// StatusCode extracts the engine status code from err, if it carries one.
func StatusCode(err error) (int, bool) {
	var ee *EngineError
	if errors.As(err, &ee) && ee.Code != 0 {
		return ee.Code, true
	}
	return 0, false
}

// IsFatal reports whether err corresponds to a fatal engine status, after
// which the decoder handle can only be closed.
func IsFatal(err error) bool {
	code, ok := StatusCode(err)
	return ok && code < fatalThreshold
}

// Sentinel errors for common failure modes.
var (
	ErrClosed          = errors.New("decoder handle is closed")
	ErrNotUnpacked     = errors.New("operation requires a prior Unpack")
	ErrStaleView       = errors.New("pixel view invalidated by a later call on the handle")
	ErrInvalidBitDepth = errors.New("output bit depth must be 8 or 16")
	ErrEmptyInput      = errors.New("empty input buffer")
	ErrNoRawBuffer     = errors.New("engine holds no raw pixel buffer")
)
