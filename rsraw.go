// Package rsraw is a safe, high-level handle over the LibRaw raw-photograph
// decode engine. Given an in-memory camera raw file (NEF, ARW, ...) it
// extracts structured metadata, embedded thumbnails, and fully developed
// images at 8 or 16 bits per channel.
//
//	raw, err := rsraw.Open(buf)
//	if err != nil {
//		return err
//	}
//	defer raw.Close()
//
//	info := raw.FullInfo()
//	if err := raw.Unpack(); err != nil {
//		return err
//	}
//	img, err := raw.Process(rsraw.BitDepth16)
//	if err != nil {
//		return err
//	}
//	defer img.Close()
package rsraw

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/cgtinker/rsraw/config"
	"github.com/cgtinker/rsraw/core"
	"github.com/cgtinker/rsraw/engine"
	"github.com/cgtinker/rsraw/export"
)

// Re-export the two legal output bit depths for convenience.
const (
	BitDepth8  = core.BitDepth8
	BitDepth16 = core.BitDepth16
)

// Aliases so callers can stay on the root package for the common path.
type (
	RawImage       = engine.Raw
	ProcessedImage = engine.ProcessedImage
	PixelView      = engine.PixelView
	BitDepth       = core.BitDepth
	FullRawInfo    = core.FullRawInfo
	LensInfo       = core.LensInfo
	GpsInfo        = core.GpsInfo
	ThumbnailImage = core.ThumbnailImage
)

// DefaultConfig returns the default engine-governance configuration.
func DefaultConfig() config.Config { return config.Default() }

// Open parses an in-memory raw container with the default configuration.
func Open(buf []byte) (*RawImage, error) {
	return engine.Open(buf, config.Default())
}

// OpenWith parses an in-memory raw container with an explicit configuration.
func OpenWith(buf []byte, cfg config.Config) (*RawImage, error) {
	return engine.Open(buf, cfg)
}

// OpenMany opens several raw buffers concurrently, each on its own handle, up
// to runtime.NumCPU() at a time. Results keep input order. On any failure all
// successfully opened handles are closed and the first error is returned.
func OpenMany(ctx context.Context, bufs ...[]byte) ([]*RawImage, error) {
	if len(bufs) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*RawImage, len(bufs))
	for i, buf := range bufs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			raw, err := Open(buf)
			if err != nil {
				return err
			}
			results[i] = raw
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, raw := range results {
			if raw != nil {
				raw.Close()
			}
		}
		return nil, err
	}
	return results, nil
}

// Synchronized guards a handle with a mutex so it can be shared across
// goroutines. The underlying engine resource has no internal locking, so a
// bare RawImage must never see overlapping calls; Synchronized serializes
// them instead.
type Synchronized struct {
	mu  sync.Mutex
	raw *RawImage
}

// NewSynchronized wraps raw. The caller must stop using raw directly.
func NewSynchronized(raw *RawImage) *Synchronized {
	return &Synchronized{raw: raw}
}

// Do runs fn with exclusive access to the handle. Values borrowed from the
// handle (pixel views, aliased slices) must not escape fn.
func (s *Synchronized) Do(fn func(*RawImage) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.raw)
}

// FullInfo takes a metadata snapshot under the lock.
func (s *Synchronized) FullInfo() FullRawInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raw.FullInfo()
}

// Unpack decodes the sensor data under the lock.
func (s *Synchronized) Unpack() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raw.Unpack()
}

// ExtractThumbnails extracts embedded thumbnails under the lock.
func (s *Synchronized) ExtractThumbnails() ([]ThumbnailImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raw.ExtractThumbnails()
}

// Process develops the image under the lock. The returned image owns its
// buffer and needs no further synchronization.
func (s *Synchronized) Process(depth BitDepth) (*ProcessedImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raw.Process(depth)
}

// Close releases the handle under the lock.
func (s *Synchronized) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raw.Close()
}

// compile-time interface checks
var _ export.Processed = (*engine.ProcessedImage)(nil)
