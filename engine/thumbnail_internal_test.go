package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cgtinker/rsraw/config"
	apperrors "github.com/cgtinker/rsraw/errors"
)

func openInternalAsset(t *testing.T, name string) *Raw {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if errors.Is(err, os.ErrNotExist) {
		t.Skipf("raw asset %s not present", name)
	}
	if err != nil {
		t.Fatalf("read asset %s: %v", name, err)
	}
	raw, err := Open(data, config.Default())
	if err != nil {
		t.Fatalf("open %s: %v", name, err)
	}
	t.Cleanup(func() { raw.Close() })
	return raw
}

// A mid-sequence decode failure aborts the whole extraction: no partial
// slice comes back, and the error carries the thumbnail category plus the
// engine status of the failing index.
func TestExtractThumbnails_AbortsOnFailingIndex(t *testing.T) {
	raw := openInternalAsset(t, "test-z8.NEF")

	count := raw.ThumbnailCount()
	if count < 1 {
		t.Fatalf("ThumbnailCount: got %d, want at least 1", count)
	}
	failAt := count - 1
	const failCode = -100008

	orig := unpackThumb
	defer func() { unpackThumb = orig }()
	unpackThumb = func(r *Raw, i int) int {
		if i == failAt {
			return failCode
		}
		return orig(r, i)
	}

	thumbs, err := raw.ExtractThumbnails()
	if thumbs != nil {
		t.Errorf("ExtractThumbnails: got %d partial results, want none", len(thumbs))
	}
	if err == nil {
		t.Fatal("ExtractThumbnails: got nil error, want failure at last index")
	}
	if !apperrors.IsCategory(err, apperrors.CategoryThumbnail) {
		t.Errorf("error category: got %v, want thumbnail", err)
	}
	if code, ok := apperrors.StatusCode(err); !ok || code != failCode {
		t.Errorf("status code: got (%d, %v), want (%d, true)", code, ok, failCode)
	}
}
