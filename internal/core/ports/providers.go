package ports

import (
	"context"
	"io"
	"time"
)

// FileInfo carries the metadata of a file handed to the store.
type FileInfo struct {
	Name        string
	ContentType string
	Size        int64
}

// StoredObject is the result of storing a file.
type StoredObject struct {
	// Reference is the provider key under which the object was stored.
	Reference string
	// URL is a stable public URL, set only when the store is configured as
	// public. Private stores issue retrieval URLs on demand instead.
	URL string
}

// FileStore abstracts the cloud object store.
type FileStore interface {
	Store(ctx context.Context, r io.Reader, info FileInfo) (*StoredObject, error)
	// RetrievalURL returns a URL under which the object can be fetched: the
	// stable public URL for public stores, a signed time-limited URL for
	// private ones.
	RetrievalURL(ctx context.Context, reference string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, reference string) error
}

// TextExtractor abstracts OCR. It returns "" with a nil error when the
// document contains no detectable text; an error means the provider itself
// failed.
type TextExtractor interface {
	ExtractText(ctx context.Context, url string) (string, error)
}

// Translator abstracts machine translation. It returns "" with a nil error
// for empty input; an error means the provider failed.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// CleanupScheduler accepts stored-object references for best-effort deletion
// in the background. Schedule never blocks the caller on the actual delete.
type CleanupScheduler interface {
	Schedule(reference string)
}

// PDFRenderer renders the bilingual translation export document.
type PDFRenderer interface {
	RenderTranslation(original, translated, targetLang string) ([]byte, error)
}
