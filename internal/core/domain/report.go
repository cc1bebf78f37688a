package domain

import "time"

// ReportKind discriminates text reports from uploaded documents.
type ReportKind string

const (
	KindReport   ReportKind = "REPORT"
	KindDocument ReportKind = "DOCUMENT"
)

// SummaryLength is the number of characters kept in the short-form summary
// shown in list views.
const SummaryLength = 100

// PlaceholderSummary is stored as the summary of a document whose text could
// not be extracted.
const PlaceholderSummary = "Dokument hochgeladen"

// FileMetadata describes the stored object behind a DOCUMENT report.
type FileMetadata struct {
	FileName     string `json:"file_name"`
	OriginalName string `json:"original_name"`
	ContentType  string `json:"content_type"`
	// StoragePath is the provider reference (object key) of the stored file.
	StoragePath string `json:"storage_path"`
	Size        int64  `json:"size"`
}

// Report is a text or document record attached to a client. Exactly one of
// "ReportText present" and "IsDocument" holds per record.
type Report struct {
	ID       string     `json:"id"`
	ClientID string     `json:"client_id"`
	AuthorID string     `json:"author_id"`
	Kind     ReportKind `json:"type"`
	// Content is the short-form summary (first SummaryLength characters of
	// the text body or of the OCR-extracted text).
	Content      string        `json:"content"`
	ReportText   string        `json:"report_text,omitempty"`
	IsDocument   bool          `json:"is_document"`
	FileMetadata *FileMetadata `json:"file_metadata,omitempty"`
	// IsLocked freezes the record against update and delete. The flag is
	// one-way: there is no unlock operation.
	IsLocked  bool      `json:"is_locked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasStoredObject reports whether the report carries a retrievable file.
func (r *Report) HasStoredObject() bool {
	return r.Kind == KindDocument && r.FileMetadata != nil && r.FileMetadata.StoragePath != ""
}

// Summarize returns the first SummaryLength characters of text.
func Summarize(text string) string {
	runes := []rune(text)
	if len(runes) <= SummaryLength {
		return text
	}
	return string(runes[:SummaryLength])
}
