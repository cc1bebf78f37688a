package ports

import (
	"context"
	"time"

	"github.com/jugendhilfe/casework-system/internal/core/domain"
)

// CreateTextReportInput carries the data for a new text report.
type CreateTextReportInput struct {
	Actor      domain.Actor
	ClientID   string
	ReportText string
}

// FileUpload describes a multipart upload already spooled to local disk.
// TempPath must be unique per request; the pipeline removes it on every exit
// path.
type FileUpload struct {
	TempPath     string
	OriginalName string
	ContentType  string
	Size         int64
}

// UploadDocumentInput carries the data for a document upload.
type UploadDocumentInput struct {
	Actor    domain.Actor
	ClientID string
	// Content is an optional caller-supplied description.
	Content string
	// IsDocument signals that the file is a scan and OCR should run.
	IsDocument bool
	File       FileUpload
}

// ReportView is the report representation returned to the API layer, with the
// author's username resolved.
type ReportView struct {
	ID             string               `json:"id"`
	ClientID       string               `json:"client_id"`
	AuthorID       string               `json:"author_id"`
	AuthorUsername string               `json:"author_username,omitempty"`
	Kind           domain.ReportKind    `json:"type"`
	Content        string               `json:"content"`
	ReportText     string               `json:"report_text,omitempty"`
	IsDocument     bool                 `json:"is_document"`
	IsLocked       bool                 `json:"is_locked"`
	FileMetadata   *domain.FileMetadata `json:"file_metadata,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// DownloadLink points at a stored document.
type DownloadLink struct {
	URL      string `json:"download_url"`
	FileName string `json:"file_name"`
}

// ReportService defines the report lifecycle use cases.
type ReportService interface {
	CreateTextReport(ctx context.Context, input CreateTextReportInput) (*ReportView, error)
	UploadDocument(ctx context.Context, input UploadDocumentInput) (*ReportView, error)
	ListClientReports(ctx context.Context, actor domain.Actor, clientID string) ([]ReportView, error)
	UpdateReport(ctx context.Context, actor domain.Actor, reportID, newText string) (*ReportView, error)
	// DeleteReport is idempotent: deleting an absent report succeeds.
	DeleteReport(ctx context.Context, actor domain.Actor, reportID string) error
	DownloadReference(ctx context.Context, actor domain.Actor, reportID string) (*DownloadLink, error)
}

// TranslationResult is the outcome of an on-demand translation.
type TranslationResult struct {
	OriginalText   string `json:"originalText"`
	TranslatedText string `json:"translatedText"`
	TargetLanguage string `json:"targetLanguage"`
}

// TranslationExport is the outcome of a translation rendered to PDF.
type TranslationExport struct {
	Message     string `json:"msg"`
	DownloadURL string `json:"downloadUrl"`
}

// TranslationService defines the translation use cases.
type TranslationService interface {
	Translate(ctx context.Context, actor domain.Actor, reportID, targetLang string) (*TranslationResult, error)
	// ExportPDF translates and additionally renders and stores a bilingual
	// PDF, returning a retrieval URL for it.
	ExportPDF(ctx context.Context, actor domain.Actor, reportID, targetLang string) (*TranslationExport, error)
}
