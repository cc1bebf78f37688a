package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jugendhilfe/casework-system/internal/api/metrics"
	"github.com/jugendhilfe/casework-system/internal/core/domain"
	"github.com/jugendhilfe/casework-system/internal/core/policy"
	"github.com/jugendhilfe/casework-system/internal/core/ports"
)

// ocrURLTTL is how long the signed URL handed to the OCR provider stays
// valid. Extraction runs synchronously within the upload, so a short window
// is enough.
const ocrURLTTL = 5 * time.Minute

// UploadDocument runs the document ingestion pipeline:
//
//	Received -> Authorized -> Stored -> (Extracted) -> Persisted -> Cleaned
//
// The spooled temp file is removed on every exit path, success or failure.
// OCR failure is non-fatal: the upload proceeds with whatever text resulted.
// No report record is written unless the store step fully succeeded.
func (s *ReportService) UploadDocument(ctx context.Context, input ports.UploadDocumentInput) (*ports.ReportView, error) {
	defer s.removeTemp(input.File.TempPath)

	// Authorized: the author must be the client's currently assigned
	// specialist. Assignment can change between this check and the insert
	// below; that narrow window is accepted (no client-row lock is taken).
	client := s.clientForAccess(ctx, input.ClientID)
	if !policy.CanAccessClient(input.Actor.ID, client) {
		metrics.DocumentUploadsTotal.WithLabelValues("forbidden").Inc()
		return nil, domain.ErrForbidden
	}

	// Stored: stream the spooled file to the object store.
	f, err := os.Open(input.File.TempPath)
	if err != nil {
		metrics.DocumentUploadsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("open upload buffer: %w", err)
	}
	stored, err := s.store.Store(ctx, f, ports.FileInfo{
		Name:        input.File.OriginalName,
		ContentType: input.File.ContentType,
		Size:        input.File.Size,
	})
	f.Close()
	if err != nil {
		metrics.DocumentUploadsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("store document: %w", err)
	}

	// Extracted: only when the caller flagged the file as a scan. Extraction
	// errors degrade to empty text; the upload must not fail because OCR did.
	text := ""
	if input.IsDocument {
		text = s.extractText(ctx, stored.Reference)
	}

	summary := domain.PlaceholderSummary
	if text != "" {
		summary = domain.Summarize(text)
	}

	// Persisted: write the DOCUMENT record with file metadata and any
	// extracted text cached on the same fields a text report uses.
	now := time.Now().UTC()
	report := &domain.Report{
		ClientID:   input.ClientID,
		AuthorID:   input.Actor.ID,
		Kind:       domain.KindDocument,
		Content:    summary,
		ReportText: text,
		IsDocument: true,
		FileMetadata: &domain.FileMetadata{
			FileName:     stored.Reference,
			OriginalName: input.File.OriginalName,
			ContentType:  input.File.ContentType,
			StoragePath:  stored.Reference,
			Size:         input.File.Size,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.reports.Create(ctx, report)
	if err != nil {
		// The object is already in the store; hand it to the background
		// cleaner so it does not leak.
		s.cleanup.Schedule(stored.Reference)
		metrics.DocumentUploadsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("persist document record: %w", err)
	}

	metrics.DocumentUploadsTotal.WithLabelValues("ok").Inc()
	metrics.ReportsCreatedTotal.WithLabelValues(string(domain.KindDocument)).Inc()
	s.logger.Info().
		Str("report_id", created.ID).
		Str("client_id", created.ClientID).
		Str("reference", stored.Reference).
		Bool("ocr", input.IsDocument).
		Msg("document uploaded")

	view := s.toView(ctx, created)
	return &view, nil
}

// extractText obtains a retrieval URL for the stored object and runs OCR on
// it. Any failure is logged and collapses to empty text.
func (s *ReportService) extractText(ctx context.Context, reference string) string {
	url, err := s.store.RetrievalURL(ctx, reference, ocrURLTTL)
	if err != nil {
		metrics.OCRFailuresTotal.Inc()
		s.logger.Warn().Err(err).Str("reference", reference).Msg("retrieval url for ocr failed, storing without text")
		return ""
	}

	text, err := s.ocr.ExtractText(ctx, url)
	if err != nil {
		metrics.OCRFailuresTotal.Inc()
		s.logger.Warn().Err(err).Str("reference", reference).Msg("ocr failed, storing without text")
		return ""
	}
	return text
}

// removeTemp deletes the spooled upload buffer. Paths that were already
// removed (or never existed) are fine.
func (s *ReportService) removeTemp(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn().Err(err).Str("path", path).Msg("failed to remove upload buffer")
	}
}
