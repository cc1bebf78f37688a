package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jugendhilfe/casework-system/internal/api/metrics"
	"github.com/jugendhilfe/casework-system/internal/core/domain"
	"github.com/jugendhilfe/casework-system/internal/core/policy"
	"github.com/jugendhilfe/casework-system/internal/core/ports"
)

// sourceLanguage is fixed: reports are written in German.
const sourceLanguage = "DE"

// exportURLTTL bounds the lifetime of the signed link to an exported PDF.
const exportURLTTL = 5 * time.Minute

// supportedTargets is the fixed set of translation targets offered to
// multilingual clients.
var supportedTargets = map[string]struct{}{
	"EN-US": {}, "TR": {}, "AR": {}, "FA": {}, "RU": {}, "SO": {},
}

// TranslationService translates report text on demand and optionally renders
// a bilingual PDF export.
type TranslationService struct {
	reports    ports.ReportRepository
	clients    ports.ClientRepository
	store      ports.FileStore
	ocr        ports.TextExtractor
	translator ports.Translator
	renderer   ports.PDFRenderer
	logger     zerolog.Logger
}

func NewTranslationService(
	reports ports.ReportRepository,
	clients ports.ClientRepository,
	store ports.FileStore,
	ocr ports.TextExtractor,
	translator ports.Translator,
	renderer ports.PDFRenderer,
	logger zerolog.Logger,
) *TranslationService {
	return &TranslationService{
		reports:    reports,
		clients:    clients,
		store:      store,
		ocr:        ocr,
		translator: translator,
		renderer:   renderer,
		logger:     logger,
	}
}

// Translate resolves the report's original text (cached or re-extracted) and
// translates it into targetLang. Authorization: author or Verwaltung.
func (s *TranslationService) Translate(ctx context.Context, actor domain.Actor, reportID, targetLang string) (*ports.TranslationResult, error) {
	report, target, err := s.prepare(ctx, actor, reportID, targetLang)
	if err != nil {
		return nil, err
	}

	originalText, err := s.originalText(ctx, report)
	if err != nil {
		return nil, err
	}

	translated, err := s.translator.Translate(ctx, originalText, sourceLanguage, target)
	if err != nil {
		return nil, fmt.Errorf("translate report %s: %w", reportID, err)
	}
	if translated == "" {
		return nil, domain.ErrNoExtractableText
	}

	metrics.TranslationsTotal.WithLabelValues(target).Inc()
	s.logger.Info().Str("report_id", reportID).Str("target_lang", target).Msg("report translated")

	return &ports.TranslationResult{
		OriginalText:   originalText,
		TranslatedText: translated,
		TargetLanguage: target,
	}, nil
}

// ExportPDF translates the report, renders the bilingual PDF, stores it, and
// returns a time-limited download URL.
func (s *TranslationService) ExportPDF(ctx context.Context, actor domain.Actor, reportID, targetLang string) (*ports.TranslationExport, error) {
	result, err := s.Translate(ctx, actor, reportID, targetLang)
	if err != nil {
		return nil, err
	}

	pdf, err := s.renderer.RenderTranslation(result.OriginalText, result.TranslatedText, result.TargetLanguage)
	if err != nil {
		return nil, fmt.Errorf("render translation pdf: %w", err)
	}

	name := fmt.Sprintf("%s-%s.pdf", reportID, result.TargetLanguage)
	stored, err := s.store.Store(ctx, bytes.NewReader(pdf), ports.FileInfo{
		Name:        name,
		ContentType: "application/pdf",
		Size:        int64(len(pdf)),
	})
	if err != nil {
		return nil, fmt.Errorf("store translation pdf: %w", err)
	}

	url, err := s.store.RetrievalURL(ctx, stored.Reference, exportURLTTL)
	if err != nil {
		return nil, fmt.Errorf("retrieval url for translation pdf: %w", err)
	}

	return &ports.TranslationExport{
		Message:     fmt.Sprintf("Übersetzung nach %s erfolgreich", result.TargetLanguage),
		DownloadURL: url,
	}, nil
}

// prepare fetches the report, authorizes the actor, and resolves the target
// language (falling back to the client's preferred one when none is given).
func (s *TranslationService) prepare(ctx context.Context, actor domain.Actor, reportID, targetLang string) (*domain.Report, string, error) {
	report, err := s.reports.FindByID(ctx, reportID)
	if err != nil {
		return nil, "", err
	}

	if !policy.IsAuthorOrAdmin(actor, report) {
		return nil, "", domain.ErrForbidden
	}

	target := strings.ToUpper(strings.TrimSpace(targetLang))
	if target == "" {
		if client, err := s.clients.FindByID(ctx, report.ClientID); err == nil {
			target = strings.ToUpper(client.TargetLanguage)
		}
	}
	if _, ok := supportedTargets[target]; !ok {
		return nil, "", domain.ErrUnsupportedLanguage
	}

	return report, target, nil
}

// originalText decides between the cached text and a fresh OCR pass. The
// cached text counts as complete when it is longer than the list-view summary
// and is not the placeholder written for scans without extractable text.
func (s *TranslationService) originalText(ctx context.Context, report *domain.Report) (string, error) {
	if report.HasStoredObject() {
		if cacheComplete(report.ReportText) {
			return report.ReportText, nil
		}

		url, err := s.store.RetrievalURL(ctx, report.FileMetadata.StoragePath, ocrURLTTL)
		if err != nil {
			return "", fmt.Errorf("retrieval url for ocr: %w", err)
		}
		text, err := s.ocr.ExtractText(ctx, url)
		if err != nil {
			return "", fmt.Errorf("extract text: %w", err)
		}
		if text == "" {
			return "", domain.ErrNoExtractableText
		}
		return text, nil
	}

	if report.Kind == domain.KindReport && report.ReportText != "" {
		return report.ReportText, nil
	}
	return "", domain.ErrNoExtractableText
}

func cacheComplete(text string) bool {
	return len([]rune(text)) > domain.SummaryLength &&
		!strings.HasPrefix(text, "Dokument")
}
