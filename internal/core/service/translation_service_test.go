package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jugendhilfe/casework-system/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubTranslator struct {
	result     string
	err        error
	lastSource string
	lastTarget string
	lastText   string
	calls      int
}

func (t *stubTranslator) Translate(_ context.Context, text, sourceLang, targetLang string) (string, error) {
	t.calls++
	t.lastText = text
	t.lastSource = sourceLang
	t.lastTarget = targetLang
	if t.err != nil {
		return "", t.err
	}
	if t.result != "" {
		return t.result, nil
	}
	return "[" + targetLang + "] " + text, nil
}

type stubRenderer struct {
	err          error
	lastOriginal string
	lastLang     string
}

func (r *stubRenderer) RenderTranslation(original, translated, targetLang string) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.lastOriginal = original
	r.lastLang = targetLang
	return []byte("%PDF " + translated), nil
}

type translationFixture struct {
	*fixture
	translator *stubTranslator
	renderer   *stubRenderer
	tsvc       *TranslationService
}

func newTranslationFixture() *translationFixture {
	f := &translationFixture{
		fixture:    newFixture(),
		translator: &stubTranslator{},
		renderer:   &stubRenderer{},
	}
	f.tsvc = NewTranslationService(f.reports, f.clients, f.store, f.ocr, f.translator, f.renderer, discardLogger)
	return f
}

// ---------------------------------------------------------------------------
// Translate
// ---------------------------------------------------------------------------

func TestTranslate_TextReport(t *testing.T) {
	f := newTranslationFixture()
	f.seedCase("u1", "c1")
	r := seedReport(f.fixture, "u1", "c1", func(r *domain.Report) { r.ReportText = "Hallo Welt" })
	f.translator.result = "Hello World"

	result, err := f.tsvc.Translate(context.Background(), fachkraft("u1"), r.ID, "EN-US")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OriginalText != "Hallo Welt" {
		t.Errorf("original: got %q", result.OriginalText)
	}
	if result.TranslatedText != "Hello World" {
		t.Errorf("translated: got %q", result.TranslatedText)
	}
	if result.TargetLanguage != "EN-US" {
		t.Errorf("target: got %q", result.TargetLanguage)
	}
	if f.translator.lastSource != "DE" {
		t.Errorf("source language must be DE, got %q", f.translator.lastSource)
	}
}

func TestTranslate_LowercaseTargetNormalized(t *testing.T) {
	f := newTranslationFixture()
	f.seedCase("u1", "c1")
	r := seedReport(f.fixture, "u1", "c1", func(r *domain.Report) { r.ReportText = "Hallo" })

	result, err := f.tsvc.Translate(context.Background(), fachkraft("u1"), r.ID, "en-us")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TargetLanguage != "EN-US" {
		t.Errorf("expected normalized EN-US, got %q", result.TargetLanguage)
	}
}

func TestTranslate_FallsBackToClientLanguage(t *testing.T) {
	f := newTranslationFixture()
	f.seedCase("u1", "c1")
	f.clients.byID["c1"].TargetLanguage = "TR"
	r := seedReport(f.fixture, "u1", "c1", func(r *domain.Report) { r.ReportText = "Hallo" })

	result, err := f.tsvc.Translate(context.Background(), fachkraft("u1"), r.ID, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TargetLanguage != "TR" {
		t.Errorf("expected client's preferred TR, got %q", result.TargetLanguage)
	}
}

func TestTranslate_UnsupportedLanguage(t *testing.T) {
	f := newTranslationFixture()
	f.seedCase("u1", "c1")
	r := seedReport(f.fixture, "u1", "c1", func(r *domain.Report) { r.ReportText = "Hallo" })

	for _, lang := range []string{"FR", "XX", ""} {
		_, err := f.tsvc.Translate(context.Background(), fachkraft("u1"), r.ID, lang)
		if !errors.Is(err, domain.ErrUnsupportedLanguage) {
			t.Errorf("lang %q: expected ErrUnsupportedLanguage, got %v", lang, err)
		}
	}
	if f.translator.calls != 0 {
		t.Error("no provider call may happen for unsupported languages")
	}
}

func TestTranslate_NonAuthorForbidden(t *testing.T) {
	f := newTranslationFixture()
	f.seedCase("u1", "c1")
	r := seedReport(f.fixture, "u1", "c1", func(r *domain.Report) { r.ReportText = "Hallo" })

	if _, err := f.tsvc.Translate(context.Background(), fachkraft("u2"), r.ID, "EN-US"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if _, err := f.tsvc.Translate(context.Background(), admin, r.ID, "EN-US"); err != nil {
		t.Errorf("admin must translate any report, got %v", err)
	}
}

func TestTranslate_ReportNotFound(t *testing.T) {
	f := newTranslationFixture()

	if _, err := f.tsvc.Translate(context.Background(), admin, "missing", "EN-US"); !errors.Is(err, domain.ErrReportNotFound) {
		t.Errorf("expected ErrReportNotFound, got %v", err)
	}
}

func TestTranslate_EmptyTextReport(t *testing.T) {
	f := newTranslationFixture()
	f.seedCase("u1", "c1")
	r := seedReport(f.fixture, "u1", "c1", func(r *domain.Report) { r.ReportText = "" })

	if _, err := f.tsvc.Translate(context.Background(), fachkraft("u1"), r.ID, "EN-US"); !errors.Is(err, domain.ErrNoExtractableText) {
		t.Errorf("expected ErrNoExtractableText, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Cached text vs re-extraction for documents
// ---------------------------------------------------------------------------

func seedDocument(f *fixture, cachedText string) *domain.Report {
	return seedReport(f, "u1", "c1", func(r *domain.Report) {
		r.Kind = domain.KindDocument
		r.IsDocument = true
		r.ReportText = cachedText
		r.Content = domain.Summarize(cachedText)
		r.FileMetadata = &domain.FileMetadata{StoragePath: "obj-doc", OriginalName: "scan.jpg"}
	})
}

func TestTranslate_DocumentUsesCompleteCachedText(t *testing.T) {
	f := newTranslationFixture()
	f.seedCase("u1", "c1")
	cached := strings.Repeat("Antragstext ", 20) // well beyond the summary length
	r := seedDocument(f.fixture, cached)

	result, err := f.tsvc.Translate(context.Background(), fachkraft("u1"), r.ID, "EN-US")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.ocr.calls != 0 {
		t.Errorf("complete cached text must not trigger OCR, got %d calls", f.ocr.calls)
	}
	if result.OriginalText != cached {
		t.Error("cached text must be the translation source")
	}
}

func TestTranslate_DocumentShortCacheReExtracts(t *testing.T) {
	f := newTranslationFixture()
	f.seedCase("u1", "c1")
	r := seedDocument(f.fixture, "kurz")
	f.ocr.text = "Der vollständige Text aus dem Scan."

	result, err := f.tsvc.Translate(context.Background(), fachkraft("u1"), r.ID, "EN-US")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.ocr.calls != 1 {
		t.Fatalf("expected one OCR pass, got %d", f.ocr.calls)
	}
	if result.OriginalText != "Der vollständige Text aus dem Scan." {
		t.Errorf("expected freshly extracted text, got %q", result.OriginalText)
	}
}

// The placeholder summary counts as incomplete even when padded past the
// length threshold.
func TestTranslate_DocumentPlaceholderCacheReExtracts(t *testing.T) {
	f := newTranslationFixture()
	f.seedCase("u1", "c1")
	r := seedDocument(f.fixture, domain.PlaceholderSummary+strings.Repeat(" x", 60))
	f.ocr.text = "Echter Text"

	result, err := f.tsvc.Translate(context.Background(), fachkraft("u1"), r.ID, "EN-US")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.ocr.calls != 1 {
		t.Errorf("placeholder-prefixed cache must trigger OCR, got %d calls", f.ocr.calls)
	}
	if result.OriginalText != "Echter Text" {
		t.Errorf("got %q", result.OriginalText)
	}
}

func TestTranslate_DocumentWithoutTextFails(t *testing.T) {
	f := newTranslationFixture()
	f.seedCase("u1", "c1")
	r := seedDocument(f.fixture, "")
	f.ocr.text = ""

	if _, err := f.tsvc.Translate(context.Background(), fachkraft("u1"), r.ID, "EN-US"); !errors.Is(err, domain.ErrNoExtractableText) {
		t.Errorf("expected ErrNoExtractableText, got %v", err)
	}
}

func TestTranslate_ProviderFailure(t *testing.T) {
	f := newTranslationFixture()
	f.seedCase("u1", "c1")
	r := seedReport(f.fixture, "u1", "c1", func(r *domain.Report) { r.ReportText = "Hallo" })
	f.translator.err = errors.New("deepl unavailable")

	if _, err := f.tsvc.Translate(context.Background(), fachkraft("u1"), r.ID, "EN-US"); err == nil {
		t.Fatal("expected error when the provider fails")
	}
}

// ---------------------------------------------------------------------------
// ExportPDF
// ---------------------------------------------------------------------------

func TestExportPDF_Success(t *testing.T) {
	f := newTranslationFixture()
	f.seedCase("u1", "c1")
	r := seedReport(f.fixture, "u1", "c1", func(r *domain.Report) { r.ReportText = "Hallo Welt" })
	f.translator.result = "Hello World"

	export, err := f.tsvc.ExportPDF(context.Background(), fachkraft("u1"), r.ID, "EN-US")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if export.Message != "Übersetzung nach EN-US erfolgreich" {
		t.Errorf("unexpected message %q", export.Message)
	}
	if !strings.HasPrefix(export.DownloadURL, "https://files.test/") {
		t.Errorf("expected retrieval url, got %q", export.DownloadURL)
	}
	if f.renderer.lastOriginal != "Hallo Welt" || f.renderer.lastLang != "EN-US" {
		t.Errorf("renderer input mismatch: %q / %q", f.renderer.lastOriginal, f.renderer.lastLang)
	}

	ref := strings.TrimPrefix(export.DownloadURL, "https://files.test/")
	if got := f.store.objects[ref]; got != "%PDF Hello World" {
		t.Errorf("stored pdf content mismatch: %q", got)
	}
	if !strings.HasSuffix(ref, fmt.Sprintf("%s-EN-US.pdf", r.ID)) {
		t.Errorf("pdf object name should carry report id and language, got %q", ref)
	}
}

func TestExportPDF_RendererFailure(t *testing.T) {
	f := newTranslationFixture()
	f.seedCase("u1", "c1")
	r := seedReport(f.fixture, "u1", "c1", func(r *domain.Report) { r.ReportText = "Hallo" })
	f.renderer.err = errors.New("render failed")

	if _, err := f.tsvc.ExportPDF(context.Background(), fachkraft("u1"), r.ID, "EN-US"); err == nil {
		t.Fatal("expected error when rendering fails")
	}
	if len(f.store.objects) != 0 {
		t.Error("nothing may be stored when rendering fails")
	}
}

func TestExportPDF_PropagatesTranslationErrors(t *testing.T) {
	f := newTranslationFixture()
	f.seedCase("u1", "c1")
	r := seedReport(f.fixture, "u1", "c1", func(r *domain.Report) { r.ReportText = "Hallo" })

	if _, err := f.tsvc.ExportPDF(context.Background(), fachkraft("u2"), r.ID, "EN-US"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}
