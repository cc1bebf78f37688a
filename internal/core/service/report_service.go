package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jugendhilfe/casework-system/internal/api/metrics"
	"github.com/jugendhilfe/casework-system/internal/core/domain"
	"github.com/jugendhilfe/casework-system/internal/core/policy"
	"github.com/jugendhilfe/casework-system/internal/core/ports"
)

// downloadURLTTL bounds the lifetime of signed download links.
const downloadURLTTL = 5 * time.Minute

// ReportService implements the report lifecycle. Authorization is re-derived
// from the client's current assignment on every call; nothing is cached.
type ReportService struct {
	reports ports.ReportRepository
	clients ports.ClientRepository
	users   ports.UserRepository
	store   ports.FileStore
	ocr     ports.TextExtractor
	cleanup ports.CleanupScheduler
	logger  zerolog.Logger
}

func NewReportService(
	reports ports.ReportRepository,
	clients ports.ClientRepository,
	users ports.UserRepository,
	store ports.FileStore,
	ocr ports.TextExtractor,
	cleanup ports.CleanupScheduler,
	logger zerolog.Logger,
) *ReportService {
	return &ReportService{
		reports: reports,
		clients: clients,
		users:   users,
		store:   store,
		ocr:     ocr,
		cleanup: cleanup,
		logger:  logger,
	}
}

// clientForAccess fetches the client for an assignment check. A missing
// client collapses into a plain denial for the caller.
func (s *ReportService) clientForAccess(ctx context.Context, clientID string) *domain.Client {
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil
	}
	return client
}

// CreateTextReport persists a new text report for one of the author's
// assigned clients.
func (s *ReportService) CreateTextReport(ctx context.Context, input ports.CreateTextReportInput) (*ports.ReportView, error) {
	client := s.clientForAccess(ctx, input.ClientID)
	if !policy.CanAccessClient(input.Actor.ID, client) {
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	report := &domain.Report{
		ClientID:   input.ClientID,
		AuthorID:   input.Actor.ID,
		Kind:       domain.KindReport,
		Content:    domain.Summarize(input.ReportText),
		ReportText: input.ReportText,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.reports.Create(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	metrics.ReportsCreatedTotal.WithLabelValues(string(domain.KindReport)).Inc()
	s.logger.Info().Str("report_id", created.ID).Str("client_id", created.ClientID).Msg("text report created")

	view := s.toView(ctx, created)
	return &view, nil
}

// ListClientReports returns the client's reports newest-first with author
// usernames resolved. Verwaltung sees any client; a Fachkraft only assigned
// ones.
func (s *ReportService) ListClientReports(ctx context.Context, actor domain.Actor, clientID string) ([]ports.ReportView, error) {
	client := s.clientForAccess(ctx, clientID)
	if !policy.CanViewClientReports(actor, client) {
		return nil, domain.ErrForbidden
	}

	reports, err := s.reports.FindByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	authorIDs := make([]string, 0, len(reports))
	for _, r := range reports {
		authorIDs = append(authorIDs, r.AuthorID)
	}
	usernames, err := s.users.UsernamesByIDs(ctx, authorIDs)
	if err != nil {
		s.logger.Warn().Err(err).Str("client_id", clientID).Msg("failed to resolve author usernames")
		usernames = map[string]string{}
	}

	views := make([]ports.ReportView, 0, len(reports))
	for _, r := range reports {
		v := viewOf(r)
		v.AuthorUsername = usernames[r.AuthorID]
		views = append(views, v)
	}
	return views, nil
}

// UpdateReport overwrites the text body of an unlocked report. Only the
// author or Verwaltung may update, regardless of current client assignment.
func (s *ReportService) UpdateReport(ctx context.Context, actor domain.Actor, reportID, newText string) (*ports.ReportView, error) {
	report, err := s.reports.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	if !policy.IsAuthorOrAdmin(actor, report) {
		return nil, domain.ErrForbidden
	}
	if report.IsLocked {
		return nil, domain.ErrReportLocked
	}

	report.ReportText = newText
	report.Content = domain.Summarize(newText)
	report.UpdatedAt = time.Now().UTC()

	if err := s.reports.Update(ctx, report); err != nil {
		return nil, fmt.Errorf("update report: %w", err)
	}

	s.logger.Info().Str("report_id", reportID).Str("actor_id", actor.ID).Msg("report updated")
	view := s.toView(ctx, report)
	return &view, nil
}

// DeleteReport removes the record. Deleting an absent report succeeds so the
// operation stays idempotent. For documents the stored object is removed
// best-effort in the background; a storage failure never fails the delete.
func (s *ReportService) DeleteReport(ctx context.Context, actor domain.Actor, reportID string) error {
	report, err := s.reports.FindByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, domain.ErrReportNotFound) {
			return nil
		}
		return err
	}

	if !policy.IsAuthorOrAdmin(actor, report) {
		return domain.ErrForbidden
	}
	if report.IsLocked {
		return domain.ErrReportLocked
	}

	if err := s.reports.Delete(ctx, reportID); err != nil {
		return fmt.Errorf("delete report: %w", err)
	}

	if report.HasStoredObject() {
		s.cleanup.Schedule(report.FileMetadata.StoragePath)
	}

	s.logger.Info().Str("report_id", reportID).Str("actor_id", actor.ID).Msg("report deleted")
	return nil
}

// DownloadReference returns a retrieval URL for a stored document. Access
// follows the client's current assignment.
func (s *ReportService) DownloadReference(ctx context.Context, actor domain.Actor, reportID string) (*ports.DownloadLink, error) {
	report, err := s.reports.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if !report.HasStoredObject() {
		return nil, domain.ErrNotADocument
	}

	client := s.clientForAccess(ctx, report.ClientID)
	if !policy.CanAccessClient(actor.ID, client) {
		return nil, domain.ErrForbidden
	}

	url, err := s.store.RetrievalURL(ctx, report.FileMetadata.StoragePath, downloadURLTTL)
	if err != nil {
		return nil, fmt.Errorf("retrieval url: %w", err)
	}

	return &ports.DownloadLink{URL: url, FileName: report.FileMetadata.OriginalName}, nil
}

func (s *ReportService) toView(ctx context.Context, r *domain.Report) ports.ReportView {
	v := viewOf(r)
	if usernames, err := s.users.UsernamesByIDs(ctx, []string{r.AuthorID}); err == nil {
		v.AuthorUsername = usernames[r.AuthorID]
	}
	return v
}

func viewOf(r *domain.Report) ports.ReportView {
	return ports.ReportView{
		ID:           r.ID,
		ClientID:     r.ClientID,
		AuthorID:     r.AuthorID,
		Kind:         r.Kind,
		Content:      r.Content,
		ReportText:   r.ReportText,
		IsDocument:   r.IsDocument,
		IsLocked:     r.IsLocked,
		FileMetadata: r.FileMetadata,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
