package transits

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/admin/astro-transits/internal/domain"
	"github.com/google/uuid"
)

// reportKey путь отчёта в бакете: reports/YYYY/MM/<id>.json
func reportKey(report *domain.ScanReport) string {
	return fmt.Sprintf("reports/%s/%s.json", report.CreatedAt.UTC().Format("2006/01"), report.ID)
}

// ReportsEnabled настроено ли хранилище отчётов
func (s *Service) ReportsEnabled() bool {
	return s.Reports != nil
}

// ExportReport сохраняет отчёт пакетного поиска и возвращает ключ и presigned URL
func (s *Service) ExportReport(ctx context.Context, report *domain.ScanReport) (string, string, error) {
	if s.Reports == nil {
		return "", "", domain.ErrReportStorageDisabled
	}

	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}
	if report.Results == nil {
		report.Results = []domain.TransitWindow{}
	}

	data, err := json.Marshal(report)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal report: %w", err)
	}

	key := reportKey(report)
	if err := s.Reports.PutFile(ctx, key, data, "application/json"); err != nil {
		return "", "", fmt.Errorf("failed to save report: %w", err)
	}

	url, err := s.Reports.GetPresignedURL(ctx, key, s.ReportURLTTL)
	if err != nil {
		s.Log.Warn("report saved but presigned url failed",
			"error", err,
			"report_key", key,
		)
		return key, "", nil
	}

	s.Log.Info("scan report exported",
		"report_id", report.ID,
		"report_key", key,
		"results", len(report.Results),
	)

	return key, url, nil
}
