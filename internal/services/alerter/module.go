package alerter

import (
	"context"
	"log/slog"

	"github.com/admin/astro-transits/internal/adapters/secondary/alerter"
	"github.com/admin/astro-transits/internal/ports/service"
)

// Service реализует IAlerterService; без настроенного клиента алерт только пишется в лог
type Service struct {
	client *alerter.Client
	log    *slog.Logger
}

// New создаёт сервис алертов; client может быть nil
func New(client *alerter.Client, log *slog.Logger) service.IAlerterService {
	return &Service{
		client: client,
		log:    log,
	}
}

func (s *Service) SendAlert(ctx context.Context, message string) error {
	if s.client == nil {
		s.log.Warn("alert (telegram alerter is not configured)", "message", message)
		return nil
	}

	return s.client.SendAlert(ctx, message)
}
