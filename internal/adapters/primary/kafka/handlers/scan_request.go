package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/admin/astro-transits/internal/domain"
	kafkaPorts "github.com/admin/astro-transits/internal/ports/kafka"
	"github.com/admin/astro-transits/internal/ports/usecase"
)

// ScanRequestHandler выполняет пакетный поиск окон по запросу из Kafka и публикует результат
type ScanRequestHandler struct {
	Transits usecase.ITransitUseCase
	Results  kafkaPorts.IKafkaProducer
	Log      *slog.Logger
}

// NewScanRequestHandler создаёт handler для топика scan_requests
func NewScanRequestHandler(transits usecase.ITransitUseCase, results kafkaPorts.IKafkaProducer, log *slog.Logger) kafkaPorts.MessageHandler {
	return &ScanRequestHandler{
		Transits: transits,
		Results:  results,
		Log:      log,
	}
}

// HandleMessage некорректный запрос получает ответ с ошибкой и возвращается как BusinessError,
// чтобы consumer закоммитил его и не перечитывал.
func (h *ScanRequestHandler) HandleMessage(ctx context.Context, key string, value []byte) error {
	var request domain.ScanRequestMessage
	if err := json.Unmarshal(value, &request); err != nil {
		h.Log.Warn("invalid scan request payload",
			"error", err,
			"key", key,
		)
		if key == "" {
			return domain.WrapBusinessError(fmt.Errorf("invalid scan request payload: %w", err))
		}
		return h.replyError(ctx, key, fmt.Errorf("invalid scan request payload: %w", err))
	}

	requestID := request.RequestID
	if requestID == "" {
		requestID = key
	}
	if requestID == "" {
		h.Log.Warn("scan request without request_id dropped")
		return domain.WrapBusinessError(errors.New("request_id is required"))
	}

	query, err := h.Transits.PrepareBatch(ctx, domain.BatchRequest{
		Natal:          request.NatalChart,
		ChartID:        request.ChartID,
		StartDate:      request.StartDate,
		EndDate:        request.EndDate,
		Orb:            request.Orb,
		TransitPlanets: request.TransitPlanets,
		Zodiac:         request.Zodiac,
	})
	if err != nil {
		if isRejection(err) {
			return h.replyError(ctx, requestID, err)
		}
		return fmt.Errorf("failed to prepare scan %s: %w", requestID, err)
	}

	started := time.Now()
	results, err := h.Transits.ScanAll(ctx, query)
	if err != nil {
		if isRejection(err) {
			return h.replyError(ctx, requestID, err)
		}
		return fmt.Errorf("scan %s failed: %w", requestID, err)
	}

	h.Log.Info("scan request processed",
		"request_id", requestID,
		"windows", len(results),
		"duration", time.Since(started),
	)

	return h.reply(ctx, requestID, domain.ScanResultMessage{
		RequestID: requestID,
		Results:   results,
	})
}

// isRejection ошибка запроса, а не инфраструктуры: повторная обработка ничего не изменит
func isRejection(err error) bool {
	return errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, domain.ErrChartNotFound) ||
		errors.Is(err, domain.ErrChartStorageDisabled)
}

func (h *ScanRequestHandler) replyError(ctx context.Context, requestID string, cause error) error {
	h.Log.Info("scan request rejected",
		"request_id", requestID,
		"reason", cause.Error(),
	)

	if err := h.reply(ctx, requestID, domain.ScanResultMessage{
		RequestID: requestID,
		Results:   []domain.TransitWindow{},
		Error:     cause.Error(),
	}); err != nil {
		return err
	}
	return domain.WrapBusinessError(cause)
}

func (h *ScanRequestHandler) reply(ctx context.Context, requestID string, msg domain.ScanResultMessage) error {
	if msg.Results == nil {
		msg.Results = []domain.TransitWindow{}
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal scan result: %w", err)
	}
	if err := h.Results.Send(ctx, requestID, data); err != nil {
		return fmt.Errorf("failed to publish scan result %s: %w", requestID, err)
	}
	return nil
}
