package transits

import (
	"log/slog"
	"time"

	"github.com/admin/astro-transits/internal/ports/repository"
	"github.com/admin/astro-transits/internal/ports/service"
	"github.com/admin/astro-transits/internal/ports/storage"
)

// Config ограничения поиска окон
type Config struct {
	OracleTimeout time.Duration `envconfig:"ORACLE_TIMEOUT" default:"10s"`
	MaxDays       int           `envconfig:"MAX_DAYS" default:"3660"`
	WarmDays      int           `envconfig:"WARM_DAYS" default:"30"`
	ReportURLTTL  time.Duration `envconfig:"REPORT_URL_TTL" default:"1h"`
}

// Service бизнес-логика аспектов и транзитных окон
type Service struct {
	Ephemeris     service.IEphemerisService
	ChartRepo     repository.IChartRepo  // может быть nil
	Reports       storage.IReportStorage // может быть nil
	OracleTimeout time.Duration
	MaxDays       int
	ReportURLTTL  time.Duration
	Log           *slog.Logger
}

// New создаёт сервис; chartRepo и reports опциональны
func New(
	ephemeris service.IEphemerisService,
	chartRepo repository.IChartRepo,
	reports storage.IReportStorage,
	cfg *Config,
	log *slog.Logger,
) *Service {
	s := &Service{
		Ephemeris:     ephemeris,
		ChartRepo:     chartRepo,
		Reports:       reports,
		OracleTimeout: 10 * time.Second,
		MaxDays:       3660,
		ReportURLTTL:  time.Hour,
		Log:           log,
	}
	if cfg != nil {
		if cfg.OracleTimeout > 0 {
			s.OracleTimeout = cfg.OracleTimeout
		}
		if cfg.MaxDays > 0 {
			s.MaxDays = cfg.MaxDays
		}
		if cfg.ReportURLTTL > 0 {
			s.ReportURLTTL = cfg.ReportURLTTL
		}
	}
	return s
}
