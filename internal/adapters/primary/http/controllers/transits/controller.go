package transitsController

import (
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/admin/astro-transits/internal/adapters/primary/http/httperrors"
	"github.com/admin/astro-transits/internal/domain"
	"github.com/admin/astro-transits/internal/ports/usecase"
	"github.com/gin-gonic/gin"
)

const (
	defaultAspectsOrb = 2.0
	defaultWindowOrb  = 4.0

	liveMessage        = "Swiss Ephemeris API is live!"
	noWindowMessage    = "No aspect found in that window"
	badDateMessage     = "Invalid or missing date. Use format: YYYY-MM-DD"
	missingAspects     = "Missing required fields: 'natal_chart' and/or 'transits'"
	missingWindowField = "Missing required fields: 'transit_planet', 'natal_planet', 'natal_degree', 'aspect_angle', 'start_date' and 'end_date'"
)

type Controller struct {
	Transits usecase.ITransitUseCase
	Log      *slog.Logger
}

func New(transits usecase.ITransitUseCase, log *slog.Logger) *Controller {
	return &Controller{
		Transits: transits,
		Log:      log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	router.GET("/", c.handleRoot)
	router.GET("/transit", c.handlePositions)
	router.POST("/aspects", c.handleAspects)
	router.POST("/transit-window", c.handleTransitWindow)
	router.POST("/transit-windows", c.handleTransitWindows)
}

func (c *Controller) handleRoot(ctx *gin.Context) {
	ctx.String(http.StatusOK, liveMessage)
}

// bindJSON разбирает тело; нечисловой градус в картах отдаётся клиенту как есть
func (c *Controller) bindJSON(ctx *gin.Context, dst interface{}) bool {
	if err := ctx.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			httperrors.Write(ctx, c.Log, err)
			return false
		}
		httperrors.BadRequest(ctx, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func (c *Controller) handlePositions(ctx *gin.Context) {
	date, err := domain.ParseDate(ctx.Query("date"))
	if err != nil {
		httperrors.BadRequest(ctx, badDateMessage)
		return
	}
	zodiac := domain.ParseZodiacMode(ctx.DefaultQuery("zodiac", string(domain.ZodiacTropical)))

	positions, err := c.Transits.GetPositions(ctx.Request.Context(), date, zodiac)
	if err != nil {
		httperrors.Write(ctx, c.Log, err)
		return
	}

	resp := PositionsResp{
		Date:      date.String(),
		Zodiac:    zodiac,
		Positions: make(map[string]PositionResp, len(positions.Positions)),
	}
	for name, p := range positions.Positions {
		if p.Error != "" {
			resp.Positions[name] = PositionResp{Error: p.Error}
			continue
		}
		longitude := round4(p.Longitude)
		speed := round4(p.Speed)
		retrograde := speed < 0
		resp.Positions[name] = PositionResp{
			Longitude:  &longitude,
			Speed:      &speed,
			Retrograde: &retrograde,
		}
	}

	ctx.JSON(http.StatusOK, resp)
}

func (c *Controller) handleAspects(ctx *gin.Context) {
	var req AspectsReq
	if !c.bindJSON(ctx, &req) {
		return
	}

	if len(req.NatalChart) == 0 || len(req.Transits) == 0 {
		httperrors.BadRequest(ctx, missingAspects)
		return
	}

	orb := defaultAspectsOrb
	if req.Orb != nil {
		orb = *req.Orb
	}

	matches, err := c.Transits.MatchAspects(req.Transits, req.NatalChart, orb)
	if err != nil {
		httperrors.Write(ctx, c.Log, err)
		return
	}

	ctx.JSON(http.StatusOK, AspectsResp{Aspects: matches})
}

func (c *Controller) handleTransitWindow(ctx *gin.Context) {
	var req TransitWindowReq
	if !c.bindJSON(ctx, &req) {
		return
	}

	// нулевой natal_degree считается непереданным, как и раньше
	if req.TransitPlanet == "" || req.NatalPlanet == "" ||
		req.NatalDegree == nil || *req.NatalDegree == 0 ||
		req.AspectAngle == nil || req.StartDate == "" || req.EndDate == "" {
		httperrors.BadRequest(ctx, missingWindowField)
		return
	}

	start, err := domain.ParseDate(req.StartDate)
	if err != nil {
		httperrors.Write(ctx, c.Log, err)
		return
	}
	end, err := domain.ParseDate(req.EndDate)
	if err != nil {
		httperrors.Write(ctx, c.Log, err)
		return
	}
	// end раньше start: пустой диапазон, окно просто не найдено
	if !end.Before(start.Time) {
		if err := c.Transits.CheckRange(start, end); err != nil {
			httperrors.Write(ctx, c.Log, err)
			return
		}
	}

	orb := defaultWindowOrb
	if req.Orb != nil {
		orb = *req.Orb
	}

	window, err := c.Transits.ScanWindow(ctx.Request.Context(), domain.WindowQuery{
		TransitPoint: req.TransitPlanet,
		NatalPoint:   req.NatalPlanet,
		NatalDegree:  *req.NatalDegree,
		AspectAngle:  *req.AspectAngle,
		Orb:          orb,
		Start:        start,
		End:          end,
		Zodiac:       domain.ParseZodiacMode(req.Zodiac),
	})
	if err != nil {
		httperrors.Write(ctx, c.Log, err)
		return
	}
	if window == nil {
		ctx.JSON(http.StatusOK, MessageResp{Message: noWindowMessage})
		return
	}

	ctx.JSON(http.StatusOK, window)
}

func (c *Controller) handleTransitWindows(ctx *gin.Context) {
	var req TransitWindowsReq
	if !c.bindJSON(ctx, &req) {
		return
	}

	query, err := c.Transits.PrepareBatch(ctx.Request.Context(), domain.BatchRequest{
		Natal:          req.NatalChart,
		ChartID:        req.ChartID,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Orb:            req.Orb,
		TransitPlanets: req.TransitPlanets,
		Zodiac:         req.Zodiac,
	})
	if err != nil {
		httperrors.Write(ctx, c.Log, err)
		return
	}
	if req.Export && !c.Transits.ReportsEnabled() {
		httperrors.Write(ctx, c.Log, domain.ErrReportStorageDisabled)
		return
	}

	results, err := c.Transits.ScanAll(ctx.Request.Context(), query)
	if err != nil {
		httperrors.Write(ctx, c.Log, err)
		return
	}

	resp := TransitWindowsResp{Results: results}

	if req.Export {
		key, url, err := c.Transits.ExportReport(ctx.Request.Context(), domain.NewScanReport(query, results))
		if err != nil {
			httperrors.Write(ctx, c.Log, err)
			return
		}
		resp.ReportKey = key
		resp.ReportURL = url
	}

	ctx.JSON(http.StatusOK, resp)
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
