package chartsController

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/admin/astro-transits/internal/adapters/primary/http/httperrors"
	"github.com/admin/astro-transits/internal/domain"
	"github.com/admin/astro-transits/internal/ports/usecase"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Controller CRUD сохранённых натальных карт, регистрируется только при настроенном Postgres
type Controller struct {
	Charts usecase.IChartUseCase
	Log    *slog.Logger
}

func New(charts usecase.IChartUseCase, log *slog.Logger) *Controller {
	return &Controller{
		Charts: charts,
		Log:    log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		v1.POST("/charts", c.handleCreate)
		v1.GET("/charts", c.handleList)
		v1.GET("/charts/:id", c.handleGet)
		v1.DELETE("/charts/:id", c.handleDelete)
	}
}

func (c *Controller) handleCreate(ctx *gin.Context) {
	var req CreateChartReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			httperrors.Write(ctx, c.Log, err)
			return
		}
		httperrors.BadRequest(ctx, "invalid JSON body: "+err.Error())
		return
	}

	chart, err := c.Charts.CreateChart(ctx.Request.Context(), req.Name, domain.ParseZodiacMode(req.Zodiac), req.Points)
	if err != nil {
		httperrors.Write(ctx, c.Log, err)
		return
	}

	ctx.JSON(http.StatusCreated, CreateChartResp{ID: chart.ID.String()})
}

func (c *Controller) handleList(ctx *gin.Context) {
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			httperrors.BadRequest(ctx, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	charts, err := c.Charts.ListCharts(ctx.Request.Context(), limit)
	if err != nil {
		httperrors.Write(ctx, c.Log, err)
		return
	}

	ctx.JSON(http.StatusOK, ListChartsResp{Charts: charts})
}

func (c *Controller) handleGet(ctx *gin.Context) {
	id, ok := c.parseID(ctx)
	if !ok {
		return
	}

	chart, err := c.Charts.GetChart(ctx.Request.Context(), id)
	if err != nil {
		httperrors.Write(ctx, c.Log, err)
		return
	}

	ctx.JSON(http.StatusOK, chart)
}

func (c *Controller) handleDelete(ctx *gin.Context) {
	id, ok := c.parseID(ctx)
	if !ok {
		return
	}

	if err := c.Charts.DeleteChart(ctx.Request.Context(), id); err != nil {
		httperrors.Write(ctx, c.Log, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *Controller) parseID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		httperrors.BadRequest(ctx, "invalid chart id")
		return uuid.Nil, false
	}
	return id, true
}
