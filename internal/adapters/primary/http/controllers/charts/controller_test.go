package chartsController

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/admin/astro-transits/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCharts IChartUseCase в памяти
type memCharts struct {
	mu     sync.Mutex
	charts map[uuid.UUID]*domain.NatalChart
	order  []uuid.UUID
}

func newMemCharts() *memCharts {
	return &memCharts{charts: map[uuid.UUID]*domain.NatalChart{}}
}

func (m *memCharts) CreateChart(_ context.Context, name string, zodiac domain.ZodiacMode, points domain.LongitudeMap) (*domain.NatalChart, error) {
	if name == "" {
		return nil, domain.NewValidationError("chart name is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	chart := &domain.NatalChart{ID: uuid.New(), Name: name, Zodiac: zodiac, Points: points, CreatedAt: time.Now()}
	m.charts[chart.ID] = chart
	m.order = append(m.order, chart.ID)
	return chart, nil
}

func (m *memCharts) GetChart(_ context.Context, id uuid.UUID) (*domain.NatalChart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	chart, ok := m.charts[id]
	if !ok {
		return nil, domain.ErrChartNotFound
	}
	return chart, nil
}

func (m *memCharts) ListCharts(_ context.Context, limit int) ([]*domain.NatalChart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.NatalChart{}
	for _, id := range m.order {
		if chart, ok := m.charts[id]; ok {
			out = append(out, chart)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memCharts) DeleteChart(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.charts[id]; !ok {
		return domain.ErrChartNotFound
	}
	delete(m.charts, id)
	return nil
}

func newRouter(charts *memCharts) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	New(charts, slog.New(slog.NewTextHandler(io.Discard, nil))).RegisterRoutes(router)
	return router
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestChartLifecycle(t *testing.T) {
	router := newRouter(newMemCharts())

	rr := do(router, http.MethodPost, "/api/v1/charts", `{"name":"Ada","zodiac":"sidereal","points":{"Venus":145.67,"Sun":10.5}}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created CreateChartResp
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	rr = do(router, http.MethodGet, "/api/v1/charts/"+created.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"points":{"Venus":145.67,"Sun":10.5}`)
	assert.Contains(t, rr.Body.String(), `"zodiac":"sidereal"`)

	rr = do(router, http.MethodGet, "/api/v1/charts?limit=5", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var list ListChartsResp
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Len(t, list.Charts, 1)

	rr = do(router, http.MethodDelete, "/api/v1/charts/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(router, http.MethodGet, "/api/v1/charts/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestChartRejections(t *testing.T) {
	router := newRouter(newMemCharts())

	rr := do(router, http.MethodPost, "/api/v1/charts", `{"name":"","points":{"Sun":1}}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"chart name is required"}`, rr.Body.String())

	rr = do(router, http.MethodPost, "/api/v1/charts", `{"name":"a","points":{"Sun":"x"}}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"degree values must be numeric"}`, rr.Body.String())

	rr = do(router, http.MethodGet, "/api/v1/charts/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(router, http.MethodGet, "/api/v1/charts?limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
