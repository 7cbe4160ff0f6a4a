package transits

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/admin/astro-transits/internal/domain"
	"github.com/google/uuid"
)

type fakeChartRepo struct {
	mu     sync.Mutex
	charts map[uuid.UUID]*domain.NatalChart
}

func newFakeChartRepo() *fakeChartRepo {
	return &fakeChartRepo{charts: make(map[uuid.UUID]*domain.NatalChart)}
}

func (r *fakeChartRepo) Create(_ context.Context, chart *domain.NatalChart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.charts[chart.ID] = chart
	return nil
}

func (r *fakeChartRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.NatalChart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	chart, ok := r.charts[id]
	if !ok {
		return nil, domain.ErrChartNotFound
	}
	return chart, nil
}

func (r *fakeChartRepo) List(_ context.Context, limit int) ([]*domain.NatalChart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.NatalChart, 0, len(r.charts))
	for _, c := range r.charts {
		if len(out) == limit {
			break
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeChartRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.charts[id]; !ok {
		return domain.ErrChartNotFound
	}
	delete(r.charts, id)
	return nil
}

type fakeReports struct {
	files   map[string][]byte
	urlErr  error
	lastTTL time.Duration
}

func newFakeReports() *fakeReports {
	return &fakeReports{files: make(map[string][]byte)}
}

func (f *fakeReports) PutFile(_ context.Context, path string, data []byte, _ string) error {
	f.files[path] = data
	return nil
}

func (f *fakeReports) GetFile(_ context.Context, path string) ([]byte, error) {
	data, ok := f.files[path]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

func (f *fakeReports) GetPresignedURL(_ context.Context, path string, expires time.Duration) (string, error) {
	f.lastTTL = expires
	if f.urlErr != nil {
		return "", f.urlErr
	}
	return "https://s3.local/" + path, nil
}
