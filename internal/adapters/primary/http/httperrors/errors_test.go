package httperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/admin/astro-transits/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestStatusAndMessage(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "validation wrapped",
			err:     fmt.Errorf("scan Sun Square Venus: %w", domain.ErrNonNumericDegree),
			status:  http.StatusBadRequest,
			message: "degree values must be numeric",
		},
		{
			name:    "chart not found",
			err:     fmt.Errorf("get chart: %w", domain.ErrChartNotFound),
			status:  http.StatusNotFound,
			message: "natal chart not found",
		},
		{
			name:    "report storage disabled",
			err:     domain.ErrReportStorageDisabled,
			status:  http.StatusBadRequest,
			message: "report storage is not configured",
		},
		{
			name:    "internal",
			err:     errors.New("connection reset"),
			status:  http.StatusInternalServerError,
			message: "connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, Status(tt.err))
			assert.Equal(t, tt.message, Message(tt.err))
		})
	}
}
