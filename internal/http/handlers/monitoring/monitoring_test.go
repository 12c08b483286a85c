package monitoring

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	monservice "github.com/asppibra-dao/core-api/internal/services/monitoring"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Fetch(ctx context.Context) (*monservice.Snapshot, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*monservice.Snapshot)
	return s, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name         string
		mockSnapshot *monservice.Snapshot
		mockErr      error
		wantStatus   int
		wantSuccess  bool
		wantErrors   string
	}{
		{
			name: "success",
			mockSnapshot: &monservice.Snapshot{
				Requests:   1200,
				Bytes:      987654,
				CacheRatio: "70",
				DBReads:    300,
				DBWrites:   45,
				Countries: []monservice.CountryCount{
					{Code: "BR", Count: 900},
					{Code: "PT", Count: 300},
				},
			},
			wantStatus:  http.StatusOK,
			wantSuccess: true,
		},
		{
			name:       "not configured",
			mockErr:    monservice.ErrNotConfigured,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "upstream graphql error",
			mockErr:    &monservice.UpstreamError{Details: "zone not found"},
			wantStatus: http.StatusInternalServerError,
			wantErrors: "zone not found",
		},
		{
			name:       "transport failure",
			mockErr:    errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			svc.On("Fetch", mock.Anything).Return(tt.mockSnapshot, tt.mockErr).Once()
			handler := New(newNoopLogger(), svc)

			req := httptest.NewRequest(http.MethodGet, "/monitoring", nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantSuccess, got["success"])
			if tt.wantSuccess {
				data := got["data"].(map[string]any)
				assert.Equal(t, float64(1200), data["requests"])
				assert.Equal(t, "70", data["cacheRatio"])
			}
			if tt.wantErrors != "" {
				assert.Equal(t, tt.wantErrors, got["errors"])
			}
			svc.AssertExpectations(t)
		})
	}
}
