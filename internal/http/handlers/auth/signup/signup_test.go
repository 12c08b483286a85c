package signup

import (
	"bytes"
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

	"github.com/asppibra-dao/core-api/internal/models"
	authservice "github.com/asppibra-dao/core-api/internal/services/auth"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) SignUp(ctx context.Context, email, password, firstName, lastName string) (string, *models.PublicUser, error) {
	args := m.Called(ctx, email, password, firstName, lastName)
	u, _ := args.Get(1).(*models.PublicUser)
	return args.String(0), u, args.Error(2)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		mockSetup   func(svc *ServiceMock)
		wantStatus  int
		wantSuccess bool
	}{
		{
			name: "success",
			body: `{"email":"a@b.com","password":"longenough1","firstName":"A","lastName":"B"}`,
			mockSetup: func(svc *ServiceMock) {
				svc.On("SignUp", mock.Anything, "a@b.com", "longenough1", "A", "B").
					Return("token123", &models.PublicUser{
						ID:        "uid-1",
						FirstName: "A",
						LastName:  "B",
						Email:     "a@b.com",
						Role:      "citizen",
					}, nil).Once()
			},
			wantStatus:  http.StatusOK,
			wantSuccess: true,
		},
		{
			name:       "malformed json",
			body:       `{"email":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid email",
			body:       `{"email":"not-an-email","password":"longenough1","firstName":"A","lastName":"B"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "short password",
			body:       `{"email":"a@b.com","password":"short","firstName":"A","lastName":"B"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "email taken",
			body: `{"email":"a@b.com","password":"longenough1","firstName":"A","lastName":"B"}`,
			mockSetup: func(svc *ServiceMock) {
				svc.On("SignUp", mock.Anything, "a@b.com", "longenough1", "A", "B").
					Return("", nil, authservice.ErrEmailTaken).Once()
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "service failure",
			body: `{"email":"a@b.com","password":"longenough1","firstName":"A","lastName":"B"}`,
			mockSetup: func(svc *ServiceMock) {
				svc.On("SignUp", mock.Anything, "a@b.com", "longenough1", "A", "B").
					Return("", nil, errors.New("db down")).Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.mockSetup != nil {
				tt.mockSetup(svc)
			}
			handler := New(newNoopLogger(), svc)

			req := httptest.NewRequest(http.MethodPost, "/auth/sign-up", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantSuccess, got["success"])
			if tt.wantSuccess {
				data := got["data"].(map[string]any)
				assert.Equal(t, "token123", data["accessToken"])
				user := data["user"].(map[string]any)
				assert.Equal(t, "a@b.com", user["email"])
				assert.NotContains(t, user, "passwordHash")
			}
			svc.AssertExpectations(t)
		})
	}
}
