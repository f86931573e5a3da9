package wire

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/ledger"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func testConfig() *utils.Config {
	return &utils.Config{
		JWT: utils.JWTConfig{Secret: "secret"},
		Booking: utils.BookingConfig{
			CancellationCutoff: time.Hour,
			DefaultRuntime:     2 * time.Hour,
			CurrencyMinorUnits: 2,
		},
	}
}

func TestRouter_Guards(t *testing.T) {
	log := zap.NewNop()
	app := Wiring(&repository.Repository{}, ledger.NewRecorder(log, nil), stubPinger{}, nil, testConfig(), log)

	id := uuid.New().String()
	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodPost, "/api/sessions/" + id + "/reservations", http.StatusUnauthorized},
		{http.MethodGet, "/api/user/tickets", http.StatusUnauthorized},
		{http.MethodDelete, "/api/tickets/" + id, http.StatusUnauthorized},
		{http.MethodPost, "/api/admin/sessions", http.StatusUnauthorized},
		{http.MethodGet, "/api/admin/sessions/" + id + "/tickets", http.StatusUnauthorized},
		{http.MethodGet, "/api/admin/activity", http.StatusUnauthorized},
		{http.MethodGet, "/api/sessions/not-a-uuid", http.StatusBadRequest},
		{http.MethodGet, "/api/nowhere", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			app.Router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
				t.Error("global middleware not applied")
			}
		})
	}
}

func TestHealth_DatabaseDown(t *testing.T) {
	log := zap.NewNop()
	app := Wiring(&repository.Repository{}, ledger.NewRecorder(log, nil), stubPinger{err: errors.New("refused")}, nil, testConfig(), log)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
