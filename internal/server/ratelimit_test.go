package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/me/fleetgate/internal/config"
)

func TestIPLimiter_Allow(t *testing.T) {
	l := newIPLimiter(60, 3)

	for i := 0; i < 3; i++ {
		if !l.allow("10.0.0.1") {
			t.Fatalf("request %d within burst was denied", i+1)
		}
	}
	if l.allow("10.0.0.1") {
		t.Error("request beyond burst was allowed")
	}

	// Independent clients get independent budgets.
	if !l.allow("10.0.0.2") {
		t.Error("fresh client was denied")
	}
}

func TestLoginRateLimited(t *testing.T) {
	srv := testServerCfg(t, func(cfg *config.ServerConfig) {
		cfg.LoginRatePerMinute = 1
		cfg.LoginBurst = 2
	})

	body := `{"email":"admin@example.com","password":"wrongpassword"}`
	var last int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(body))
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)
		last = w.Code
	}

	if last != http.StatusTooManyRequests {
		t.Fatalf("third attempt status=%d, want 429", last)
	}
}
