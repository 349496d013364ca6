package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/me/fleetgate/internal/config"
	"github.com/me/fleetgate/internal/server"
	"github.com/me/fleetgate/internal/session"
	"github.com/me/fleetgate/internal/store"
	"github.com/me/fleetgate/pkg/rentapi"
)

// startTestServer starts a gateway backed by a fake rental platform and an
// in-memory SQLite store, returning the gateway URL.
func startTestServer(t *testing.T) string {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "password123" {
			http.Error(w, "bad credentials", http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"token": "T1", "refreshToken": "R1", "userId": 42, "role": "ADMIN",
		})
	})
	mux.HandleFunc("GET /api/admin/users/42", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id": 42, "fullName": "Ada Admin", "email": "admin@example.com",
			"phoneNumber": "+1000", "role": "ADMIN", "createdAt": "2024-01-01T00:00:00Z",
		})
	})
	mux.HandleFunc("GET /api/admin/vehicles", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"id": 1, "make": "Tesla", "model": "Model 3", "year": 2023, "licensePlate": "EV-001", "dailyRate": 120, "status": "AVAILABLE"},
			},
			"total": 1,
		})
	})
	upstream := httptest.NewServer(mux)
	t.Cleanup(upstream.Close)

	srvLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := store.NewSQLiteStore(":memory:", srvLogger)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	api := rentapi.NewClient(rentapi.DefaultConfig().WithBaseURL(upstream.URL), srvLogger)
	sessions := session.NewManager(st, api, srvLogger, nil)

	cfg := config.Default()
	cfg.APIBaseURL = upstream.URL
	cfg.SessionSecret = "test-secret"

	ts := httptest.NewServer(server.New(cfg, sessions, api, srvLogger).Handler())
	t.Cleanup(ts.Close)
	return ts.URL
}

// runCLI executes the CLI with stdout captured.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	root.SetArgs(args)

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := root.Execute()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String(), err
}

func TestLoginCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	url := startTestServer(t)

	output, err := runCLI(t, "--server", url, "login",
		"--email", "admin@example.com", "--password", "password123")
	if err != nil {
		t.Fatalf("login error: %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, "Logged in as Ada Admin (ADMIN)") {
		t.Errorf("unexpected output: %s", output)
	}

	home, _ := os.UserHomeDir()
	if _, err := os.Stat(filepath.Join(home, ".fleetgate", credentialsFileName)); err != nil {
		t.Errorf("credentials file not written: %v", err)
	}
}

func TestLoginCommand_BadPassword(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	url := startTestServer(t)

	_, err := runCLI(t, "--server", url, "login",
		"--email", "admin@example.com", "--password", "wrongpassword")
	if err == nil {
		t.Fatal("expected login to fail")
	}
	if LoadSession() != "" {
		t.Error("credentials were stored despite failed login")
	}
}

func TestWhoamiCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	url := startTestServer(t)

	if _, err := runCLI(t, "--server", url, "login",
		"--email", "admin@example.com", "--password", "password123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	output, err := runCLI(t, "--server", url, "whoami")
	if err != nil {
		t.Fatalf("whoami error: %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, "admin@example.com") || !strings.Contains(output, "ADMIN") {
		t.Errorf("unexpected output: %s", output)
	}
}

func TestWhoamiCommand_NotLoggedIn(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	url := startTestServer(t)

	_, err := runCLI(t, "--server", url, "whoami")
	if err == nil {
		t.Fatal("expected whoami to fail without a session")
	}
}

func TestVehiclesCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	url := startTestServer(t)

	if _, err := runCLI(t, "--server", url, "login",
		"--email", "admin@example.com", "--password", "password123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	output, err := runCLI(t, "--server", url, "vehicles")
	if err != nil {
		t.Fatalf("vehicles error: %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, "Tesla Model 3") || !strings.Contains(output, "EV-001") {
		t.Errorf("unexpected output: %s", output)
	}
}

func TestLogoutCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	url := startTestServer(t)

	if _, err := runCLI(t, "--server", url, "login",
		"--email", "admin@example.com", "--password", "password123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	output, err := runCLI(t, "--server", url, "logout")
	if err != nil {
		t.Fatalf("logout error: %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, "Logged out.") {
		t.Errorf("unexpected output: %s", output)
	}
	if LoadSession() != "" {
		t.Error("session survived logout")
	}
}
