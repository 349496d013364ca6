package rentapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/me/fleetgate/pkg/model"
)

func TestClient_BearerHeader(t *testing.T) {
	var gotAuth string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{
			"id": 42, "email": "admin@example.com", "role": "ADMIN",
		})
	})

	_, err := c.GetUser(context.Background(), "my-access-token", 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer my-access-token" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer my-access-token")
	}
}

func TestClient_HTTPError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.GetUser(context.Background(), "tok", 42)
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("error = %v, want *HTTPError", err)
	}
	if httpErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", httpErr.StatusCode)
	}
}

func TestClient_ListQueryPassthrough(t *testing.T) {
	var gotQuery string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(map[string]any{"items": []any{}, "total": 0})
	})

	_, _, err := c.ListVehicles(context.Background(), "tok", model.ListOptions{Limit: 25, Offset: 50, Search: "tesla"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "limit=25&offset=50&search=tesla"
	if gotQuery != want {
		t.Errorf("query = %q, want %q", gotQuery, want)
	}
}

func TestDecodeList_MissingItems(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"total": 3})
	})

	_, _, err := c.ListBookings(context.Background(), "tok", model.DefaultListOptions())
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("error = %v, want *DecodeError", err)
	}
	if decodeErr.Field != "items" {
		t.Errorf("Field = %q, want %q", decodeErr.Field, "items")
	}
}

func TestGetUser_MissingEmail(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": 42, "role": "ADMIN"})
	})

	_, err := c.GetUser(context.Background(), "tok", 42)
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("error = %v, want *DecodeError", err)
	}
	if decodeErr.Field != "email" {
		t.Errorf("Field = %q, want %q", decodeErr.Field, "email")
	}
}
