package store

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/me/fleetgate/pkg/model"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := NewSQLiteStore(":memory:", logger)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return st
}

func testSession(id string) *model.Session {
	now := time.Now().Truncate(time.Second).UTC()
	avatar := "https://cdn.example.com/ada.png"
	return &model.Session{
		ID:               id,
		UserID:           42,
		Name:             "Ada Admin",
		Email:            "admin@example.com",
		PhoneNumber:      "+1000",
		AvatarURL:        &avatar,
		Role:             model.RoleAdmin,
		ProfileCreatedAt: now.Add(-90 * 24 * time.Hour),
		AccessToken:      "T1",
		RefreshToken:     "R1",
		ExpiresAt:        now.Add(15 * time.Minute),
		CreatedAt:        now,
		SessionExpiresAt: now.Add(30 * 24 * time.Hour),
	}
}

func TestSQLiteStore_CreateAndGet(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	sess := testSession("sess_1")
	if err := st.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	got, err := st.GetSession(ctx, "sess_1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got == nil {
		t.Fatal("expected session, got nil")
	}
	if got.UserID != 42 || got.Email != "admin@example.com" || got.Role != model.RoleAdmin {
		t.Errorf("session = %+v", got)
	}
	if got.AccessToken != "T1" || got.RefreshToken != "R1" {
		t.Errorf("tokens = %q/%q", got.AccessToken, got.RefreshToken)
	}
	if got.AvatarURL == nil || *got.AvatarURL != *sess.AvatarURL {
		t.Errorf("AvatarURL = %v", got.AvatarURL)
	}
	if !got.ExpiresAt.Equal(sess.ExpiresAt) {
		t.Errorf("ExpiresAt = %v, want %v", got.ExpiresAt, sess.ExpiresAt)
	}
}

func TestSQLiteStore_NullAvatar(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	sess := testSession("sess_null")
	sess.AvatarURL = nil
	if err := st.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	got, err := st.GetSession(ctx, "sess_null")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.AvatarURL != nil {
		t.Errorf("AvatarURL = %v, want nil", got.AvatarURL)
	}
}

func TestSQLiteStore_GetSession_NotFound(t *testing.T) {
	st := setupTestStore(t)

	got, err := st.GetSession(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil session, got %+v", got)
	}
}

func TestSQLiteStore_UpdateSession(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	sess := testSession("sess_upd")
	if err := st.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	sess.AccessToken = "T2"
	sess.ExpiresAt = sess.ExpiresAt.Add(15 * time.Minute)
	if err := st.UpdateSession(ctx, sess); err != nil {
		t.Fatalf("UpdateSession: %v", err)
	}

	got, err := st.GetSession(ctx, "sess_upd")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.AccessToken != "T2" {
		t.Errorf("AccessToken = %q, want T2", got.AccessToken)
	}
	if got.RefreshToken != "R1" {
		t.Errorf("RefreshToken = %q, want R1 (must not change)", got.RefreshToken)
	}
	if !got.ExpiresAt.Equal(sess.ExpiresAt) {
		t.Errorf("ExpiresAt = %v, want %v", got.ExpiresAt, sess.ExpiresAt)
	}
}

func TestSQLiteStore_UpdateSession_NotFound(t *testing.T) {
	st := setupTestStore(t)

	sess := testSession("sess_missing")
	if err := st.UpdateSession(context.Background(), sess); err == nil {
		t.Error("expected error updating a missing session")
	}
}

func TestSQLiteStore_DeleteSession(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	sess := testSession("sess_del")
	if err := st.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if err := st.DeleteSession(ctx, "sess_del"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}

	got, err := st.GetSession(ctx, "sess_del")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got != nil {
		t.Error("expected nil session after deletion")
	}
}

func TestSQLiteStore_DeleteExpiredSessions(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	live := testSession("sess_live")
	if err := st.CreateSession(ctx, live); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	dead := testSession("sess_dead")
	dead.SessionExpiresAt = time.Now().Add(-time.Hour)
	if err := st.CreateSession(ctx, dead); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	n, err := st.DeleteExpiredSessions(ctx)
	if err != nil {
		t.Fatalf("DeleteExpiredSessions: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}

	if got, _ := st.GetSession(ctx, "sess_live"); got == nil {
		t.Error("live session should survive cleanup")
	}
	if got, _ := st.GetSession(ctx, "sess_dead"); got != nil {
		t.Error("ceiling-expired session should be removed")
	}
}
