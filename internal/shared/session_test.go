package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestSessionManager(t *testing.T) (*SessionManager, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionManager(client, "test_session", "secret", time.Hour, false), mr
}

func TestSessionPersistsUserAcrossLoads(t *testing.T) {
	sm, _ := newTestSessionManager(t)
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, req)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	sess.SetUser("Pawan Gold", "pawangold@gmail.com")

	rec := httptest.NewRecorder()
	if err := sm.Commit(ctx, rec, req, sess); err != nil {
		t.Fatalf("commit: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("expected session cookie")
	}

	reload := httptest.NewRequest(http.MethodGet, "/", nil)
	reload.AddCookie(cookies[0])
	restored, err := sm.Load(ctx, reload)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !restored.Authenticated() {
		t.Fatalf("reload should restore the authenticated state")
	}
	if restored.UserEmail() != "pawangold@gmail.com" || restored.UserName() != "Pawan Gold" {
		t.Fatalf("unexpected identity: %q %q", restored.UserName(), restored.UserEmail())
	}
}

func TestSessionFlashPopsOnce(t *testing.T) {
	sess := &Session{}
	sess.AddFlash(FlashMessage{Kind: "success", Message: "saved"})

	first := sess.PopFlash()
	if first == nil || first.Message != "saved" {
		t.Fatalf("expected queued flash, got %+v", first)
	}
	if second := sess.PopFlash(); second != nil {
		t.Fatalf("flash must be one-time, got %+v", second)
	}
}

func TestSessionFlashSurvivesRedirect(t *testing.T) {
	sm, _ := newTestSessionManager(t)
	ctx := context.Background()

	// The mutation request queues a flash and commits before redirecting.
	req := httptest.NewRequest(http.MethodPost, "/customers", nil)
	sess, err := sm.Load(ctx, req)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	sess.AddFlash(FlashMessage{Kind: "success", Message: "Customer added"})
	rec := httptest.NewRecorder()
	if err := sm.Commit(ctx, rec, req, sess); err != nil {
		t.Fatalf("commit: %v", err)
	}
	cookie := rec.Result().Cookies()[0]

	// The follow-up page load pops it exactly once.
	followUp := httptest.NewRequest(http.MethodGet, "/customers", nil)
	followUp.AddCookie(cookie)
	restored, err := sm.Load(ctx, followUp)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	flash := restored.PopFlash()
	if flash == nil || flash.Message != "Customer added" {
		t.Fatalf("flash should survive the redirect, got %+v", flash)
	}
	rec2 := httptest.NewRecorder()
	if err := sm.Commit(ctx, rec2, followUp, restored); err != nil {
		t.Fatalf("second commit: %v", err)
	}

	third := httptest.NewRequest(http.MethodGet, "/customers", nil)
	third.AddCookie(cookie)
	again, err := sm.Load(ctx, third)
	if err != nil {
		t.Fatalf("third load: %v", err)
	}
	if leftover := again.PopFlash(); leftover != nil {
		t.Fatalf("flash must not replay, got %+v", leftover)
	}
}

func TestSessionDestroyClearsStoreAndCookie(t *testing.T) {
	sm, mr := newTestSessionManager(t)
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, req)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	sess.SetUser("Pawan Gold", "pawangold@gmail.com")
	rec := httptest.NewRecorder()
	if err := sm.Commit(ctx, rec, req, sess); err != nil {
		t.Fatalf("commit: %v", err)
	}

	sm.Destroy(sess)
	rec2 := httptest.NewRecorder()
	if err := sm.Commit(ctx, rec2, req, sess); err != nil {
		t.Fatalf("destroy commit: %v", err)
	}
	if mr.Exists("session:" + sess.ID) {
		t.Fatalf("destroyed session should be deleted from the store")
	}
	cookies := rec2.Result().Cookies()
	if len(cookies) == 0 || cookies[0].MaxAge != -1 {
		t.Fatalf("destroy should expire the cookie")
	}
}

func TestAuthenticatedNilSafe(t *testing.T) {
	var sess *Session
	if sess.Authenticated() {
		t.Fatalf("nil session must not report as authenticated")
	}
}
