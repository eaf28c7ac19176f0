package session

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

func newTestSession(t *testing.T) (*Session, *FileStore) {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	return New(store, zerolog.Nop()), store
}

func TestFileStore_Roundtrip(t *testing.T) {
	_, store := newTestSession(t)

	if tok, err := store.Get(); err != nil || tok != "" {
		t.Fatalf("Get() before Set = (%q, %v), want empty", tok, err)
	}
	if err := store.Set("tok-123"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if tok, err := store.Get(); err != nil || tok != "tok-123" {
		t.Fatalf("Get() = (%q, %v), want tok-123", tok, err)
	}
	if err := store.Remove(); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if tok, err := store.Get(); err != nil || tok != "" {
		t.Fatalf("Get() after Remove = (%q, %v), want empty", tok, err)
	}
	// removing twice is fine
	if err := store.Remove(); err != nil {
		t.Fatalf("second Remove() error = %v", err)
	}
}

func TestSession_LoadRestoresToken(t *testing.T) {
	sess, store := newTestSession(t)
	if err := store.Set("persisted"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	sess.Load()

	tok, ok := sess.Token()
	if !ok || tok != "persisted" {
		t.Errorf("Token() = (%q, %v), want persisted", tok, ok)
	}
}

func TestSession_LogoutClearsStore(t *testing.T) {
	sess, store := newTestSession(t)
	sess.SetToken("tok")

	sess.Logout()

	if _, ok := sess.Token(); ok {
		t.Error("Token() held after Logout")
	}
	if tok, _ := store.Get(); tok != "" {
		t.Errorf("store still holds %q after Logout", tok)
	}
}

func TestSession_ExpireFiresHookOnce(t *testing.T) {
	sess, store := newTestSession(t)
	sess.SetToken("stale")

	calls := 0
	sess.OnExpired = func() { calls++ }

	sess.Expire()
	sess.Expire() // a second 401 on the already-cleared session

	if calls != 1 {
		t.Errorf("OnExpired fired %d times, want 1", calls)
	}
	if _, ok := sess.Token(); ok {
		t.Error("Token() still held after Expire")
	}
	if tok, _ := store.Get(); tok != "" {
		t.Errorf("store still holds %q after Expire", tok)
	}
}

func TestSession_ExpireWithoutTokenIsNoop(t *testing.T) {
	sess, _ := newTestSession(t)
	calls := 0
	sess.OnExpired = func() { calls++ }

	sess.Expire()

	if calls != 0 {
		t.Errorf("OnExpired fired %d times on an empty session, want 0", calls)
	}
}

func TestSession_ConcurrentExpire(t *testing.T) {
	sess, _ := newTestSession(t)
	sess.SetToken("stale")

	var mu sync.Mutex
	calls := 0
	sess.OnExpired = func() {
		mu.Lock()
		calls++
		mu.Unlock()
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess.Expire()
		}()
	}
	wg.Wait()

	if calls != 1 {
		t.Errorf("OnExpired fired %d times under concurrent 401s, want 1", calls)
	}
}
