package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/mindmate-client/internal/common"
	"github.com/dmitrijs2005/mindmate-client/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	authenticated atomic.Bool
	calls         atomic.Int32
}

func (f *fakeChecker) CheckAuth(context.Context) bool {
	f.calls.Add(1)
	return f.authenticated.Load()
}

func TestGate_PublicPathsSkipCheck(t *testing.T) {
	checker := &fakeChecker{}
	nav := &fakeNav{}
	g := NewGate(checker, nav, logging.Discard())

	for _, p := range []string{"/login", "/register", "/", "/test-login"} {
		assert.True(t, g.IsPublic(p), p)
		assert.True(t, g.OnPageLoad(context.Background(), p), p)
	}

	assert.Zero(t, checker.calls.Load())
	assert.Empty(t, nav.visited())
}

func TestGate_MatchIsExact(t *testing.T) {
	g := NewGate(&fakeChecker{}, &fakeNav{}, logging.Discard())

	for _, p := range []string{"/login/", "/home", "/register?x=1", "", "/test"} {
		assert.False(t, g.IsPublic(p), p)
	}
}

func TestGate_ProtectedUnauthenticatedRedirects(t *testing.T) {
	checker := &fakeChecker{}
	nav := &fakeNav{}
	g := NewGate(checker, nav, logging.Discard())

	assert.False(t, g.OnPageLoad(context.Background(), "/chat"))
	assert.Equal(t, int32(1), checker.calls.Load())
	assert.Equal(t, []string{common.LoginPath}, nav.visited())
}

func TestGate_ProtectedAuthenticatedStays(t *testing.T) {
	checker := &fakeChecker{}
	checker.authenticated.Store(true)
	nav := &fakeNav{}
	g := NewGate(checker, nav, logging.Discard())

	assert.True(t, g.OnPageLoad(context.Background(), "/profile"))
	assert.Equal(t, int32(1), checker.calls.Load())
	assert.Empty(t, nav.visited())
}

func TestGate_EndToEndAgainstAPI(t *testing.T) {
	e := newEnv(t)
	g := NewGate(e.svc, e.nav, logging.Discard())
	ctx := context.Background()

	assert.True(t, g.OnPageLoad(ctx, "/"))
	assert.Zero(t, e.api.Hits(common.EndpointAuthCheck))

	assert.False(t, g.OnPageLoad(ctx, "/calendar"))
	assert.Equal(t, 1, e.api.Hits(common.EndpointAuthCheck))
	assert.Equal(t, []string{common.LoginPath}, e.nav.visited())

	e.loginAs(t, "alice")
	assert.True(t, g.OnPageLoad(ctx, "/calendar"))
	assert.Len(t, e.nav.visited(), 1)
}

func TestGate_WatchDisabled(t *testing.T) {
	g := NewGate(&fakeChecker{}, &fakeNav{}, logging.Discard())

	done := make(chan struct{})
	go func() {
		g.Watch(context.Background(), 0, func() string { return "/home" })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Watch with zero interval must return immediately")
	}
}

func TestGate_WatchRedirectsAndStops(t *testing.T) {
	checker := &fakeChecker{}
	nav := &fakeNav{}
	g := NewGate(checker, nav, logging.Discard())

	var path atomic.Value
	path.Store("/home")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		g.Watch(ctx, 10*time.Millisecond, func() string { return path.Load().(string) })
		close(done)
	}()

	require.Eventually(t, func() bool { return len(nav.visited()) > 0 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, common.LoginPath, nav.visited()[0])

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Watch did not stop after cancel")
	}
}

func TestGate_WatchSkipsPublicPage(t *testing.T) {
	checker := &fakeChecker{}
	g := NewGate(checker, &fakeNav{}, logging.Discard())

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	g.Watch(ctx, 5*time.Millisecond, func() string { return common.LoginPath })
	assert.Zero(t, checker.calls.Load())
}
