package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/mindmate-client/internal/common"
	"github.com/dmitrijs2005/mindmate-client/internal/logging"
)

// AuthChecker reports whether the current session is authenticated.
type AuthChecker interface {
	CheckAuth(ctx context.Context) bool
}

// Gate enforces authentication on the client side when a page is opened.
// Public pages are shown to everyone; any other page needs a positive status
// check, otherwise the user is sent to the login page.
type Gate struct {
	checker   AuthChecker
	navigator Navigator
	public    map[string]struct{}
	logger    logging.Logger
}

func NewGate(checker AuthChecker, nav Navigator, logger logging.Logger) *Gate {
	public := make(map[string]struct{}, len(common.PublicPaths))
	for _, p := range common.PublicPaths {
		public[p] = struct{}{}
	}

	return &Gate{
		checker:   checker,
		navigator: nav,
		public:    public,
		logger:    logger.With("module", "gate"),
	}
}

// IsPublic reports whether path is exempt from the check. Matching is exact.
func (g *Gate) IsPublic(path string) bool {
	_, ok := g.public[path]
	return ok
}

// OnPageLoad runs when path has been opened. It returns true when the page
// may stay; on false the navigator has already been sent to the login page.
func (g *Gate) OnPageLoad(ctx context.Context, path string) bool {
	if g.IsPublic(path) {
		return true
	}

	if g.checker.CheckAuth(ctx) {
		return true
	}

	g.logger.Info(ctx, "not authenticated, redirecting", "path", path, "to", common.LoginPath)
	g.navigator.Navigate(ctx, common.LoginPath)
	return false
}

// Watch re-runs the gate for the page returned by current every interval,
// until ctx is done. A non-positive interval disables watching.
func (g *Gate) Watch(ctx context.Context, interval time.Duration, current func() string) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			path := current()
			if !g.IsPublic(path) {
				g.OnPageLoad(ctx, path)
			}
		case <-ctx.Done():
			return
		}
	}
}
