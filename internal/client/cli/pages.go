package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/fatih/color"
)

// maxBodyPrint caps how much of a response body Get prints.
const maxBodyPrint = 64 << 10

var errBadPath = errors.New("path must start with /")

// Open moves to the page at path, running the page-load gate.
func (a *App) Open(ctx context.Context, path string) error {
	u, err := url.Parse(path)
	if err != nil {
		a.say(color.FgRed, "Invalid path: %v", err)
		return err
	}
	if u.IsAbs() || u.Host != "" || len(u.Path) == 0 || u.Path[0] != '/' {
		a.say(color.FgRed, "Invalid path %q: %v", path, errBadPath)
		return fmt.Errorf("%q: %w", path, errBadPath)
	}

	a.Navigate(ctx, u.Path)
	return nil
}

// Get performs an authenticated GET of path and prints the status and body.
func (a *App) Get(ctx context.Context, path string) error {
	resp, err := a.fetcher.FetchWithAuth(ctx, path, nil)
	if err != nil {
		a.say(color.FgRed, "Request failed: %v", err)
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyPrint))
	if err != nil {
		a.say(color.FgRed, "Reading response failed: %v", err)
		return err
	}

	a.say(statusColor(resp.StatusCode), "%s", resp.Status)
	if len(body) > 0 {
		a.say(color.Reset, "%s", body)
	}
	return nil
}

func statusColor(code int) color.Attribute {
	switch {
	case code >= http.StatusInternalServerError:
		return color.FgRed
	case code >= http.StatusBadRequest:
		return color.FgYellow
	default:
		return color.FgGreen
	}
}
