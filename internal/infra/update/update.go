// Where: internal/infra/update/update.go
// What: Release check against the Go module proxy.
// Why: Stop users from scaffolding with an outdated generator.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/poruru/apigen/internal/infra/config"
	"golang.org/x/mod/module"
)

const (
	DefaultProxyURL = "https://proxy.golang.org"
	DefaultTTL      = 5 * time.Minute
	DefaultTimeout  = 3 * time.Second
)

// Store persists the last lookup between runs.
type Store interface {
	LoadUpdateCheck() (config.UpdateCheckState, error)
	SaveUpdateCheck(state config.UpdateCheckState) error
}

// Result describes the outcome of a check.
type Result struct {
	Current   string
	Latest    string
	Available bool
}

// Checker looks up the latest published version of Module.
type Checker struct {
	Client   *http.Client
	ProxyURL string
	Module   string
	Store    Store
	TTL      time.Duration
	Timeout  time.Duration
	Now      func() time.Time
}

type latestInfo struct {
	Version string    `json:"Version"`
	Time    time.Time `json:"Time"`
}

// Check compares current against the latest release. Development builds
// (current is not a semantic version) never report an update and never hit
// the network.
func (c Checker) Check(ctx context.Context, current string) (Result, error) {
	result := Result{Current: current}
	currentVersion, err := semver.NewVersion(strings.TrimSpace(current))
	if err != nil {
		return result, nil
	}

	latest, err := c.latest(ctx)
	if err != nil {
		return result, err
	}
	if latest == "" {
		return result, nil
	}
	result.Latest = latest

	latestVersion, err := semver.NewVersion(latest)
	if err != nil {
		return result, fmt.Errorf("parse latest version %q: %w", latest, err)
	}
	result.Available = latestVersion.GreaterThan(currentVersion)
	return result, nil
}

// latest returns the newest known release. A lookup that failed less than
// TTL ago is not retried; the last known version (possibly empty) is used.
func (c Checker) latest(ctx context.Context) (string, error) {
	now := c.now()
	var cached config.UpdateCheckState
	if c.Store != nil {
		if state, err := c.Store.LoadUpdateCheck(); err == nil {
			cached = state
			if !state.LastChecked.IsZero() && now.Sub(state.LastChecked) < c.ttl() {
				return state.LatestVersion, nil
			}
		}
	}

	latest, err := c.fetch(ctx)
	if err != nil {
		if c.Store != nil {
			_ = c.Store.SaveUpdateCheck(config.UpdateCheckState{LastChecked: now, LatestVersion: cached.LatestVersion})
		}
		return "", err
	}
	if c.Store != nil {
		_ = c.Store.SaveUpdateCheck(config.UpdateCheckState{LastChecked: now, LatestVersion: latest})
	}
	return latest, nil
}

func (c Checker) fetch(ctx context.Context) (string, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url, err := c.latestURL()
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build update request: %w", err)
	}
	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("query %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("query %s: unexpected status %s", url, resp.Status)
	}

	var info latestInfo
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&info); err != nil {
		return "", fmt.Errorf("decode %s: %w", url, err)
	}
	if strings.TrimSpace(info.Version) == "" {
		return "", fmt.Errorf("query %s: empty version", url)
	}
	return info.Version, nil
}

func (c Checker) latestURL() (string, error) {
	base := strings.TrimRight(c.ProxyURL, "/")
	if base == "" {
		base = DefaultProxyURL
	}
	escaped, err := module.EscapePath(c.Module)
	if err != nil {
		return "", fmt.Errorf("escape module path: %w", err)
	}
	return base + "/" + escaped + "/@latest", nil
}

func (c Checker) ttl() time.Duration {
	if c.TTL <= 0 {
		return DefaultTTL
	}
	return c.TTL
}

func (c Checker) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
