// Package version compares the running build with the latest published
// release.
package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// ReleasesURL is the GitHub endpoint for the latest hcwatch release.
	ReleasesURL = "https://api.github.com/repos/Elpulgo/hcwatch/releases/latest"
	httpTimeout = 5 * time.Second
)

// Release describes how the running build relates to the latest release.
type Release struct {
	Current         string
	Latest          string
	URL             string
	UpdateAvailable bool
}

// Checker looks up the latest release.
type Checker struct {
	current    string
	url        string
	httpClient *http.Client
}

// Option configures a Checker.
type Option func(*Checker)

// WithURL points the checker at another releases endpoint.
func WithURL(url string) Option {
	return func(c *Checker) {
		c.url = url
	}
}

// NewChecker returns a checker for the given build version.
func NewChecker(current string, opts ...Option) *Checker {
	c := &Checker{
		current:    current,
		url:        ReleasesURL,
		httpClient: &http.Client{Timeout: httpTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type githubRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Check fetches the latest release. Development builds are never compared
// and return without a request.
func (c *Checker) Check(ctx context.Context) (*Release, error) {
	rel := &Release{Current: c.current}
	if IsDev(c.current) {
		return rel, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to check for updates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("release lookup returned status %d", resp.StatusCode)
	}

	var latest githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&latest); err != nil {
		return nil, fmt.Errorf("failed to parse release response: %w", err)
	}

	rel.Latest = latest.TagName
	rel.URL = latest.HTMLURL
	rel.UpdateAvailable = isNewer(c.current, latest.TagName)
	return rel, nil
}

// IsDev reports whether v is an unreleased build.
func IsDev(v string) bool {
	return v == "" || v == "dev" || parseSemver(v) == nil
}

func isNewer(current, latest string) bool {
	cur, lat := parseSemver(current), parseSemver(latest)
	if cur == nil || lat == nil {
		return false
	}

	for i := range cur {
		if lat[i] != cur[i] {
			return lat[i] > cur[i]
		}
	}
	return false
}

// parseSemver returns major, minor and patch, or nil.
func parseSemver(v string) []int {
	parts := strings.SplitN(strings.TrimPrefix(v, "v"), ".", 3)
	if len(parts) != 3 {
		return nil
	}

	out := make([]int, 3)
	for i, p := range parts {
		// 1.2.3-rc1
		p, _, _ = strings.Cut(p, "-")
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil
		}
		out[i] = n
	}
	return out
}
