package gcloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Masterminds/semver/v3"
)

// DefaultManifestURL is the SDK component manifest of the rapid release channel.
const DefaultManifestURL = "https://dl.google.com/dl/cloudsdk/channels/rapid/components-2.json"

const defaultHTTPTimeout = 30 * time.Second

// manifest is the subset of components-2.json needed to find the release.
type manifest struct {
	Version string `json:"version"`
}

// HTTPReleaseSource reads the newest SDK version from the release manifest.
type HTTPReleaseSource struct {
	URL    string
	Client *http.Client
}

// NewHTTPReleaseSource returns a source reading DefaultManifestURL.
func NewHTTPReleaseSource() *HTTPReleaseSource {
	return &HTTPReleaseSource{
		URL:    DefaultManifestURL,
		Client: &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// Latest returns the version of the newest SDK release.
func (s *HTTPReleaseSource) Latest(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create release manifest request: %w", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch release manifest: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("failed to fetch release manifest: unexpected status %s", resp.Status)
	}

	var m manifest
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return "", fmt.Errorf("failed to decode release manifest: %w", err)
	}
	if m.Version == "" {
		return "", errors.New("release manifest does not contain a version")
	}
	if _, err := semver.StrictNewVersion(m.Version); err != nil {
		return "", fmt.Errorf("release manifest contains invalid version %q: %w", m.Version, err)
	}

	return m.Version, nil
}
