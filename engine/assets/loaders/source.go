package loaders

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/objview/engine/core"
)

// Source fetches the raw text of an asset.
type Source interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// TransportError reports that the text of an asset could not be obtained.
// It matches core.ErrTransport with errors.Is.
type TransportError struct {
	Location string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("resource: could not fetch '%s': %v", e.Location, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{core.ErrTransport, e.Err}
}

type resourceSource struct {
	basePath string
	client   *http.Client
}

// NewSource returns a Source reading local paths relative to
// cfg.AssetBasePath and http/https URLs through a client bounded by
// cfg.FetchTimeout.
func NewSource(cfg core.Config) Source {
	return &resourceSource{
		basePath: cfg.AssetBasePath,
		client:   &http.Client{Timeout: cfg.FetchTimeout.Duration},
	}
}

func (s *resourceSource) Fetch(ctx context.Context, location string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch scheme := schemeOf(location); scheme {
	case "":
		// plain paths are never URL-decoded, '#', '?' and '%' are part of the name
		data, err = s.readFile(location)
	case "file":
		var u *url.URL
		if u, err = url.Parse(location); err == nil {
			data, err = s.readFile(u.Path)
		}
	case "http", "https":
		data, err = s.get(ctx, location)
	default:
		err = fmt.Errorf("unsupported scheme '%s'", scheme)
	}
	if err != nil {
		return nil, &TransportError{Location: location, Err: err}
	}
	return data, nil
}

// schemeOf returns the lower-cased scheme of location when it is written as
// "file:..." or "<scheme>://...", and "" for anything else.
func schemeOf(location string) string {
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "file:") {
		return "file"
	}
	scheme, _, found := strings.Cut(lower, "://")
	if !found || scheme == "" || strings.ContainsAny(scheme, `/\`) {
		return ""
	}
	return scheme
}

func (s *resourceSource) readFile(path string) ([]byte, error) {
	path = filepath.FromSlash(path)
	if !filepath.IsAbs(path) && s.basePath != "" {
		path = filepath.Join(s.basePath, path)
	}
	return os.ReadFile(filepath.Clean(path))
}

func (s *resourceSource) get(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
