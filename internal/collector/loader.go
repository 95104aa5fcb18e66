package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"SectorSentinel/internal/logger"
	"SectorSentinel/internal/model"
	"SectorSentinel/internal/store"
)

// ErrAllPathsFailed is returned when neither the primary nor the fallback
// location produced a payload.
var ErrAllPathsFailed = errors.New("all snapshot paths failed")

// Source yields the raw snapshot payload.
type Source interface {
	Load(ctx context.Context) (*model.Payload, error)
	Name() string
}

// HTTPSource probes a namespaced path first, then an un-namespaced fallback.
// Only transport errors and non-200 responses move on to the next path; a
// body that fails to decode ends the probe.
type HTTPSource struct {
	BaseURL string
	Paths   []string
	Client  *http.Client
}

// NewHTTPSource creates a source with optional proxy support. The client has
// no timeout of its own.
func NewHTTPSource(baseURL, primaryPath, fallbackPath, proxyURL string) *HTTPSource {
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Paths:   nonEmpty(primaryPath, fallbackPath),
		Client:  &http.Client{Transport: proxyTransport(proxyURL)},
	}
}

func (s *HTTPSource) Name() string { return "http " + s.BaseURL }

func (s *HTTPSource) Load(ctx context.Context) (*model.Payload, error) {
	return probe(s.Paths, func(path string) (*model.Payload, error) {
		return s.fetch(ctx, path)
	})
}

func (s *HTTPSource) fetch(ctx context.Context, path string) (*model.Payload, error) {
	endpoint := s.BaseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", endpoint, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", endpoint, resp.StatusCode)
	}
	return model.DecodePayload(body)
}

// FileSource reads the snapshot from local files with the same primary then
// fallback rule; a missing or unreadable file moves on.
type FileSource struct {
	Paths []string
}

// NewFileSource creates a file source; fallback may be empty.
func NewFileSource(primary, fallback string) *FileSource {
	return &FileSource{Paths: nonEmpty(primary, fallback)}
}

func (s *FileSource) Name() string { return "file " + strings.Join(s.Paths, ",") }

func (s *FileSource) Load(_ context.Context) (*model.Payload, error) {
	return probe(s.Paths, func(path string) (*model.Payload, error) {
		p, err := store.Load(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return p, nil
	})
}

func probe(paths []string, load func(string) (*model.Payload, error)) (*model.Payload, error) {
	log := logger.Component("loader")
	var errs []error
	for i, path := range paths {
		p, err := load(path)
		if err == nil {
			if i > 0 {
				log.WithField("path", path).Info("snapshot loaded from fallback path")
			}
			return p, nil
		}
		if errors.Is(err, model.ErrMalformedPayload) {
			return nil, err
		}
		log.WithError(err).WithField("path", path).Warn("snapshot path failed")
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, ErrAllPathsFailed
	}
	return nil, fmt.Errorf("%w: %w", ErrAllPathsFailed, errors.Join(errs...))
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
