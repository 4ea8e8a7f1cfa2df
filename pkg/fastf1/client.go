package fastf1

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
)

const requestTimeout = 60 * time.Second

// Provider hands out session handles. The HTTP implementation below is the
// real one; tests substitute their own.
type Provider interface {
	GetSession(ctx context.Context, year int, event, kind string) (*Session, error)
}

// HTTPProvider fetches session tables from a FastF1 gateway service. The
// gateway does all acquisition and parsing; this client only moves JSON.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
	cache   *Cache
}

// NewHTTPProvider creates a provider against the given gateway base URL.
// cache may be nil to fetch uncached.
func NewHTTPProvider(baseURL string, cache *Cache) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
		cache:   cache,
	}
}

type sessionMeta struct {
	Year  int    `json:"year"`
	Event string `json:"event"`
	Kind  string `json:"kind"`
}

func (p *HTTPProvider) GetSession(ctx context.Context, year int, event, kind string) (*Session, error) {
	var meta sessionMeta
	err := p.getJSON(ctx, p.sessionURL(year, event, kind, ""), &meta)
	if err != nil {
		return nil, errors.Wrapf(err, "session %d %q %q not available", year, event, kind)
	}

	return &Session{
		Year:   year,
		Event:  event,
		Kind:   kind,
		loader: p.load,
	}, nil
}

func (p *HTTPProvider) load(ctx context.Context, s *Session) error {
	err := p.getJSON(ctx, p.sessionURL(s.Year, s.Event, s.Kind, "results"), &s.Results)
	if err != nil {
		return errors.Wrap(err, "loading results")
	}
	err = p.getJSON(ctx, p.sessionURL(s.Year, s.Event, s.Kind, "laps"), &s.Laps)
	if err != nil {
		return errors.Wrap(err, "loading laps")
	}

	// Not every session carries these feeds. Leave the table nil and let the
	// extraction degrade per category.
	err = p.getJSON(ctx, p.sessionURL(s.Year, s.Event, s.Kind, "track_status"), &s.TrackStatus)
	if err != nil {
		log.Printf("No track status for %d %s %s: %s", s.Year, s.Event, s.Kind, err.Error())
		s.TrackStatus = nil
	}
	err = p.getJSON(ctx, p.sessionURL(s.Year, s.Event, s.Kind, "race_control"), &s.RaceControl)
	if err != nil {
		log.Printf("No race control messages for %d %s %s: %s", s.Year, s.Event, s.Kind, err.Error())
		s.RaceControl = nil
	}

	return nil
}

func (p *HTTPProvider) sessionURL(year int, event, kind, table string) string {
	u := fmt.Sprintf("%s/api/session/%d/%s/%s", p.baseURL, year, url.PathEscape(event), url.PathEscape(kind))
	if table != "" {
		u += "/" + table
	}
	return u
}

func (p *HTTPProvider) getJSON(ctx context.Context, url string, v interface{}) error {
	if p.cache != nil {
		if body, ok := p.cache.Get(url); ok {
			return json.Unmarshal(body, v)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	response, err := p.client.Do(req)
	if err != nil {
		log.Printf("Error http-getting %s: %s\n", url, err)
		return err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("error getting %s: %s", url, response.Status)
	}

	if p.cache == nil {
		return json.NewDecoder(response.Body).Decode(v)
	}

	var body json.RawMessage
	err = json.NewDecoder(response.Body).Decode(&body)
	if err != nil {
		log.Printf("Error decoding %s: %s\n", url, err)
		return err
	}
	if err := p.cache.Put(url, body); err != nil {
		log.Printf("Error caching %s: %s\n", url, err)
	}
	return json.Unmarshal(body, v)
}
