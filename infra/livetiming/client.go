// Package livetiming implements the history.Provider interface against an
// HTTP timing API. Raw race payloads are cached on disk so repeated
// planning runs for nearby targets stay cheap.
package livetiming

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/pitwall/pitwall/core/history"
	"github.com/pitwall/pitwall/core/logger"
)

// Client fetches season schedules and race sessions from the timing API.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *payloadCache
	log     logger.Logger
}

// New creates a Client from configuration.
func New(cfg Config, log logger.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		cache:   newPayloadCache(cfg.CacheDir),
		log:     log,
	}, nil
}

var _ history.Provider = (*Client)(nil)

// Schedule returns the season's events ordered by round, excluding testing.
func (c *Client) Schedule(ctx context.Context, year int) ([]history.Event, error) {
	data, err := c.fetch(ctx, fmt.Sprintf("%s/v1/seasons/%d/schedule", c.baseURL, year))
	if err != nil {
		return nil, fmt.Errorf("schedule %d: %w", year, err)
	}
	var events []history.Event
	gjson.GetBytes(data, "events").ForEach(func(_, ev gjson.Result) bool {
		events = append(events, history.Event{
			Round: int(ev.Get("round").Int()),
			Name:  ev.Get("name").String(),
		})
		return true
	})
	if len(events) == 0 {
		return nil, fmt.Errorf("schedule %d: empty", year)
	}
	return events, nil
}

// ResolveEvent matches a grand-prix query against the season schedule,
// first exactly, then as a case-insensitive fragment.
func (c *Client) ResolveEvent(ctx context.Context, year int, grandPrix string) (history.Event, error) {
	events, err := c.Schedule(ctx, year)
	if err != nil {
		return history.Event{}, err
	}
	query := strings.ToLower(strings.TrimSpace(grandPrix))
	for _, ev := range events {
		if strings.ToLower(ev.Name) == query {
			return ev, nil
		}
	}
	for _, ev := range events {
		if strings.Contains(strings.ToLower(ev.Name), query) {
			return ev, nil
		}
	}
	return history.Event{}, fmt.Errorf("no event matching %q in %d", grandPrix, year)
}

// RaceSession loads the race session of the given event, serving the local
// payload cache when possible.
func (c *Client) RaceSession(ctx context.Context, year int, eventName string) (*history.Session, error) {
	key := cacheKey(year, eventName)
	data, hit := c.cache.get(key)
	if hit {
		c.log.Debugf("cache hit %s", key)
	} else {
		var err error
		data, err = c.fetch(ctx, fmt.Sprintf("%s/v1/seasons/%d/events/%s/race", c.baseURL, year, url.PathEscape(eventName)))
		if err != nil {
			return nil, fmt.Errorf("race session %d %s: %w", year, eventName, err)
		}
		if err := c.cache.put(key, data); err != nil {
			c.log.Warnf("cache write %s: %v", key, err)
		}
	}
	return parseSession(year, data)
}

func (c *Client) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func parseSession(year int, data []byte) (*history.Session, error) {
	root := gjson.ParseBytes(data)
	event := root.Get("event")
	if !event.Exists() {
		return nil, fmt.Errorf("payload missing event metadata")
	}
	sess := &history.Session{
		Year: year,
		Event: history.Event{
			Round: int(event.Get("round").Int()),
			Name:  event.Get("name").String(),
		},
	}

	root.Get("laps").ForEach(func(_, lap gjson.Result) bool {
		sess.Laps = append(sess.Laps, history.RawLap{
			Driver:         lap.Get("driver").String(),
			Team:           lap.Get("team").String(),
			LapNumber:      int(lap.Get("lap_number").Int()),
			Stint:          int(lap.Get("stint").Int()),
			Compound:       lap.Get("compound").String(),
			TyreLife:       floatOrNaN(lap.Get("tyre_life")),
			LapTimeSeconds: floatOrNaN(lap.Get("lap_time_sec")),
			Accurate:       lap.Get("accurate").Bool(),
			TrackStatus:    lap.Get("track_status").String(),
			SessionTime:    lap.Get("session_time").Float(),
		})
		return true
	})
	root.Get("weather").ForEach(func(_, w gjson.Result) bool {
		sess.Weather = append(sess.Weather, history.WeatherSample{
			SessionTime: w.Get("session_time").Float(),
			AirTemp:     w.Get("air_temp").Float(),
			TrackTemp:   w.Get("track_temp").Float(),
			Humidity:    w.Get("humidity").Float(),
			WindSpeed:   w.Get("wind_speed").Float(),
			Rainfall:    w.Get("rainfall").Bool(),
		})
		return true
	})
	return sess, nil
}

// floatOrNaN distinguishes absent or null numeric fields from real zeros.
func floatOrNaN(r gjson.Result) float64 {
	if !r.Exists() || r.Type == gjson.Null {
		return math.NaN()
	}
	return r.Float()
}
