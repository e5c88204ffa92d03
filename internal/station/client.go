package station

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/trucksimfm/companion/internal/model"
)

// Client talks to the station's upstream services: the CMS API for schedules
// and playlist history, and the Shoutcast endpoint for the now-playing text.
// All payloads are treated as untrusted; malformed records degrade instead of
// failing the whole response.
type Client struct {
	apiBaseURL   string // CMS, e.g. https://www.trucksim.fm
	shoutcastURL string // stream server, e.g. https://radio.trucksim.fm:8000
	playlistURL  string // .pls file listing the stream URLs
	http         *http.Client
}

func NewClient(apiBaseURL, shoutcastURL, playlistURL string) *Client {
	return &Client{
		apiBaseURL:   strings.TrimSuffix(apiBaseURL, "/"),
		shoutcastURL: strings.TrimSuffix(shoutcastURL, "/"),
		playlistURL:  playlistURL,
		http:         &http.Client{Timeout: 10 * time.Second},
	}
}

// scheduleRecord mirrors the CMS schedule payload.
type scheduleRecord struct {
	ShowName      string   `json:"show_name"`
	Description   string   `json:"description"`
	StartTime     string   `json:"start_time"`
	EndTime       string   `json:"end_time"`
	Permanent     bool     `json:"permanent"`
	PermEnd       *string  `json:"perm_end"`
	ExcludedDates []string `json:"excluded_dates"`
	User          *struct {
		Username     string `json:"username"`
		ProfilePhoto *struct {
			URL string `json:"url"`
		} `json:"profile_photo"`
	} `json:"users_permissions_user"`
}

// Schedule fetches the full show list. Records whose slot times cannot be
// parsed are dropped; every other anomaly (missing presenter, missing photo,
// bad excluded date) degrades field by field.
func (c *Client) Schedule(ctx context.Context) ([]model.ScheduleEntry, error) {
	var envelope struct {
		Data []scheduleRecord `json:"data"`
	}
	if err := c.getJSON(ctx, c.apiBaseURL+"/api/schedules?populate=*", &envelope); err != nil {
		return nil, err
	}

	entries := make([]model.ScheduleEntry, 0, len(envelope.Data))
	for _, rec := range envelope.Data {
		entry, ok := rec.toEntry()
		if !ok {
			log.Warn().Str("show", rec.ShowName).Msg("dropping schedule record with unparseable slot times")
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (rec *scheduleRecord) toEntry() (model.ScheduleEntry, bool) {
	start, ok := parseStamp(rec.StartTime)
	if !ok {
		return model.ScheduleEntry{}, false
	}
	end, ok := parseStamp(rec.EndTime)
	if !ok {
		return model.ScheduleEntry{}, false
	}

	entry := model.ScheduleEntry{
		ShowName:    rec.ShowName,
		Description: rec.Description,
		StartTime:   start,
		EndTime:     end,
		Permanent:   rec.Permanent,
	}
	if rec.PermEnd != nil {
		if t, ok := parseStamp(*rec.PermEnd); ok {
			entry.PermanentEnd = &t
		} else {
			log.Warn().Str("show", rec.ShowName).Str("perm_end", *rec.PermEnd).Msg("ignoring unparseable perm_end")
		}
	}
	for _, d := range rec.ExcludedDates {
		if t, ok := parseStamp(d); ok {
			entry.ExcludedDates = append(entry.ExcludedDates, t)
		} else {
			log.Warn().Str("show", rec.ShowName).Str("date", d).Msg("ignoring unparseable excluded date")
		}
	}
	if rec.User != nil {
		p := model.Presenter{Username: rec.User.Username}
		if rec.User.ProfilePhoto != nil && rec.User.ProfilePhoto.URL != "" {
			url := rec.User.ProfilePhoto.URL
			p.ProfilePhotoPath = &url
		}
		entry.Presenter = &p
	}
	return entry, true
}

var stampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseStamp accepts the handful of timestamp shapes the CMS has been seen
// to emit. Everything is interpreted as UTC.
func parseStamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range stampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// CurrentSong returns the raw now-playing text from the Shoutcast server.
func (c *Client) CurrentSong(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.shoutcastURL+"/currentsong?sid=1", nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("shoutcast returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

type playlistRecord struct {
	ID         int     `json:"id"`
	DocumentID string  `json:"documentId"`
	Artist     string  `json:"artist"`
	Song       string  `json:"song"`
	ArtworkURL *string `json:"artwork_url"`
	PlayedAt   string  `json:"played_datetime"`
	Likes      int     `json:"likes"`
}

// RecentlyPlayed returns the newest tracks from the playlist history,
// newest first.
func (c *Client) RecentlyPlayed(ctx context.Context, limit int) ([]model.RecentlyPlayedTrack, error) {
	if limit <= 0 {
		limit = 5
	}
	url := fmt.Sprintf("%s/api/playlists?pagination[limit]=%d&pagination[start]=0&sort[0]=id:desc", c.apiBaseURL, limit)

	var envelope struct {
		Data []playlistRecord `json:"data"`
	}
	if err := c.getJSON(ctx, url, &envelope); err != nil {
		return nil, err
	}

	tracks := make([]model.RecentlyPlayedTrack, 0, len(envelope.Data))
	for _, rec := range envelope.Data {
		track := model.RecentlyPlayedTrack{
			ID:         rec.ID,
			DocumentID: rec.DocumentID,
			Artist:     rec.Artist,
			Song:       rec.Song,
			ArtworkURL: rec.ArtworkURL,
			PlayedAt:   rec.PlayedAt,
			Likes:      rec.Likes,
		}
		if track.Artist == "" {
			track.Artist = "Unknown"
		}
		if track.Song == "" {
			track.Song = "Unknown"
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}

// LikeSong bumps the like counter on a playlist row and returns the new
// count. The CMS has no atomic increment, so this is read-modify-write; a
// lost update under concurrent likes is acceptable for a vanity counter.
func (c *Client) LikeSong(ctx context.Context, documentID string) (int, error) {
	itemURL := fmt.Sprintf("%s/api/playlists/%s", c.apiBaseURL, documentID)

	var current struct {
		Data playlistRecord `json:"data"`
	}
	if err := c.getJSON(ctx, itemURL, &current); err != nil {
		return 0, err
	}

	likes := current.Data.Likes + 1
	payload, err := json.Marshal(map[string]any{"data": map[string]int{"likes": likes}})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, itemURL, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("like update returned %d", resp.StatusCode)
	}
	return likes, nil
}

// StreamURLs fetches the station .pls playlist and returns the stream URLs
// it lists.
func (c *Client) StreamURLs(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.playlistURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("playlist fetch returned %d", resp.StatusCode)
	}
	return ParsePLS(resp.Body)
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("station API returned %d for %s", resp.StatusCode, url)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("malformed station payload: %w", err)
	}
	return nil
}
