package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/trucksimfm/companion/internal/model"
)

const tokenExpiryBuffer = 5 * time.Minute

// Client looks up catalog metadata (mainly album art) for the song on air,
// using the client-credentials flow. The access token is cached in-process
// and refreshed shortly before it expires.
type Client struct {
	clientID     string
	clientSecret string
	authURL      string
	apiURL       string
	http         *http.Client

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

func NewClient(clientID, clientSecret string) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		authURL:      "https://accounts.spotify.com/api/token",
		apiURL:       "https://api.spotify.com/v1",
		http:         &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.expiresAt) {
		return c.accessToken, nil
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned %d", resp.StatusCode)
	}

	var tok struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", err
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned no access token")
	}
	if tok.ExpiresIn == 0 {
		tok.ExpiresIn = 3600
	}

	c.accessToken = tok.AccessToken
	c.expiresAt = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - tokenExpiryBuffer)
	log.Info().Msg("obtained spotify access token")
	return c.accessToken, nil
}

// SearchTrack returns metadata for the best match, or (nil, nil) when the
// catalog has no result for the artist/title pair.
func (c *Client) SearchTrack(ctx context.Context, artist, title string) (*model.SpotifyTrack, error) {
	if artist == "" || title == "" {
		return nil, nil
	}

	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	query := url.Values{
		"q":     {fmt.Sprintf("artist:%s track:%s", artist, title)},
		"type":  {"track"},
		"limit": {"1"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/search?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned %d", resp.StatusCode)
	}

	var payload struct {
		Tracks struct {
			Items []trackItem `json:"items"`
		} `json:"tracks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if len(payload.Tracks.Items) == 0 {
		log.Info().Str("artist", artist).Str("title", title).Msg("no spotify match")
		return nil, nil
	}
	return payload.Tracks.Items[0].toTrack(), nil
}

type trackItem struct {
	Name    string `json:"name"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
	Album struct {
		Name        string `json:"name"`
		ReleaseDate string `json:"release_date"`
		Images      []struct {
			URL string `json:"url"`
		} `json:"images"`
	} `json:"album"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
	DurationMS int    `json:"duration_ms"`
	PreviewURL string `json:"preview_url"`
}

func (it *trackItem) toTrack() *model.SpotifyTrack {
	names := make([]string, 0, len(it.Artists))
	for _, a := range it.Artists {
		names = append(names, a.Name)
	}

	track := &model.SpotifyTrack{
		Title:       it.Name,
		Artist:      strings.Join(names, ", "),
		Album:       it.Album.Name,
		ReleaseDate: it.Album.ReleaseDate,
		SpotifyURL:  it.ExternalURLs.Spotify,
		DurationMS:  it.DurationMS,
		PreviewURL:  it.PreviewURL,
	}

	// images come largest first
	images := it.Album.Images
	if len(images) > 0 {
		track.AlbumArtURL = images[0].URL
		track.AlbumArtSmall = images[len(images)-1].URL
		track.AlbumArtMedium = track.AlbumArtURL
		if len(images) > 1 {
			track.AlbumArtMedium = images[1].URL
		}
	}
	return track
}
