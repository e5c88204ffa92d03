package spotify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const searchFixture = `{
  "tracks": {
    "items": [
      {
        "name": "Enter Sandman",
        "artists": [{"name": "Metallica"}],
        "album": {
          "name": "Metallica",
          "release_date": "1991-08-12",
          "images": [
            {"url": "https://img/large.jpg"},
            {"url": "https://img/medium.jpg"},
            {"url": "https://img/small.jpg"}
          ]
        },
        "external_urls": {"spotify": "https://open.spotify.com/track/x"},
        "duration_ms": 331000,
        "preview_url": "https://p.scdn.co/x"
      }
    ]
  }
}`

func newTestClient(t *testing.T, searchBody string) (*Client, *int) {
	t.Helper()
	tokenCalls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token":
			tokenCalls++
			if r.FormValue("grant_type") != "client_credentials" {
				t.Errorf("grant_type = %q", r.FormValue("grant_type"))
			}
			w.Write([]byte(`{"access_token": "tok123", "expires_in": 3600}`))
		case "/search":
			if got := r.Header.Get("Authorization"); got != "Bearer tok123" {
				t.Errorf("auth header = %q", got)
			}
			w.Write([]byte(searchBody))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	t.Cleanup(srv.Close)

	c := NewClient("id", "secret")
	c.authURL = srv.URL + "/token"
	c.apiURL = srv.URL
	return c, &tokenCalls
}

func TestSearchTrack(t *testing.T) {
	c, tokenCalls := newTestClient(t, searchFixture)

	track, err := c.SearchTrack(context.Background(), "Metallica", "Enter Sandman")
	if err != nil {
		t.Fatalf("SearchTrack: %v", err)
	}
	if track == nil {
		t.Fatal("expected a match")
	}
	if track.Artist != "Metallica" || track.Title != "Enter Sandman" {
		t.Errorf("track = %+v", track)
	}
	if track.AlbumArtURL != "https://img/large.jpg" {
		t.Errorf("art = %q", track.AlbumArtURL)
	}
	if track.AlbumArtMedium != "https://img/medium.jpg" || track.AlbumArtSmall != "https://img/small.jpg" {
		t.Errorf("art sizes = %q / %q", track.AlbumArtMedium, track.AlbumArtSmall)
	}

	// second search reuses the cached token
	if _, err := c.SearchTrack(context.Background(), "Metallica", "One"); err != nil {
		t.Fatalf("second search: %v", err)
	}
	if *tokenCalls != 1 {
		t.Errorf("token fetched %d times, want 1", *tokenCalls)
	}
}

func TestSearchTrackNoMatch(t *testing.T) {
	c, _ := newTestClient(t, `{"tracks": {"items": []}}`)

	track, err := c.SearchTrack(context.Background(), "Nobody", "Nothing")
	if err != nil {
		t.Fatalf("SearchTrack: %v", err)
	}
	if track != nil {
		t.Fatalf("expected no match, got %+v", track)
	}
}

func TestSearchTrackEmptyInputs(t *testing.T) {
	c := NewClient("id", "secret")
	track, err := c.SearchTrack(context.Background(), "", "Enter Sandman")
	if err != nil || track != nil {
		t.Fatalf("empty artist should short-circuit, got %v / %v", track, err)
	}
}
