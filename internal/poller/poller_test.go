package poller

import (
	"context"
	"errors"
	"testing"

	"github.com/trucksimfm/companion/internal/model"
	"github.com/trucksimfm/companion/internal/mqtt"
)

type stubPresenters struct {
	lp model.LivePresenter
}

func (s *stubPresenters) Current(ctx context.Context) model.LivePresenter { return s.lp }

type stubStation struct {
	song    string
	songErr error
	recent  []model.RecentlyPlayedTrack
}

func (s *stubStation) CurrentSong(ctx context.Context) (string, error) { return s.song, s.songErr }

func (s *stubStation) RecentlyPlayed(ctx context.Context, limit int) ([]model.RecentlyPlayedTrack, error) {
	return s.recent, nil
}

type stubArt struct {
	calls int
	track *model.SpotifyTrack
}

func (s *stubArt) SearchTrack(ctx context.Context, artist, title string) (*model.SpotifyTrack, error) {
	s.calls++
	return s.track, nil
}

type capturingPub struct {
	topics   []string
	payloads []any
}

func (p *capturingPub) Publish(topic string, payload any) error {
	p.topics = append(p.topics, topic)
	p.payloads = append(p.payloads, payload)
	return nil
}

func TestRefreshPresenterPublishesOnlyOnChange(t *testing.T) {
	presenters := &stubPresenters{lp: model.LivePresenter{Name: "DJ Cruise Control", ShowName: "Auto DJ", IsAutoDJ: true}}
	pub := &capturingPub{}
	p := New(presenters, &stubStation{}, nil, pub)

	p.RefreshPresenter(context.Background())
	p.RefreshPresenter(context.Background())
	if len(pub.topics) != 1 {
		t.Fatalf("expected 1 publish for an unchanged presenter, got %d", len(pub.topics))
	}
	if pub.topics[0] != mqtt.TopicPresenter {
		t.Fatalf("published to %q, want %q", pub.topics[0], mqtt.TopicPresenter)
	}

	presenters.lp = model.LivePresenter{Name: "Live with alice", ShowName: "Morning Drive"}
	p.RefreshPresenter(context.Background())
	if len(pub.topics) != 2 {
		t.Fatalf("expected a publish after the presenter changed, got %d total", len(pub.topics))
	}
}

func TestRefreshSongEnrichesAndPublishes(t *testing.T) {
	upstream := &stubStation{song: "Dua Lipa - Levitating"}
	art := &stubArt{track: &model.SpotifyTrack{Title: "Levitating", AlbumArtURL: "https://img/cover.jpg"}}
	pub := &capturingPub{}
	p := New(&stubPresenters{}, upstream, art, pub)

	p.RefreshSong(context.Background())
	if len(pub.topics) != 1 || pub.topics[0] != mqtt.TopicNowPlaying {
		t.Fatalf("expected one publish to %q, got %v", mqtt.TopicNowPlaying, pub.topics)
	}
	np, ok := pub.payloads[0].(NowPlaying)
	if !ok {
		t.Fatalf("payload type %T, want NowPlaying", pub.payloads[0])
	}
	if np.Song.Artist != "Dua Lipa" || np.Track == nil || np.Track.AlbumArtURL != "https://img/cover.jpg" {
		t.Fatalf("unexpected payload: %+v", np)
	}

	// Same song again: no new lookup, no new publish.
	p.RefreshSong(context.Background())
	if art.calls != 1 || len(pub.topics) != 1 {
		t.Fatalf("unchanged song triggered lookups=%d publishes=%d", art.calls, len(pub.topics))
	}
}

func TestRefreshSongSkipsLookupForPlaceholders(t *testing.T) {
	upstream := &stubStation{song: "Station Jingle"}
	art := &stubArt{}
	p := New(&stubPresenters{}, upstream, art, &capturingPub{})

	p.RefreshSong(context.Background())
	if art.calls != 0 {
		t.Fatalf("placeholder artist should not hit the catalog, got %d lookups", art.calls)
	}
}

func TestRefreshSongSurvivesUpstreamFailure(t *testing.T) {
	upstream := &stubStation{songErr: errors.New("upstream down")}
	pub := &capturingPub{}
	p := New(&stubPresenters{}, upstream, nil, pub)

	p.RefreshSong(context.Background())
	if len(pub.topics) != 0 {
		t.Fatalf("a failed poll must not publish, got %v", pub.topics)
	}
}
