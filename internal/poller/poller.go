package poller

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/trucksimfm/companion/internal/model"
	"github.com/trucksimfm/companion/internal/mqtt"
	"github.com/trucksimfm/companion/internal/redis"
	"github.com/trucksimfm/companion/internal/station"
)

// Redis keys holding the latest snapshots. The API endpoints read these
// before hitting the upstream, so a thousand app clients polling does not
// turn into a thousand upstream requests.
const (
	KeyPresenter      = "snapshot:presenter"
	KeyNowPlaying     = "snapshot:now-playing"
	KeyRecentlyPlayed = "snapshot:recently-played"
)

type presenterSource interface {
	Current(ctx context.Context) model.LivePresenter
}

type stationAPI interface {
	CurrentSong(ctx context.Context) (string, error)
	RecentlyPlayed(ctx context.Context, limit int) ([]model.RecentlyPlayedTrack, error)
}

type artSource interface {
	SearchTrack(ctx context.Context, artist, title string) (*model.SpotifyTrack, error)
}

// DisplayPublisher pushes payloads to the studio display topics. May be
// nil when MQTT is not configured.
type DisplayPublisher interface {
	Publish(topic string, payload any) error
}

// NowPlaying is the payload pushed to studio displays when the song changes.
type NowPlaying struct {
	Song  model.CurrentSong   `json:"song"`
	Track *model.SpotifyTrack `json:"track,omitempty"`
}

// Poller keeps the snapshots fresh and pushes changes over MQTT. Each
// concern runs on its own goroutine with its own ticker; since a refresh
// runs inline in that goroutine, refreshes of the same concern never
// overlap and ticks that fire mid-refresh are simply dropped.
type Poller struct {
	presenters presenterSource
	upstream   stationAPI
	art        artSource
	pub        DisplayPublisher

	PresenterInterval time.Duration
	SongInterval      time.Duration
	RecentInterval    time.Duration

	lastPresenter string
	lastSongKey   string
}

// New wires a poller. art and pub may be nil; the corresponding enrichment
// or push is skipped.
func New(presenters presenterSource, upstream stationAPI, art artSource, pub DisplayPublisher) *Poller {
	return &Poller{
		presenters:        presenters,
		upstream:          upstream,
		art:               art,
		pub:               pub,
		PresenterInterval: 60 * time.Second,
		SongInterval:      15 * time.Second,
		RecentInterval:    30 * time.Second,
	}
}

// Start launches the refresh loops. They stop when ctx is cancelled.
func (p *Poller) Start(ctx context.Context) {
	go p.loop(ctx, p.PresenterInterval, p.RefreshPresenter)
	go p.loop(ctx, p.SongInterval, p.RefreshSong)
	go p.loop(ctx, p.RecentInterval, p.RefreshRecentlyPlayed)
}

func (p *Poller) loop(ctx context.Context, every time.Duration, fn func(context.Context)) {
	fn(ctx)
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(ctx)
		}
	}
}

// RefreshPresenter resolves the live presenter, snapshots it, and publishes
// when the banner should change.
func (p *Poller) RefreshPresenter(ctx context.Context) {
	lp := p.presenters.Current(ctx)
	p.snapshot(ctx, KeyPresenter, lp, 3*p.PresenterInterval)

	key := lp.Name + "|" + lp.ShowName
	if key == p.lastPresenter {
		return
	}
	p.lastPresenter = key
	p.publish(mqtt.TopicPresenter, lp)
	log.Info().Str("presenter", lp.Name).Str("show", lp.ShowName).Bool("auto_dj", lp.IsAutoDJ).Msg("presenter changed")
}

// RefreshSong polls the now-playing text; on a song change it looks up album
// art and publishes the new track.
func (p *Poller) RefreshSong(ctx context.Context) {
	raw, err := p.upstream.CurrentSong(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("current song poll failed")
		return
	}

	song := station.ParseSong(raw)
	key := song.Artist + "|" + song.Title
	if key == p.lastSongKey {
		return
	}
	p.lastSongKey = key

	np := NowPlaying{Song: song}
	if p.art != nil && searchable(song) {
		track, err := p.art.SearchTrack(ctx, song.Artist, song.Title)
		if err != nil {
			log.Warn().Err(err).Str("artist", song.Artist).Str("title", song.Title).Msg("album art lookup failed")
		} else {
			np.Track = track
		}
	}

	p.snapshot(ctx, KeyNowPlaying, np, 3*p.SongInterval)
	p.publish(mqtt.TopicNowPlaying, np)
	log.Info().Str("artist", song.Artist).Str("title", song.Title).Msg("song changed")
}

// RefreshRecentlyPlayed snapshots the playlist history for the API.
func (p *Poller) RefreshRecentlyPlayed(ctx context.Context) {
	tracks, err := p.upstream.RecentlyPlayed(ctx, 5)
	if err != nil {
		log.Warn().Err(err).Msg("recently played poll failed")
		return
	}
	p.snapshot(ctx, KeyRecentlyPlayed, tracks, 3*p.RecentInterval)
}

// searchable filters out the placeholder strings the parser emits for
// jingles and unparseable feeds; searching the catalog for those wastes a
// request and matches garbage.
func searchable(song model.CurrentSong) bool {
	return song.Artist != "" && song.Title != "" &&
		song.Artist != "Unknown Artist" &&
		song.Artist != "Live Radio" &&
		song.Title != "TruckSimFM"
}

func (p *Poller) snapshot(ctx context.Context, key string, value any, ttl time.Duration) {
	if redis.Rdb == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("snapshot marshal failed")
		return
	}
	redis.Set(ctx, key, string(raw), ttl)
}

func (p *Poller) publish(topic string, payload any) {
	if p.pub == nil {
		return
	}
	if err := p.pub.Publish(topic, payload); err != nil {
		log.Warn().Err(err).Str("topic", topic).Msg("display publish failed")
	}
}
