package model

// CurrentSong is the parsed form of the Shoutcast "Artist - Title" string.
// Raw keeps the original text for debugging on the client.
type CurrentSong struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album,omitempty"`
	Raw    string `json:"raw_data,omitempty"`
}

// RecentlyPlayedTrack is one row of the station playlist history.
type RecentlyPlayedTrack struct {
	ID         int     `json:"id"`
	DocumentID string  `json:"documentId"`
	Artist     string  `json:"artist"`
	Song       string  `json:"song"`
	ArtworkURL *string `json:"artwork_url"`
	PlayedAt   string  `json:"played_at"`
	Likes      int     `json:"likes"`
}

// SpotifyTrack carries catalog metadata for the song currently on air,
// mainly the album art the turntable renders.
type SpotifyTrack struct {
	Title          string `json:"title,omitempty"`
	Artist         string `json:"artist,omitempty"`
	Album          string `json:"album,omitempty"`
	AlbumArtURL    string `json:"album_art_url,omitempty"`
	AlbumArtSmall  string `json:"album_art_small,omitempty"`
	AlbumArtMedium string `json:"album_art_medium,omitempty"`
	ReleaseDate    string `json:"release_date,omitempty"`
	SpotifyURL     string `json:"spotify_url,omitempty"`
	DurationMS     int    `json:"duration_ms,omitempty"`
	PreviewURL     string `json:"preview_url,omitempty"`
}
