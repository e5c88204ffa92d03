package packets

// SpotifySearchRequest asks for catalog metadata about a song.
type SpotifySearchRequest struct {
	Artist string `json:"artist" binding:"required"`
	Title  string `json:"title" binding:"required"`
}

// StatusCheckRequest registers a client heartbeat.
type StatusCheckRequest struct {
	ClientName string `json:"client_name" binding:"required"`
}
