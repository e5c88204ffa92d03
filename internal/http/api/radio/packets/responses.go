package packets

// ProxyResponse is the envelope the app expects from the station proxies.
// Success stays true with degraded Data rather than flipping to an HTTP
// error; the UI never shows an error banner for an upstream hiccup.
type ProxyResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// LikeResponse reports the new like count after a vote.
type LikeResponse struct {
	Success bool `json:"success"`
	Likes   int  `json:"likes"`
}
