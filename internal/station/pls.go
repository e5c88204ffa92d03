package station

import (
	"bufio"
	"io"
	"net/url"
	"strings"
)

// ParsePLS extracts the stream URLs from a .pls playlist. Only FileN= lines
// matter; titles and lengths are ignored.
func ParsePLS(r io.Reader) ([]string, error) {
	var urls []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "File") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		raw := strings.TrimSpace(parts[1])
		if raw == "" {
			continue
		}
		if decoded, err := url.QueryUnescape(raw); err == nil {
			raw = decoded
		}
		urls = append(urls, raw)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}
