package station

import "testing"

func TestParseSongSeparators(t *testing.T) {
	cases := []struct {
		raw    string
		artist string
		title  string
	}{
		{"metallica - enter sandman", "Metallica", "Enter Sandman"},
		{"daft punk – one more time", "Daft Punk", "One More Time"},
		{"queen — bohemian rhapsody", "Queen", "Bohemian Rhapsody"},
		{"avicii | levels", "Avicii", "Levels"},
		{"tiesto / adagio for strings", "Tiesto", "Adagio For Strings"},
	}
	for _, tc := range cases {
		got := ParseSong(tc.raw)
		if got.Artist != tc.artist || got.Title != tc.title {
			t.Errorf("ParseSong(%q) = %q / %q, want %q / %q", tc.raw, got.Artist, got.Title, tc.artist, tc.title)
		}
		if got.Raw != tc.raw {
			t.Errorf("ParseSong(%q) lost the raw text", tc.raw)
		}
	}
}

func TestParseSongWithoutSeparator(t *testing.T) {
	got := ParseSong("station jingle")
	if got.Title != "Station Jingle" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Artist != "Unknown Artist" {
		t.Errorf("artist = %q", got.Artist)
	}
}

func TestParseSongSeparatorInsideTitle(t *testing.T) {
	// only the first matching separator splits; the rest stays in the title
	got := ParseSong("blink-182 - all - the small things")
	if got.Artist != "Blink-182" {
		t.Errorf("artist = %q", got.Artist)
	}
	if got.Title != "All - The Small Things" {
		t.Errorf("title = %q", got.Title)
	}
}

func TestSmartTitleCase(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"dj tiesto", "DJ Tiesto"},
		{"song ft. somebody", "Song ft. Somebody"},
		{"a vs b", "A vs B"},
		{"track (radio edit)", "Track (Radio Edit)"},
		{"track [remix]", "Track [Remix]"},
		{"ALL CAPS SHOUTING", "All Caps Shouting"},
	}
	for _, tc := range cases {
		if got := SmartTitleCase(tc.in); got != tc.want {
			t.Errorf("SmartTitleCase(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
