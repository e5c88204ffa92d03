package station

import (
	"strings"

	"github.com/trucksimfm/companion/internal/model"
)

// separators the Shoutcast feed has used between artist and title, in the
// order they should be tried.
var songSeparators = []string{" - ", " – ", " — ", " | ", " / "}

// abbreviations kept lowercase/verbatim by SmartTitleCase.
var preserveWords = []string{"DJ", "MC", "ft", "feat", "vs", "x"}

// ParseSong turns the raw "Artist - Title" text into a CurrentSong. When no
// separator matches, the whole string becomes the title with a placeholder
// artist, mirroring how the app renders unparseable feeds.
func ParseSong(raw string) model.CurrentSong {
	text := strings.TrimSpace(raw)

	for _, sep := range songSeparators {
		idx := strings.Index(text, sep)
		if idx <= 0 {
			continue
		}
		artist := strings.TrimSpace(text[:idx])
		title := strings.TrimSpace(text[idx+len(sep):])
		if artist == "" || title == "" {
			continue
		}
		return model.CurrentSong{
			Artist: SmartTitleCase(artist),
			Title:  SmartTitleCase(title),
			Raw:    raw,
		}
	}

	return model.CurrentSong{
		Title:  SmartTitleCase(text),
		Artist: "Unknown Artist",
		Raw:    raw,
	}
}

// SmartTitleCase title-cases a song string while preserving patterns like
// "DJ", "ft." and bracketed remix suffixes.
func SmartTitleCase(s string) string {
	words := strings.Split(s, " ")
	for i, word := range words {
		words[i] = titleCaseWord(word)
	}
	return strings.Join(words, " ")
}

func titleCaseWord(word string) string {
	lower := strings.ToLower(word)
	for _, p := range preserveWords {
		pl := strings.ToLower(p)
		if lower != pl && lower != pl+"." {
			continue
		}
		if p != strings.ToUpper(p) {
			// ft, feat, vs, x stay lowercase
			return lower
		}
		if strings.HasSuffix(lower, ".") {
			return p + "."
		}
		return p
	}

	if strings.ContainsAny(word, "([") {
		var b strings.Builder
		capitalizeNext := true
		for _, r := range word {
			if r == '(' || r == '[' {
				b.WriteRune(r)
				capitalizeNext = true
				continue
			}
			if capitalizeNext {
				b.WriteString(strings.ToUpper(string(r)))
				capitalizeNext = false
			} else {
				b.WriteString(strings.ToLower(string(r)))
			}
		}
		return b.String()
	}

	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}
