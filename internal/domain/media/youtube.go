package media

import "regexp"

var youtubePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/watch\?.*v=([a-zA-Z0-9_-]{11})`),
}

// ExtractYouTubeID returns the 11 character video id of a YouTube URL, or ""
// when the URL is not one.
func ExtractYouTubeID(url string) string {
	if url == "" {
		return ""
	}
	for _, p := range youtubePatterns {
		if m := p.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return ""
}

func YouTubeEmbedURL(id string) string {
	if id == "" {
		return ""
	}
	return "https://www.youtube.com/embed/" + id
}
