package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractYouTubeID(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/a_b-C1d2E3f?t=42", "a_b-C1d2E3f"},
		{"https://vimeo.com/123456789", ""},
		{"https://example.com/watch?v=dQw4w9WgXcQ", ""},
		{"https://www.youtube.com/watch?v=short", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ExtractYouTubeID(tc.url), tc.url)
	}
}

func TestYouTubeEmbedURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", YouTubeEmbedURL("dQw4w9WgXcQ"))
	assert.Equal(t, "", YouTubeEmbedURL(""))
}
