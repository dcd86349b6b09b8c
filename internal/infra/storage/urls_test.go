package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucketBasesAWS(t *testing.T) {
	bases := BucketBases("", "artive-uploads", "ap-southeast-2", "", true)
	assert.Equal(t, []string{"https://artive-uploads.s3.ap-southeast-2.amazonaws.com"}, bases)
}

func TestBucketBasesWithCDNAndEndpoint(t *testing.T) {
	bases := BucketBases("cdn.example.com", "media", "us-east-1", "localhost:9000", false)
	assert.Equal(t, []string{"https://cdn.example.com", "http://localhost:9000/media"}, bases)
}

func TestResolverRoundTrip(t *testing.T) {
	r := NewResolver(BucketBases("cdn.example.com", "artive-uploads", "ap-southeast-2", "", true)...)

	url := r.URL("artworks/ji-park/20240101_120000_abcd1234.jpg")
	assert.Equal(t, "https://cdn.example.com/artworks/ji-park/20240101_120000_abcd1234.jpg", url)

	key, ok := r.KeyFromURL(url)
	assert.True(t, ok)
	assert.Equal(t, "artworks/ji-park/20240101_120000_abcd1234.jpg", key)

	// URLs stored before the CDN was configured still resolve.
	key, ok = r.KeyFromURL("https://artive-uploads.s3.ap-southeast-2.amazonaws.com/blog/ji-park/a.png?v=2")
	assert.True(t, ok)
	assert.Equal(t, "blog/ji-park/a.png", key)
}

func TestResolverRejectsForeignURLs(t *testing.T) {
	r := NewResolver("https://cdn.example.com")

	_, ok := r.KeyFromURL("https://elsewhere.com/a.png")
	assert.False(t, ok)
	_, ok = r.KeyFromURL("https://cdn.example.com/")
	assert.False(t, ok)
	_, ok = r.KeyFromURL("")
	assert.False(t, ok)
}
