package storage

import (
	"fmt"
	"net/url"
	"strings"
)

// Resolver maps keys to public URLs and back. The first base is used for new
// URLs; every base is accepted when resolving a stored URL to its key.
type Resolver struct {
	bases []string
}

func NewResolver(bases ...string) Resolver {
	r := Resolver{}
	for _, b := range bases {
		if b == "" {
			continue
		}
		r.bases = append(r.bases, strings.TrimSuffix(b, "/")+"/")
	}
	return r
}

// BucketBases lists the URL prefixes a bucket is reachable under: the CDN
// domain when configured, then the bucket's own endpoint.
func BucketBases(cdnDomain, bucket, region, endpoint string, useSSL bool) []string {
	var bases []string
	if cdnDomain != "" {
		if !strings.HasPrefix(cdnDomain, "http://") && !strings.HasPrefix(cdnDomain, "https://") {
			cdnDomain = "https://" + cdnDomain
		}
		bases = append(bases, cdnDomain)
	}
	if endpoint == "" {
		bases = append(bases, fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region))
		return bases
	}
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	bases = append(bases, fmt.Sprintf("%s://%s/%s", scheme, endpoint, bucket))
	return bases
}

func (r Resolver) URL(key string) string {
	if len(r.bases) == 0 {
		return key
	}
	return r.bases[0] + strings.TrimPrefix(key, "/")
}

func (r Resolver) KeyFromURL(rawURL string) (string, bool) {
	rawURL = strings.TrimSpace(rawURL)
	if i := strings.IndexAny(rawURL, "?#"); i >= 0 {
		rawURL = rawURL[:i]
	}
	for _, base := range r.bases {
		if !strings.HasPrefix(rawURL, base) {
			continue
		}
		key := strings.TrimPrefix(rawURL, base)
		if unescaped, err := url.PathUnescape(key); err == nil {
			key = unescaped
		}
		if key == "" {
			return "", false
		}
		return key, true
	}
	return "", false
}
