package media

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"gallery-api/internal/infra/storage"
)

type Uploaded struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

func Put(ctx context.Context, store storage.Store, key string, data []byte, contentType string) (Uploaded, error) {
	if err := store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return Uploaded{}, err
	}
	return Uploaded{
		Key:         key,
		URL:         store.URL(key),
		Size:        int64(len(data)),
		ContentType: contentType,
	}, nil
}

type ArtworkImage struct {
	Original  Uploaded `json:"original"`
	Display   Uploaded `json:"display"`
	Thumbnail Uploaded `json:"thumbnail"`
}

// PutArtworkImage stores the original plus display and thumbnail derivatives.
// GIF and WebP originals are stored as-is and stand in for both derivatives.
func PutArtworkImage(ctx context.Context, store storage.Store, slug, ext string, data []byte, contentType string, now time.Time) (ArtworkImage, error) {
	key := ObjectKey(FolderArtworks, slug, ext, now)
	original, err := Put(ctx, store, key, data, contentType)
	if err != nil {
		return ArtworkImage{}, err
	}

	out := ArtworkImage{Original: original, Display: original, Thumbnail: original}
	if !isResizable(ext) {
		return out, nil
	}

	derivatives := []struct {
		suffix string
		size   int
		dst    *Uploaded
	}{
		{"display", DisplayMaxSize, &out.Display},
		{"thumb", ThumbnailMaxSize, &out.Thumbnail},
	}

	stored := []string{key}
	for _, d := range derivatives {
		resized, err := Resize(data, ext, d.size)
		if err == nil {
			*d.dst, err = Put(ctx, store, DerivativeKey(key, d.suffix), resized, contentType)
		}
		if err != nil {
			for _, k := range stored {
				if rmErr := store.Remove(ctx, k); rmErr != nil {
					slog.WarnContext(ctx, "failed to roll back artwork upload", "key", k, "err", rmErr)
				}
			}
			return ArtworkImage{}, err
		}
		stored = append(stored, d.dst.Key)
	}
	return out, nil
}
