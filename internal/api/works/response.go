package works

import (
	usersapi "gallery-api/internal/api/users"
	"gallery-api/internal/domain/works"
)

// ArtworkDTO is an artwork with its owner block.
type ArtworkDTO struct {
	works.Artwork
	Artist *usersapi.ArtistDTO `json:"artist,omitempty"`
}

type AdjacentDTO struct {
	Previous *ArtworkRefDTO `json:"previous"`
	Next     *ArtworkRefDTO `json:"next"`
}

// ArtworkRefDTO is enough to render a previous/next link.
type ArtworkRefDTO struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
}

func toArtworkDTO(a *works.Artwork) ArtworkDTO {
	return ArtworkDTO{Artwork: *a, Artist: usersapi.BuildArtistDTO(a.User)}
}

func toArtworkRef(a *works.Artwork) *ArtworkRefDTO {
	if a == nil {
		return nil
	}
	return &ArtworkRefDTO{ID: a.ID, Title: a.Title, ThumbnailURL: a.ThumbnailURL}
}

func toAdjacentDTO(adj *works.Adjacent) AdjacentDTO {
	return AdjacentDTO{Previous: toArtworkRef(adj.Previous), Next: toArtworkRef(adj.Next)}
}
