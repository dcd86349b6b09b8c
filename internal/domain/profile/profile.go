package profile

import (
	"gallery-api/internal/domain/access"
	"gallery-api/internal/domain/errs"
	"gallery-api/internal/domain/users"

	"gorm.io/gorm"
)

var ErrGalleryPrivate = errs.Forbidden("This gallery is private")

// Profile is everything shown on an artist's profile page.
type Profile struct {
	User        *users.User
	Statement   *ArtistStatement
	Videos      []ArtistVideo
	QA          []ArtistQA
	Exhibitions []Exhibition
	Awards      []Award
}

// Load gathers u's statement and active profile entries.
func Load(db *gorm.DB, u *users.User) (*Profile, error) {
	p := &Profile{User: u}
	var err error
	if p.Statement, err = GetStatement(db, u.ID); err != nil {
		return nil, err
	}
	if p.Videos, err = ListVideos(db, u.ID); err != nil {
		return nil, err
	}
	if p.QA, err = ListQA(db, u.ID); err != nil {
		return nil, err
	}
	if p.Exhibitions, err = ListExhibitions(db, u.ID); err != nil {
		return nil, err
	}
	if p.Awards, err = ListAwards(db, u.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadPublic is Load for a visitor: unknown slugs are not found and private
// galleries are forbidden.
func LoadPublic(db *gorm.DB, slug string, viewer access.Viewer) (*Profile, error) {
	u, err := users.GetUserBySlug(db, slug)
	if err != nil {
		return nil, err
	}
	if !access.GalleryVisible(viewer, u) {
		return nil, ErrGalleryPrivate
	}
	return Load(db, u)
}
