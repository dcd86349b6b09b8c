package users

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

type GoogleProfile struct {
	Sub     string
	Email   string
	Name    string
	Picture string
}

// FindOrCreateGoogleUser links by google_sub first, then by email, and only
// creates a new verified account when neither matches.
func FindOrCreateGoogleUser(db *gorm.DB, p GoogleProfile) (*User, error) {
	if p.Sub == "" || p.Email == "" {
		return nil, errors.New("google profile missing sub or email")
	}

	var user *User
	err := db.Transaction(func(tx *gorm.DB) error {
		found, err := firstUser(tx.Where("google_sub = ?", p.Sub))
		if err == nil {
			user = found
			return nil
		}
		if !errors.Is(err, ErrUserNotFound) {
			return err
		}

		found, err = GetUserByEmail(tx, p.Email)
		if err == nil {
			sub := p.Sub
			found.GoogleSub = &sub
			found.IsVerified = true
			if err := tx.Model(&User{}).Where("id = ?", found.ID).Updates(map[string]any{
				"google_sub":  sub,
				"is_verified": true,
			}).Error; err != nil {
				return err
			}
			user = found
			return nil
		}
		if !errors.Is(err, ErrUserNotFound) {
			return err
		}

		name := strings.TrimSpace(p.Name)
		if name == "" {
			name = strings.SplitN(p.Email, "@", 2)[0]
		}
		slug, err := GenerateUniqueSlug(tx, name)
		if err != nil {
			return err
		}
		sub := p.Sub
		user = &User{
			Email:                 strings.ToLower(p.Email),
			AuthProvider:          ProviderGoogle,
			GoogleSub:             &sub,
			Name:                  name,
			Slug:                  slug,
			Role:                  RoleArtist,
			ThumbnailURL:          p.Picture,
			IsPublicGallery:       true,
			ShowWorkInProgress:    true,
			DefaultArtworkPrivacy: "public",
			EmailNotifications:    true,
			IsVerified:            true,
			IsActive:              true,
		}
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
