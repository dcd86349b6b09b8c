package users

import (
	"testing"

	"gallery-api/internal/domain/users"

	"github.com/stretchr/testify/assert"
)

func TestBuildProfileDTO(t *testing.T) {
	domain := "gallery.example.com"
	u := &users.User{
		ID: 7, Email: "kim@example.com", Name: "Kim", Slug: "kim", Role: users.RoleArtist,
		CustomDomain: &domain, GalleryDescription: "oil and ink", AboutImage: "https://cdn.test/profile/kim/a.jpg",
		Timezone: "Asia/Seoul", TotalArtworks: 3,
	}

	dto := BuildProfileDTO(u)
	assert.Equal(t, uint(7), dto.ID)
	assert.Equal(t, "kim@example.com", dto.Email)
	assert.Equal(t, &domain, dto.CustomDomain)
	assert.Equal(t, "oil and ink", dto.GalleryDescription)
	assert.Equal(t, "https://cdn.test/profile/kim/a.jpg", dto.AboutImage)
	assert.Equal(t, 3, dto.TotalArtworks)
}

func TestBuildersHandleMissingUser(t *testing.T) {
	assert.Equal(t, UserDTO{}, BuildUserDTO(nil))
	assert.Equal(t, PublicUserDTO{}, BuildPublicUserDTO(nil))
	assert.Nil(t, BuildArtistDTO(nil))
	assert.Nil(t, BuildArtistDTO(&users.User{}))
}

func TestBuildPublicUserDTO(t *testing.T) {
	dto := BuildPublicUserDTO(&users.User{ID: 1, Email: "secret@example.com", Name: "Lee", Slug: "lee", StudioImage: "s.jpg"})
	assert.Equal(t, "lee", dto.Slug)
	assert.Equal(t, "s.jpg", dto.StudioImage)
}
