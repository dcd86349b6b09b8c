package users

import (
	"fmt"
	"log/slog"

	"gallery-api/internal/domain/users"

	"github.com/jinzhu/copier"
)

func copyFrom[T any](u *users.User) T {
	var dto T
	if u == nil {
		return dto
	}
	if err := copier.Copy(&dto, u); err != nil {
		slog.Error("failed to build user dto", "user_id", u.ID, "dto", fmt.Sprintf("%T", dto), "err", err)
	}
	return dto
}

func BuildUserDTO(u *users.User) UserDTO { return copyFrom[UserDTO](u) }

func BuildLoginUserDTO(u *users.User) LoginUserDTO { return copyFrom[LoginUserDTO](u) }

func BuildPublicUserDTO(u *users.User) PublicUserDTO { return copyFrom[PublicUserDTO](u) }

func BuildProfileDTO(u *users.User) ProfileDTO {
	dto := copyFrom[ProfileDTO](u)
	dto.UserDTO = BuildUserDTO(u)
	return dto
}

// BuildArtistDTO returns nil when the owner was not loaded.
func BuildArtistDTO(u *users.User) *ArtistDTO {
	if u == nil || u.ID == 0 {
		return nil
	}
	dto := copyFrom[ArtistDTO](u)
	return &dto
}
