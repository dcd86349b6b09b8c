package users

import (
	"errors"
	"strings"
	"time"

	"gallery-api/internal/domain/errs"

	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errs.Invalid("Email already registered")
	ErrSlugTaken          = errs.Invalid("Slug already taken")
	ErrWeakPassword       = errs.Invalid("Password must be at least 8 characters long and contain both letters and numbers")
	ErrPasswordTooLong    = errs.Invalid("Password must be at most 72 bytes long")
	ErrInvalidEmail       = errs.Invalid("Invalid email format")
	ErrInvalidCredentials = errs.Unauthorized("Incorrect email or password")
	ErrPasswordNotSet     = errs.Unauthorized("This account uses Google sign-in")
	ErrNotVerified        = errs.Forbidden("Please verify your email before logging in")
	ErrInactive           = errs.Forbidden("Account is disabled")
	ErrUserNotFound       = errs.NotFound("User not found")
)

type NewUser struct {
	Email    string
	Password string
	Name     string
	Slug     string
}

// CreateUser registers a local, unverified artist account.
func CreateUser(db *gorm.DB, in NewUser) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !IsEmailValid(email) {
		return nil, ErrInvalidEmail
	}
	if !IsPasswordStrong(in.Password) {
		return nil, ErrWeakPassword
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	var user *User
	err = db.Transaction(func(tx *gorm.DB) error {
		if _, err := GetUserByEmail(tx, email); err == nil {
			return ErrEmailTaken
		} else if !errors.Is(err, ErrUserNotFound) {
			return err
		}

		slug, err := resolveSlug(tx, in)
		if err != nil {
			return err
		}

		user = &User{
			Email:                 email,
			Password:              &hashed,
			AuthProvider:          ProviderLocal,
			Name:                  strings.TrimSpace(in.Name),
			Slug:                  slug,
			Role:                  RoleArtist,
			IsPublicGallery:       true,
			ShowWorkInProgress:    true,
			DefaultArtworkPrivacy: "public",
			EmailNotifications:    true,
			IsActive:              true,
		}
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func resolveSlug(tx *gorm.DB, in NewUser) (string, error) {
	if strings.TrimSpace(in.Slug) == "" {
		return GenerateUniqueSlug(tx, in.Name)
	}
	slug := MakeSlug(in.Slug)
	taken, err := SlugTaken(tx, slug, 0)
	if err != nil {
		return "", err
	}
	if taken {
		return "", ErrSlugTaken
	}
	return slug, nil
}

func GetUserByID(db *gorm.DB, id uint) (*User, error) {
	return firstUser(db.Where("id = ?", id))
}

func GetUserByEmail(db *gorm.DB, email string) (*User, error) {
	return firstUser(db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))))
}

func GetUserBySlug(db *gorm.DB, slug string) (*User, error) {
	return firstUser(db.Where("slug = ?", slug))
}

func firstUser(q *gorm.DB) (*User, error) {
	var u User
	if err := q.First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Authenticate checks credentials, then the verified and active flags, and
// stamps last_login on success.
func Authenticate(db *gorm.DB, email, password string) (*User, error) {
	user, err := GetUserByEmail(db, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !user.HasPassword() {
		return nil, ErrPasswordNotSet
	}
	if !VerifyPassword(*user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, ErrNotVerified
	}
	if !user.IsActive {
		return nil, ErrInactive
	}

	now := time.Now()
	if err := db.Model(&User{}).Where("id = ?", user.ID).Update("last_login", now).Error; err != nil {
		return nil, err
	}
	user.LastLogin = &now
	return user, nil
}

func ChangePassword(db *gorm.DB, userID uint, current, next string) error {
	user, err := GetUserByID(db, userID)
	if err != nil {
		return err
	}
	if !user.HasPassword() {
		return errs.Invalid("This account does not have a password. Sign in with Google or set a password first.")
	}
	if !VerifyPassword(*user.Password, current) {
		return errs.Unauthorized("Current password is incorrect")
	}
	if !IsPasswordStrong(next) {
		return ErrWeakPassword
	}

	hashed, err := HashPassword(next)
	if err != nil {
		return err
	}
	return db.Model(&User{}).Where("id = ?", userID).Update("password", hashed).Error
}
