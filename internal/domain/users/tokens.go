package users

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"time"

	"gallery-api/internal/domain/errs"

	"gorm.io/gorm"
)

var (
	ErrTokenInvalid   = errs.Invalid("Invalid verification token")
	ErrTokenUsed      = errs.Invalid("Verification token already used")
	ErrTokenExpired   = errs.Invalid("Verification token expired")
	ErrRefreshInvalid = errs.Unauthorized("Invalid or expired refresh token")
)

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// IssueVerificationToken replaces any live token of the same purpose for the
// user's email and returns the new raw token.
func IssueVerificationToken(db *gorm.DB, user *User, purpose string, ttl time.Duration) (string, error) {
	raw, err := randomToken(32)
	if err != nil {
		return "", err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ? AND purpose = ?", user.Email, purpose).
			Delete(&VerificationToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&VerificationToken{
			Email:     user.Email,
			Purpose:   purpose,
			UserID:    user.ID,
			Token:     raw,
			ExpiresAt: time.Now().Add(ttl),
		}).Error
	})
	if err != nil {
		return "", err
	}
	return raw, nil
}

// consumeToken marks a live token used. The conditional update keeps the
// token single use even when two requests race.
func consumeToken(tx *gorm.DB, raw, purpose string) (*VerificationToken, error) {
	var t VerificationToken
	if err := tx.Where("token = ? AND purpose = ?", raw, purpose).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenInvalid
		}
		return nil, err
	}
	if t.IsUsed {
		return nil, ErrTokenUsed
	}
	if t.Expired(time.Now()) {
		return nil, ErrTokenExpired
	}

	res := tx.Model(&VerificationToken{}).
		Where("id = ? AND is_used = ?", t.ID, false).
		Update("is_used", true)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected != 1 {
		return nil, ErrTokenUsed
	}
	t.IsUsed = true
	return &t, nil
}

func VerifyEmailToken(db *gorm.DB, raw string) (*User, error) {
	var user *User
	err := db.Transaction(func(tx *gorm.DB) error {
		t, err := consumeToken(tx, raw, PurposeEmailVerification)
		if err != nil {
			return err
		}
		if err := tx.Model(&User{}).Where("id = ?", t.UserID).Update("is_verified", true).Error; err != nil {
			return err
		}
		user, err = GetUserByID(tx, t.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ResetPassword consumes a password_reset token, stores the new hash and
// revokes every refresh token of the account.
func ResetPassword(db *gorm.DB, raw, newPassword string) error {
	if !IsPasswordStrong(newPassword) {
		return ErrWeakPassword
	}
	hashed, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		t, err := consumeToken(tx, raw, PurposePasswordReset)
		if err != nil {
			return err
		}
		if err := tx.Model(&User{}).Where("id = ?", t.UserID).Update("password", hashed).Error; err != nil {
			return err
		}
		return RevokeRefreshTokens(tx, t.UserID)
	})
}

// IssueRefreshToken revokes every earlier refresh token of the user.
func IssueRefreshToken(db *gorm.DB, userID uint, ttl time.Duration) (string, error) {
	raw, err := randomToken(64)
	if err != nil {
		return "", err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := RevokeRefreshTokens(tx, userID); err != nil {
			return err
		}
		return tx.Create(&RefreshToken{
			UserID:    userID,
			TokenHash: hashToken(raw),
			ExpiresAt: time.Now().Add(ttl),
		}).Error
	})
	if err != nil {
		return "", err
	}
	return raw, nil
}

// RotateRefreshToken verifies raw and returns its user with a fresh token.
func RotateRefreshToken(db *gorm.DB, raw string, ttl time.Duration) (*User, string, error) {
	var rt RefreshToken
	err := db.Where("token_hash = ?", hashToken(raw)).First(&rt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", ErrRefreshInvalid
	}
	if err != nil {
		return nil, "", err
	}
	if rt.Revoked || !time.Now().Before(rt.ExpiresAt) {
		return nil, "", ErrRefreshInvalid
	}

	user, err := GetUserByID(db, rt.UserID)
	if errors.Is(err, ErrUserNotFound) {
		return nil, "", ErrRefreshInvalid
	}
	if err != nil {
		return nil, "", err
	}
	if !user.IsActive {
		return nil, "", ErrInactive
	}

	next, err := IssueRefreshToken(db, user.ID, ttl)
	if err != nil {
		return nil, "", err
	}
	return user, next, nil
}

func RevokeRefreshTokens(db *gorm.DB, userID uint) error {
	return db.Model(&RefreshToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true).Error
}
