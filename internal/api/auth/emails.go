package auth

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"gallery-api/config"
	"gallery-api/internal/domain/users"
	"gallery-api/internal/infra/mailer"

	"gorm.io/gorm"
)

const passwordResetTTL = time.Hour

func verificationLink(token string) string {
	return strings.TrimRight(config.BACKEND_URL, "/") + "/api/auth/verify-email?token=" + url.QueryEscape(token)
}

func resetLink(token string) string {
	return strings.TrimRight(config.FRONTEND_URL, "/") + "/reset-password?token=" + url.QueryEscape(token)
}

// sendVerificationEmail issues a fresh token and mails it. Delivery failures
// are logged; the account stays usable through resend-verification.
func sendVerificationEmail(ctx context.Context, db *gorm.DB, user *users.User) error {
	token, err := users.IssueVerificationToken(db, user, users.PurposeEmailVerification, config.VERIFICATION_TOKEN_TTL)
	if err != nil {
		return err
	}

	msg, err := mailer.VerificationEmail(user.Email, user.Name, verificationLink(token), int(config.VERIFICATION_TOKEN_TTL.Hours()))
	if err != nil {
		return err
	}
	if err := mailer.Default.Send(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to send verification email", "user_id", user.ID, "err", err)
	}
	return nil
}

func sendPasswordResetEmail(ctx context.Context, db *gorm.DB, user *users.User) error {
	token, err := users.IssueVerificationToken(db, user, users.PurposePasswordReset, passwordResetTTL)
	if err != nil {
		return err
	}

	msg, err := mailer.PasswordResetEmail(user.Email, user.Name, resetLink(token), int(passwordResetTTL.Hours()))
	if err != nil {
		return err
	}
	if err := mailer.Default.Send(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to send password reset email", "user_id", user.ID, "err", err)
	}
	return nil
}
