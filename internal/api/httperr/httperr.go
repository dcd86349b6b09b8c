// Package httperr turns domain errors into JSON error responses.
package httperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"gallery-api/internal/domain/errs"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorMap maps a domain error kind to its status code.
var ErrorMap = map[error]int{
	errs.ErrInvalid:      http.StatusBadRequest,
	errs.ErrUnauthorized: http.StatusUnauthorized,
	errs.ErrForbidden:    http.StatusForbidden,
	errs.ErrNotFound:     http.StatusNotFound,
	errs.ErrConflict:     http.StatusConflict,
}

func Status(err error) int {
	for kind, code := range ErrorMap {
		if errors.Is(err, kind) {
			return code
		}
	}
	return http.StatusInternalServerError
}

// Write aborts the request with the status and message for err. Unexpected
// errors are logged, reported to Sentry and hidden behind a generic message.
func Write(c *gin.Context, err error) {
	code := Status(err)
	if code == http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.FullPath(), "err", err)
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		} else if sentry.CurrentHub().Client() != nil {
			sentry.CaptureException(err)
		}
		c.AbortWithStatusJSON(code, gin.H{"error": "Internal server error"})
		return
	}
	c.AbortWithStatusJSON(code, gin.H{"error": errs.Message(err, http.StatusText(code))})
}

// BindError renders a ShouldBind failure as a 400 with per-field details.
func BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			details[jsonName(fe)] = fe.Tag()
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": details})
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid request: %v", err)})
}

func jsonName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return fe.Namespace()
	}
	return strings.ToLower(name[:1]) + name[1:]
}

// Abort writes a plain error message with code.
func Abort(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, gin.H{"error": msg})
}
