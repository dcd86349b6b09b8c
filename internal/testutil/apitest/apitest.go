// Package apitest wires the process globals the handlers read to test doubles.
package apitest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"gallery-api/config"
	"gallery-api/database"
	"gallery-api/internal/domain/users"
	"gallery-api/internal/infra/mailer"
	"gallery-api/internal/infra/storage"
	"gallery-api/internal/infra/storage/storagetest"
	"gallery-api/internal/testutil/testdb"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const Secret = "apitest-secret"

// Mailbox records every message instead of sending it.
type Mailbox struct {
	mu   sync.Mutex
	Sent []mailer.Message
}

func (m *Mailbox) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, msg)
	return nil
}

func (m *Mailbox) Last() mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return mailer.Message{}
	}
	return m.Sent[len(m.Sent)-1]
}

type Env struct {
	DB    *gorm.DB
	Store *storagetest.Memory
	Mail  *Mailbox
}

// Setup points database.DB, storage.Default and mailer.Default at fresh fakes
// and restores them when the test ends.
func Setup(t *testing.T) *Env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &Env{
		DB:    testdb.Open(t, database.Models()...),
		Store: storagetest.NewMemory(),
		Mail:  &Mailbox{},
	}

	prevDB, prevStore, prevMail := database.DB, storage.Default, mailer.Default
	database.DB, storage.Default, mailer.Default = env.DB, env.Store, env.Mail
	t.Cleanup(func() {
		database.DB, storage.Default, mailer.Default = prevDB, prevStore, prevMail
	})

	config.JWT_SECRET = Secret
	config.ACCESS_TOKEN_TTL = 30 * time.Minute
	config.REFRESH_TOKEN_TTL = 7 * 24 * time.Hour
	config.VERIFICATION_TOKEN_TTL = 24 * time.Hour
	config.UNVERIFIED_ACCOUNT_TTL = 24 * time.Hour
	config.BACKEND_URL = "http://api.test"
	config.FRONTEND_URL = "http://app.test"
	return env
}

// User creates a verified, active artist.
func (e *Env) User(t *testing.T, slug string) *users.User {
	t.Helper()
	u, err := users.CreateUser(e.DB, users.NewUser{
		Email:    slug + "@example.com",
		Password: "secret123",
		Name:     slug,
		Slug:     slug,
	})
	require.NoError(t, err)
	require.NoError(t, e.DB.Model(&users.User{}).Where("id = ?", u.ID).Update("is_verified", true).Error)
	u.IsVerified = true
	return u
}

func Bearer(t *testing.T, u *users.User) string {
	t.Helper()
	raw, err := users.CreateAccessToken(u, Secret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + raw
}

// Do sends a JSON request through r. body may be nil, a string, or any value
// to marshal.
func Do(t *testing.T, r http.Handler, method, path, auth string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// JSON decodes the recorded body into a generic map.
func JSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
