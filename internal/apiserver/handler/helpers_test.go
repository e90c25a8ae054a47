package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amoylab/rentboard/internal/apiserver/database"
	"github.com/amoylab/rentboard/internal/apiserver/middleware"
	"github.com/amoylab/rentboard/internal/auth/jwt"
	"github.com/amoylab/rentboard/internal/common/cnst"
	"github.com/amoylab/rentboard/internal/common/config"
	"github.com/amoylab/rentboard/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "this-is-a-very-long-secret-key-for-testing"

type testEnv struct {
	t      *testing.T
	db     database.Database
	jwt    *jwt.Service
	h      *Handler
	router *gin.Engine
	dir    string
}

func newSQLite(t *testing.T) database.Database {
	t.Helper()
	db, err := database.NewSQLite(&config.DatabaseConfig{Type: "sqlite", DBName: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	return newTestEnvWithDB(t, newSQLite(t), opts...)
}

// newTestEnvWithDB wires a handler over db with disk uploads limited to 1 KiB per file
func newTestEnvWithDB(t *testing.T, db database.Database, opts ...Option) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtSvc, err := jwt.NewService(jwt.Config{SecretKey: testSecret, Duration: time.Hour})
	require.NoError(t, err)

	dir := t.TempDir()
	disk, err := storage.NewDiskStorage(zap.NewNop(), dir)
	require.NoError(t, err)

	all := append([]Option{WithImageStorage(disk, config.UploadConfig{MaxFiles: 6, MaxFileSize: 1024})}, opts...)
	h := New(db, jwtSvc, zap.NewNop(), all...)
	h.bcryptCost = bcrypt.MinCost

	r := gin.New()
	r.Use(middleware.Language())
	h.RegisterRoutes(r.Group("/api"))

	return &testEnv{t: t, db: db, jwt: jwtSvc, h: h, router: r, dir: dir}
}

// user stores an account and returns it with a session token
func (e *testEnv) user(username string, role cnst.Role) (*database.User, string) {
	e.t.Helper()
	u := &database.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "unused",
		Role:     role,
	}
	require.NoError(e.t, e.db.CreateUser(e.t.Context(), u))
	token, err := e.jwt.GenerateToken(u.ID.String(), u.Username, string(role))
	require.NoError(e.t, err)
	return u, token
}

func (e *testEnv) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	e.t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(e.t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type envelope map[string]any

func listingBody(name string) map[string]any {
	return map[string]any{
		"name":         name,
		"description":  "Bright and quiet",
		"address":      "1 Main St",
		"type":         "rent",
		"regularPrice": 1000,
		"bedrooms":     2,
		"bathrooms":    1,
		"imageUrls":    []string{"/uploads/1-a.png"},
	}
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, code int) {
	t.Helper()
	require.Equal(t, code, w.Code, w.Body.String())
}

