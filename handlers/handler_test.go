package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"artfolio/auth"
	handler "artfolio/handlers"
	"artfolio/models"
	"artfolio/router"
	"artfolio/storage"
)

// stubUploader stands in for the image host. It records the last call and
// returns a deterministic URL.
type stubUploader struct {
	calls         int
	lastFolder    string
	lastTransform storage.Transform
	err           error
}

func (s *stubUploader) Upload(ctx context.Context, file io.Reader, filename, folder string, t storage.Transform) (string, error) {
	s.calls++
	s.lastFolder = folder
	s.lastTransform = t
	if s.err != nil {
		return "", s.err
	}
	return "https://img.test/" + folder + "/" + filename, nil
}

type testEnv struct {
	app      *fiber.App
	db       *gorm.DB
	auth     *auth.Service
	uploader *stubUploader
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // keep every session on the same in-memory db

	require.NoError(t, db.AutoMigrate(&models.Account{}, &models.Artwork{}))

	authSvc := auth.NewService("test-secret")
	uploader := &stubUploader{}

	app := fiber.New()
	router.SetupRoutes(app,
		&handler.AccountHandler{DB: db, Auth: authSvc, Uploader: uploader},
		&handler.ArtworkHandler{DB: db, Uploader: uploader},
		authSvc,
	)

	return &testEnv{app: app, db: db, auth: authSvc, uploader: uploader}
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, res *http.Response) envelope {
	t.Helper()
	defer res.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
	return env
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// multipartRequest builds a form request; pass an empty fileField to omit
// the file part entirely.
func multipartRequest(t *testing.T, method, target string, fields map[string]string, fileField, filename string, file []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

// signup registers an account through the API and returns its sanitized
// profile and token.
func (e *testEnv) signup(t *testing.T, name, email, password string) (models.Profile, string) {
	t.Helper()

	res, err := e.app.Test(jsonRequest(t, "POST", "/api/accounts/signup", fiber.Map{
		"name":     name,
		"email":    email,
		"password": password,
	}), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, res.StatusCode)

	var data struct {
		Account models.Profile `json:"account"`
		Token   string         `json:"token"`
	}
	env := decodeEnvelope(t, res)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Account, data.Token
}

func withToken(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
