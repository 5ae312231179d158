package handler_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artfolio/models"
	"artfolio/storage"
)

func TestSignupAndLogin(t *testing.T) {
	env := newTestEnv(t)

	account, token := env.signup(t, "Ann", "ann@x.com", "secret1")
	assert.Equal(t, "Ann", account.Name)
	assert.Equal(t, "ann@x.com", account.Email)
	assert.NotEmpty(t, token)

	res, err := env.app.Test(jsonRequest(t, "POST", "/api/accounts/login", fiber.Map{
		"email":    "ann@x.com",
		"password": "secret1",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	res, err = env.app.Test(jsonRequest(t, "POST", "/api/accounts/login", fiber.Map{
		"email":    "ann@x.com",
		"password": "wrong",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}

func TestLoginUnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.app.Test(jsonRequest(t, "POST", "/api/accounts/login", fiber.Map{
		"email":    "nobody@x.com",
		"password": "secret1",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}

func TestSignupDuplicateEmailCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "Ann", "ann@x.com", "secret1")

	res, err := env.app.Test(jsonRequest(t, "POST", "/api/accounts/signup", fiber.Map{
		"name":     "Other Ann",
		"email":    "Ann@X.com",
		"password": "secret2",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

	var count int64
	env.db.Model(&models.Account{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSignupValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := []fiber.Map{
		{"email": "ann@x.com", "password": "secret1"},                      // no name
		{"name": "Ann", "password": "secret1"},                             // no email
		{"name": "Ann", "email": "ann@x.com"},                              // no password
		{"name": "Ann", "email": "not-an-email", "password": "secret1"},    // bad email
		{"name": "Ann", "email": "ann@x.com", "password": "short"},         // short password
	}
	for _, body := range cases {
		res, err := env.app.Test(jsonRequest(t, "POST", "/api/accounts/signup", body), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	}
}

func TestSignupStoreFailureIsServerError(t *testing.T) {
	env := newTestEnv(t)

	// Break the insert path without touching the duplicate pre-check: the
	// lookup still finds no row, but Create references the missing column.
	require.NoError(t, env.db.Migrator().DropColumn(&models.Account{}, "bio"))

	res, err := env.app.Test(jsonRequest(t, "POST", "/api/accounts/signup", fiber.Map{
		"name":     "Ann",
		"email":    "ann@x.com",
		"password": "secret1",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, res.StatusCode)
	assert.NotEqual(t, "Email already registered", decodeEnvelope(t, res).Message)
}

func TestGetProfileSanitized(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.signup(t, "Ann", "ann@x.com", "secret1")

	res, err := env.app.Test(withToken(httptest.NewRequest("GET", "/api/accounts/profile", nil), token), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	env2 := decodeEnvelope(t, res)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(env2.Data, &raw))
	assert.Contains(t, raw, "email")
	assert.NotContains(t, raw, "password")
}

func TestGetProfileRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.app.Test(httptest.NewRequest("GET", "/api/accounts/profile", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}

func TestUpdateProfilePartial(t *testing.T) {
	env := newTestEnv(t)
	account, token := env.signup(t, "Ann", "ann@x.com", "secret1")

	// Seed the rest of the profile first.
	req := multipartRequest(t, "PUT", "/api/accounts/profile", map[string]string{
		"bio":       "painter",
		"website":   "https://ann.example",
		"instagram": "ann_paints",
	}, "", "", nil)
	res, err := env.app.Test(withToken(req, token), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	// A later update touching only the bio must not clear anything else.
	req = multipartRequest(t, "PUT", "/api/accounts/profile", map[string]string{
		"bio": "oil painter",
	}, "", "", nil)
	res, err = env.app.Test(withToken(req, token), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var stored models.Account
	require.NoError(t, env.db.First(&stored, account.ID).Error)
	assert.Equal(t, "Ann", stored.Name)
	assert.Equal(t, "oil painter", stored.Bio)
	assert.Equal(t, "https://ann.example", stored.Website)
	assert.Equal(t, "ann_paints", stored.Instagram)
}

func TestUpdateProfileImage(t *testing.T) {
	env := newTestEnv(t)
	account, token := env.signup(t, "Ann", "ann@x.com", "secret1")

	req := multipartRequest(t, "PUT", "/api/accounts/profile", nil,
		"profile_image", "me.png", []byte("fake image bytes"))
	res, err := env.app.Test(withToken(req, token), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	assert.Equal(t, 1, env.uploader.calls)
	assert.Equal(t, "profiles", env.uploader.lastFolder)
	assert.Equal(t, storage.ProfileTransform(), env.uploader.lastTransform)

	var stored models.Account
	require.NoError(t, env.db.First(&stored, account.ID).Error)
	assert.Equal(t, "https://img.test/profiles/me.png", stored.ProfileImage)
}
