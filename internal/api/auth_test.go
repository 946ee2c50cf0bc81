package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codepair/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	e := newTestEnv(t, nil, "")

	resp := e.request(t, http.MethodPost, "/auth/register", "", models.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	auth := decode[models.AuthResponse](t, resp)
	assert.NotEmpty(t, auth.Token)
	assert.Equal(t, "alice", auth.User.Username)
	assert.NotEmpty(t, auth.User.ID)

	resp = e.request(t, http.MethodPost, "/auth/login", "", models.LoginRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode[models.AuthResponse](t, resp)
	assert.Equal(t, auth.User.ID, login.User.ID)
}

func TestRegisterValidation(t *testing.T) {
	e := newTestEnv(t, nil, "")
	e.register(t, "alice")

	cases := []struct {
		name string
		req  models.RegisterRequest
		code int
	}{
		{"missing fields", models.RegisterRequest{Username: "x"}, http.StatusBadRequest},
		{"duplicate email", models.RegisterRequest{
			Username: "other", Email: "alice@example.com", Password: "pw",
		}, http.StatusConflict},
		{"duplicate username", models.RegisterRequest{
			Username: "alice", Email: "fresh@example.com", Password: "pw",
		}, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := e.request(t, http.MethodPost, "/auth/register", "", tc.req)
			assert.Equal(t, tc.code, resp.StatusCode)
		})
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	e := newTestEnv(t, nil, "")
	e.register(t, "alice")

	resp := e.request(t, http.MethodPost, "/auth/login", "", models.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = e.request(t, http.MethodPost, "/auth/login", "", models.LoginRequest{
		Email:    "ghost@example.com",
		Password: "hunter22",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMe(t *testing.T) {
	e := newTestEnv(t, nil, "")
	token, userID := e.register(t, "alice")

	resp := e.request(t, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decode[models.UserResponse](t, resp)
	assert.Equal(t, userID, me.ID)
	assert.Equal(t, "alice", me.Username)

	resp = e.request(t, http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = e.request(t, http.MethodGet, "/auth/me", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
