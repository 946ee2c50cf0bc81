package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"codepair/internal/api"
	"codepair/internal/exec"
	"codepair/internal/llm"
	"codepair/internal/models"
	"codepair/internal/routers"
	"codepair/internal/store"
	"codepair/internal/testhelpers"
)

var testSecret = []byte("test-secret")

type testEnv struct {
	server *httptest.Server
}

func newTestEnv(t *testing.T, provider llm.Provider, pistonURL string) *testEnv {
	t.Helper()

	db := testhelpers.SetupTestDB(t)
	handlers, err := api.NewHandlers(
		zap.NewNop(),
		db,
		store.NewMemory(),
		provider,
		exec.NewRunner(pistonURL),
		testSecret,
	)
	require.NoError(t, err)

	server := httptest.NewServer(routers.New(handlers))
	t.Cleanup(server.Close)
	return &testEnv{server: server}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, e.server.URL+path, payload)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// register creates an account and returns its token and user id.
func (e *testEnv) register(t *testing.T, username string) (token, userID string) {
	t.Helper()
	resp := e.request(t, http.MethodPost, "/auth/register", "", models.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "hunter22",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	auth := decode[models.AuthResponse](t, resp)
	return auth.Token, auth.User.ID
}

func (e *testEnv) createRoom(t *testing.T, token string, req models.CreateRoomRequest) models.RoomResponse {
	t.Helper()
	resp := e.request(t, http.MethodPost, "/rooms", token, req)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[models.RoomResponse](t, resp)
}
