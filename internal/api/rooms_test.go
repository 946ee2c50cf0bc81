package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codepair/internal/models"
)

func strptr(s string) *string { return &s }

func boolptr(b bool) *bool { return &b }

func TestCreateRoom(t *testing.T) {
	e := newTestEnv(t, nil, "")
	token, userID := e.register(t, "alice")

	room := e.createRoom(t, token, models.CreateRoomRequest{Name: "interview prep"})
	assert.NotEmpty(t, room.RoomID)
	assert.Equal(t, "interview prep", room.Name)
	assert.Equal(t, userID, room.OwnerID)
	assert.Equal(t, "alice", room.OwnerUsername)
	assert.True(t, room.AIAutocompleteEnabled, "autocomplete defaults on")

	// The creator is recorded as a participant.
	resp := e.request(t, http.MethodGet, "/rooms/"+room.RoomID+"/users", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	participants := decode[[]models.ParticipantResponse](t, resp)
	require.Len(t, participants, 1)
	assert.Equal(t, "alice", participants[0].Username)
}

func TestCreateRoomValidation(t *testing.T) {
	e := newTestEnv(t, nil, "")
	token, _ := e.register(t, "alice")

	resp := e.request(t, http.MethodPost, "/rooms", "", models.CreateRoomRequest{Name: "x"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = e.request(t, http.MethodPost, "/rooms", token, models.CreateRoomRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = e.request(t, http.MethodPost, "/rooms", token, models.CreateRoomRequest{
		Name: "secret", IsPrivate: true,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "private rooms need a password")
}

func TestListRoomsVisibility(t *testing.T) {
	e := newTestEnv(t, nil, "")
	aliceToken, _ := e.register(t, "alice")
	bobToken, _ := e.register(t, "bob")

	e.createRoom(t, aliceToken, models.CreateRoomRequest{Name: "public room"})
	private := e.createRoom(t, aliceToken, models.CreateRoomRequest{
		Name: "alice's private", IsPrivate: true, Password: strptr("pw"),
	})

	resp := e.request(t, http.MethodGet, "/rooms", bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rooms := decode[[]models.RoomResponse](t, resp)
	require.Len(t, rooms, 1)
	assert.Equal(t, "public room", rooms[0].Name)

	resp = e.request(t, http.MethodGet, "/rooms", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rooms = decode[[]models.RoomResponse](t, resp)
	assert.Len(t, rooms, 2, "owners see their own private rooms")

	resp = e.request(t, http.MethodGet, "/rooms/"+private.RoomID, bobToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = e.request(t, http.MethodGet, "/rooms/nope", bobToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestJoinRoom(t *testing.T) {
	e := newTestEnv(t, nil, "")
	aliceToken, _ := e.register(t, "alice")
	bobToken, _ := e.register(t, "bob")

	room := e.createRoom(t, aliceToken, models.CreateRoomRequest{Name: "open"})

	resp := e.request(t, http.MethodPost, "/rooms/"+room.RoomID+"/join", bobToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Joining again is a no-op.
	resp = e.request(t, http.MethodPost, "/rooms/"+room.RoomID+"/join", bobToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = e.request(t, http.MethodGet, "/rooms/"+room.RoomID+"/users", bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]models.ParticipantResponse](t, resp), 2)
}

func TestJoinPrivateRoom(t *testing.T) {
	e := newTestEnv(t, nil, "")
	aliceToken, _ := e.register(t, "alice")
	bobToken, _ := e.register(t, "bob")

	room := e.createRoom(t, aliceToken, models.CreateRoomRequest{
		Name: "secret", IsPrivate: true, Password: strptr("letmein"),
	})

	resp := e.request(t, http.MethodPost, "/rooms/"+room.RoomID+"/join", bobToken, models.JoinRoomRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = e.request(t, http.MethodPost, "/rooms/"+room.RoomID+"/join", bobToken,
		models.JoinRoomRequest{Password: strptr("wrong")})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = e.request(t, http.MethodPost, "/rooms/"+room.RoomID+"/join", bobToken,
		models.JoinRoomRequest{Password: strptr("letmein")})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLeaveRoom(t *testing.T) {
	e := newTestEnv(t, nil, "")
	aliceToken, _ := e.register(t, "alice")
	bobToken, _ := e.register(t, "bob")

	room := e.createRoom(t, aliceToken, models.CreateRoomRequest{Name: "open"})
	resp := e.request(t, http.MethodPost, "/rooms/"+room.RoomID+"/join", bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = e.request(t, http.MethodPost, "/rooms/"+room.RoomID+"/leave", aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "owner cannot leave")

	resp = e.request(t, http.MethodPost, "/rooms/"+room.RoomID+"/leave", bobToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = e.request(t, http.MethodPost, "/rooms/"+room.RoomID+"/leave", bobToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "leaving twice reports not a participant")
}

func TestUpdateRoomOwnerOnly(t *testing.T) {
	e := newTestEnv(t, nil, "")
	aliceToken, _ := e.register(t, "alice")
	bobToken, _ := e.register(t, "bob")

	room := e.createRoom(t, aliceToken, models.CreateRoomRequest{Name: "before"})

	resp := e.request(t, http.MethodPatch, "/rooms/"+room.RoomID, bobToken,
		models.UpdateRoomRequest{Name: strptr("hijacked")})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = e.request(t, http.MethodPatch, "/rooms/"+room.RoomID, aliceToken,
		models.UpdateRoomRequest{Name: strptr("after"), AIAutocompleteEnabled: boolptr(false)})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[models.RoomResponse](t, resp)
	assert.Equal(t, "after", updated.Name)
	assert.False(t, updated.AIAutocompleteEnabled)
}

func TestDeleteRoomOwnerOnly(t *testing.T) {
	e := newTestEnv(t, nil, "")
	aliceToken, _ := e.register(t, "alice")
	bobToken, _ := e.register(t, "bob")

	room := e.createRoom(t, aliceToken, models.CreateRoomRequest{Name: "doomed"})

	resp := e.request(t, http.MethodDelete, "/rooms/"+room.RoomID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = e.request(t, http.MethodDelete, "/rooms/"+room.RoomID, aliceToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = e.request(t, http.MethodGet, "/rooms/"+room.RoomID, aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
