package session

import "errors"

var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrMustJoinFirst     = errors.New("must join room first")
	ErrInvalidCredential = errors.New("invalid credential")
)

// RoomInfo is the slice of room metadata the gate needs.
type RoomInfo struct {
	ID        string
	IsPrivate bool
	OwnerID   string
}

// Principal describes the authenticated state of a connection attempt.
// BadCredential is set when a bearer token was presented but failed
// verification; public rooms still admit such callers as anonymous.
type Principal struct {
	Identity      *Identity
	BadCredential bool
}

// Admit decides whether a connection attempt may attach to a room.
//
// Public rooms admit everyone. When the caller is authenticated but not
// yet a recorded member, provision is returned true to tell the caller to
// lazily create the membership record; that side effect is advisory and
// must never block admission.
//
// Private rooms admit only the owner and recorded members.
func Admit(room RoomInfo, p Principal, isMember bool) (provision bool, err error) {
	if !room.IsPrivate {
		return p.Identity != nil && !isMember, nil
	}
	if p.Identity == nil {
		if p.BadCredential {
			return false, ErrInvalidCredential
		}
		return false, ErrMustJoinFirst
	}
	if p.Identity.UserID == room.OwnerID || isMember {
		return false, nil
	}
	return false, ErrMustJoinFirst
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return ReasonRoomNotFound
	case errors.Is(err, ErrInvalidCredential):
		return ReasonInvalidCredential
	default:
		return ReasonMustJoinFirst
	}
}
