package session

import "encoding/json"

// Frame is the structured wire shape sent to clients. Inbound frames may
// be either a Frame of type "code" or a raw text frame holding the entire
// document; both decode to a full-document update.
type Frame struct {
	Type   string `json:"type"` // "code", "user_joined", "user_left", "error"
	Code   string `json:"code,omitempty"`
	User   string `json:"user,omitempty"`
	Reason string `json:"reason,omitempty"`
}

const (
	FrameCode       = "code"
	FrameUserJoined = "user_joined"
	FrameUserLeft   = "user_left"
	FrameError      = "error"
)

// Machine-readable rejection reasons carried on error frames.
const (
	ReasonRoomNotFound      = "room-not-found"
	ReasonMustJoinFirst     = "must-join-first"
	ReasonInvalidCredential = "invalid-credential"
)

func codeFrame(text string) Frame { return Frame{Type: FrameCode, Code: text} }

func errorFrame(reason string) Frame { return Frame{Type: FrameError, Reason: reason} }

// decodeUpdate extracts the full document text from an inbound frame.
// A JSON "code" frame yields its code field; anything else is taken
// verbatim as the document.
func decodeUpdate(data []byte) string {
	var f Frame
	if err := json.Unmarshal(data, &f); err == nil && f.Type == FrameCode {
		return f.Code
	}
	return string(data)
}
