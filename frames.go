package interview_coach

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

// Client frame types.
const (
	FrameAudio      = "audio"
	FrameCommit     = "commit"
	FrameText       = "text"
	FrameInterrupt  = "interrupt"
	FrameEnd        = "end"
	FrameTranscript = "transcript"
	FrameStatus     = "status"
	FrameError      = "error"
)

// Status values carried by status frames.
const (
	StatusConnected = "connected"
	StatusSpeaking  = "speaking"
	StatusListening = "listening"
)

// Frame is the JSON shape of every frame on the client socket, in both
// directions. Data carries base64 audio on audio frames and the typed text
// on inbound text frames.
type Frame struct {
	Type    string `json:"type"`
	Data    string `json:"data,omitempty"`
	Role    string `json:"role,omitempty"`
	Text    string `json:"text,omitempty"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

// clientFrame is the decoded form of an inbound frame.
type clientFrame interface {
	frameType() string
}

type audioFrame struct{ audio []byte }
type commitFrame struct{}
type textFrame struct{ text string }
type interruptFrame struct{}
type endFrame struct{}

func (audioFrame) frameType() string     { return FrameAudio }
func (commitFrame) frameType() string    { return FrameCommit }
func (textFrame) frameType() string      { return FrameText }
func (interruptFrame) frameType() string { return FrameInterrupt }
func (endFrame) frameType() string       { return FrameEnd }

var errUnknownFrame = errors.New("unknown frame type")

// decodeClientFrame validates one inbound frame. Failures are *RelayError.
func decodeClientFrame(data []byte) (clientFrame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, &RelayError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	switch f.Type {
	case FrameAudio:
		audio, err := base64.StdEncoding.DecodeString(f.Data)
		if err != nil {
			return nil, &RelayError{FrameType: f.Type, Err: fmt.Errorf("invalid base64 audio: %w", err)}
		}
		return audioFrame{audio: audio}, nil
	case FrameCommit:
		return commitFrame{}, nil
	case FrameText:
		return textFrame{text: f.Data}, nil
	case FrameInterrupt:
		return interruptFrame{}, nil
	case FrameEnd:
		return endFrame{}, nil
	case "":
		return nil, &RelayError{Err: errors.New("missing frame type")}
	default:
		return nil, &RelayError{FrameType: f.Type, Err: errUnknownFrame}
	}
}

func audioOut(audio []byte) Frame {
	return Frame{Type: FrameAudio, Data: base64.StdEncoding.EncodeToString(audio)}
}

func transcriptOut(role, text string) Frame {
	return Frame{Type: FrameTranscript, Role: role, Text: text}
}

func statusOut(status string) Frame {
	return Frame{Type: FrameStatus, Status: status}
}

func errorOut(err error) Frame {
	return Frame{Type: FrameError, Message: err.Error()}
}
