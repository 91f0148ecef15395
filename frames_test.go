package interview_coach

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeClientFrame(t *testing.T) {
	tests := []struct {
		name  string
		frame string
		want  clientFrame
	}{
		{"audio", `{"type":"audio","data":"AAAA"}`, audioFrame{audio: []byte{0, 0, 0}}},
		{"empty audio", `{"type":"audio"}`, audioFrame{audio: []byte{}}},
		{"commit", `{"type":"commit"}`, commitFrame{}},
		{"text", `{"type":"text","data":"Bonjour"}`, textFrame{text: "Bonjour"}},
		{"interrupt", `{"type":"interrupt"}`, interruptFrame{}},
		{"end", `{"type":"end"}`, endFrame{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeClientFrame([]byte(tt.frame))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeClientFrame_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		frame     string
		frameType string
	}{
		{"not json", `hello`, ""},
		{"missing type", `{"data":"AAAA"}`, ""},
		{"unknown type", `{"type":"dance"}`, "dance"},
		{"bad base64", `{"type":"audio","data":"%%%"}`, "audio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeClientFrame([]byte(tt.frame))
			assert.Nil(t, got)
			var rerr *RelayError
			require.True(t, errors.As(err, &rerr))
			assert.Equal(t, tt.frameType, rerr.FrameType)
		})
	}
}

func TestOutboundFrames(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
		want  string
	}{
		{"audio", audioOut([]byte{0, 0, 0}), `{"type":"audio","data":"AAAA"}`},
		{"transcript", transcriptOut("user", "Bonjour"), `{"type":"transcript","role":"user","text":"Bonjour"}`},
		{"status", statusOut(StatusSpeaking), `{"type":"status","status":"speaking"}`},
		{"error", errorOut(errors.New("boom")), `{"type":"error","message":"boom"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.frame)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}
