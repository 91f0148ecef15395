// Package realtime implements the upstream streaming client: one long-lived
// websocket to the voice model, configured once after connect, carrying audio
// and text in and demultiplexing typed events out.
package realtime

import "time"

const (
	DefaultURL   = "wss://api.openai.com/v1/realtime?model=gpt-4o-realtime-preview-2024-12-17"
	DefaultVoice = "alloy"

	audioFormatPCM16 = "pcm16"
)

// VADConfig configures server-side voice activity detection.
type VADConfig struct {
	// Threshold is the activation threshold between 0 and 1.
	Threshold float64
	// PrefixPaddingMs is the audio kept before detected speech.
	PrefixPaddingMs int
	// SilenceDurationMs is the trailing silence that ends a turn.
	SilenceDurationMs int
}

// Config holds the connection and session settings of one upstream client.
type Config struct {
	URL    string
	APIKey string
	Voice  string

	InputAudioFormat  string
	OutputAudioFormat string

	// TranscriptionModel enables transcription of the candidate's audio by
	// the upstream service. Empty disables it, which is used when a separate
	// transcription provider handles the user's speech.
	TranscriptionModel string

	VAD VADConfig

	// PingInterval is the keep-alive period. A pong must arrive within
	// PingTimeout after it or the connection is considered dead.
	PingInterval time.Duration
	PingTimeout  time.Duration
	WriteTimeout time.Duration

	// MaxProtocolErrors is the number of consecutive malformed frames after
	// which the receive loop gives up.
	MaxProtocolErrors int

	// EventBuffer is the capacity of the events channel.
	EventBuffer int
}

// DefaultConfig returns the settings used by the coaching sessions.
func DefaultConfig() Config {
	return Config{
		URL:                DefaultURL,
		Voice:              DefaultVoice,
		InputAudioFormat:   audioFormatPCM16,
		OutputAudioFormat:  audioFormatPCM16,
		TranscriptionModel: "whisper-1",
		VAD: VADConfig{
			Threshold:         0.5,
			PrefixPaddingMs:   300,
			SilenceDurationMs: 500,
		},
		PingInterval:      20 * time.Second,
		PingTimeout:       20 * time.Second,
		WriteTimeout:      10 * time.Second,
		MaxProtocolErrors: 5,
		EventBuffer:       256,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.URL == "" {
		c.URL = d.URL
	}
	if c.Voice == "" {
		c.Voice = d.Voice
	}
	if c.InputAudioFormat == "" {
		c.InputAudioFormat = d.InputAudioFormat
	}
	if c.OutputAudioFormat == "" {
		c.OutputAudioFormat = d.OutputAudioFormat
	}
	if c.PingInterval <= 0 {
		c.PingInterval = d.PingInterval
	}
	if c.PingTimeout <= 0 {
		c.PingTimeout = d.PingTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.MaxProtocolErrors <= 0 {
		c.MaxProtocolErrors = d.MaxProtocolErrors
	}
	if c.EventBuffer <= 0 {
		c.EventBuffer = d.EventBuffer
	}
	return c
}
