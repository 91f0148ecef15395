// Package providers defines the contract for secondary speech-to-text
// services that transcribe the candidate's audio alongside the voice model.
package providers

import (
	"context"
	"time"
)

// Provider opens streaming transcription sessions on one speech service.
type Provider interface {
	// Name identifies the provider in logs and in selector bookkeeping.
	Name() string

	// NewSession opens a stream. ctx bounds the lifetime of the stream, not
	// only its creation.
	NewSession(ctx context.Context, config SessionConfig) (Session, error)
}

// Session is one streaming transcription of a single audio source.
type Session interface {
	// SendAudio streams raw pcm16 audio in the format given by SessionConfig.
	SendAudio(audioData []byte) error

	// ReceiveTranscription blocks until a result is available. It returns
	// io.EOF once the stream is closed.
	ReceiveTranscription() (TranscriptionResult, error)

	// Close ends the stream. Senders must have stopped before Close is
	// called.
	Close() error
}

// SessionConfig is the provider-agnostic stream configuration.
type SessionConfig struct {
	// SampleRate of the pcm16 audio in Hz.
	SampleRate int

	// LanguageCode is a BCP-47 tag such as "fr-FR".
	LanguageCode string

	InterimResults bool

	// Extensions carries provider specific options.
	Extensions map[string]interface{}
}

// TranscriptionResult is one recognized segment.
type TranscriptionResult struct {
	Text    string
	IsFinal bool

	// Confidence is between 0 and 1 when the provider reports it.
	Confidence float32

	// ProviderName and ReceivedAt are stamped by the provider session when
	// the result arrives.
	ProviderName string
	ReceivedAt   time.Time
}
