// Package google transcribes the candidate's speech with Google Cloud
// Speech-to-Text streaming recognition.
package google

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/agnivade/interview_coach/providers"
)

const (
	providerName = "google"

	// ExtensionModel selects a recognition model such as "latest_long".
	ExtensionModel = "google.model"
	// ExtensionPhrases are hints for vocabulary the recognizer should favour.
	ExtensionPhrases = "google.phrases"
)

// streamingRecognizeClient is the part of
// speechpb.Speech_StreamingRecognizeClient a session uses.
type streamingRecognizeClient interface {
	Send(*speechpb.StreamingRecognizeRequest) error
	Recv() (*speechpb.StreamingRecognizeResponse, error)
	CloseSend() error
}

// Provider opens streaming recognitions on one Speech client.
type Provider struct {
	open func(ctx context.Context) (streamingRecognizeClient, error)
}

// NewProvider returns a provider using client. The caller owns the client.
func NewProvider(client *speech.Client) *Provider {
	return &Provider{
		open: func(ctx context.Context) (streamingRecognizeClient, error) {
			return client.StreamingRecognize(ctx)
		},
	}
}

func (p *Provider) Name() string {
	return providerName
}

// NewSession opens a recognition stream and sends its configuration.
func (p *Provider) NewSession(ctx context.Context, config providers.SessionConfig) (providers.Session, error) {
	stream, err := p.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("google: open stream: %w", err)
	}

	if err := stream.Send(streamingConfig(config)); err != nil {
		_ = stream.CloseSend()
		return nil, fmt.Errorf("google: configure stream: %w", err)
	}

	return &Session{stream: stream, interim: config.InterimResults}, nil
}

func streamingConfig(config providers.SessionConfig) *speechpb.StreamingRecognizeRequest {
	rc := &speechpb.RecognitionConfig{
		Encoding:                   speechpb.RecognitionConfig_LINEAR16,
		SampleRateHertz:            int32(config.SampleRate),
		LanguageCode:               config.LanguageCode,
		EnableAutomaticPunctuation: true,
	}
	if m, ok := config.Extensions[ExtensionModel].(string); ok && m != "" {
		rc.Model = m
	}
	if phrases, ok := config.Extensions[ExtensionPhrases].([]string); ok && len(phrases) > 0 {
		rc.SpeechContexts = []*speechpb.SpeechContext{{Phrases: phrases}}
	}

	return &speechpb.StreamingRecognizeRequest{
		StreamingRequest: &speechpb.StreamingRecognizeRequest_StreamingConfig{
			StreamingConfig: &speechpb.StreamingRecognitionConfig{
				Config:         rc,
				InterimResults: config.InterimResults,
			},
		},
	}
}

// Session is one streaming recognition.
type Session struct {
	stream  streamingRecognizeClient
	interim bool
}

func (s *Session) SendAudio(audioData []byte) error {
	return s.stream.Send(&speechpb.StreamingRecognizeRequest{
		StreamingRequest: &speechpb.StreamingRecognizeRequest_AudioContent{
			AudioContent: audioData,
		},
	})
}

// ReceiveTranscription blocks until the recognizer returns a usable result.
// A cancelled or finished stream yields io.EOF.
func (s *Session) ReceiveTranscription() (providers.TranscriptionResult, error) {
	for {
		resp, err := s.stream.Recv()
		if errors.Is(err, io.EOF) || status.Code(err) == codes.Canceled {
			return providers.TranscriptionResult{}, io.EOF
		}
		if err != nil {
			return providers.TranscriptionResult{}, fmt.Errorf("google: %w", err)
		}

		for _, r := range resp.GetResults() {
			if !r.GetIsFinal() && !s.interim {
				continue
			}
			if len(r.GetAlternatives()) == 0 {
				continue
			}
			alt := r.GetAlternatives()[0]
			text := strings.TrimSpace(alt.GetTranscript())
			if text == "" {
				continue
			}
			return providers.TranscriptionResult{
				Text:         text,
				IsFinal:      r.GetIsFinal(),
				Confidence:   alt.GetConfidence(),
				ProviderName: providerName,
				ReceivedAt:   time.Now(),
			}, nil
		}
	}
}

// Close half-closes the stream; pending results stay readable until the
// recognizer finishes.
func (s *Session) Close() error {
	return s.stream.CloseSend()
}
