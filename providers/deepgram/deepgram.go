// Package deepgram transcribes the candidate's speech with Deepgram's live
// streaming API.
package deepgram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	api "github.com/deepgram/deepgram-go-sdk/v3/pkg/api/listen/v1/websocket/interfaces"
	interfaces "github.com/deepgram/deepgram-go-sdk/v3/pkg/client/interfaces"
	client "github.com/deepgram/deepgram-go-sdk/v3/pkg/client/listen"

	"github.com/agnivade/interview_coach/providers"
)

const (
	providerName = "deepgram"
	defaultModel = "nova-3"

	// ExtensionModel overrides the recognition model.
	ExtensionModel = "deepgram.model"
	// ExtensionKeyterms boosts domain vocabulary such as school names.
	ExtensionKeyterms = "deepgram.keyterms"
)

// dgWriter is the part of the SDK websocket client a session uses.
type dgWriter interface {
	io.Writer
	Stop()
}

// streamHandler receives the SDK callbacks on buffered channels.
type streamHandler struct {
	openChan          chan *api.OpenResponse
	messageChan       chan *api.MessageResponse
	metadataChan      chan *api.MetadataResponse
	speechStartedChan chan *api.SpeechStartedResponse
	utteranceEndChan  chan *api.UtteranceEndResponse
	closeChan         chan *api.CloseResponse
	errorChan         chan *api.ErrorResponse
	unhandledChan     chan *[]byte
}

func newStreamHandler() *streamHandler {
	return &streamHandler{
		openChan:          make(chan *api.OpenResponse, 1),
		messageChan:       make(chan *api.MessageResponse, 32),
		metadataChan:      make(chan *api.MetadataResponse, 1),
		speechStartedChan: make(chan *api.SpeechStartedResponse, 4),
		utteranceEndChan:  make(chan *api.UtteranceEndResponse, 4),
		closeChan:         make(chan *api.CloseResponse, 1),
		errorChan:         make(chan *api.ErrorResponse, 1),
		unhandledChan:     make(chan *[]byte, 1),
	}
}

func (h *streamHandler) GetOpen() []*chan *api.OpenResponse {
	return []*chan *api.OpenResponse{&h.openChan}
}

func (h *streamHandler) GetMessage() []*chan *api.MessageResponse {
	return []*chan *api.MessageResponse{&h.messageChan}
}

func (h *streamHandler) GetMetadata() []*chan *api.MetadataResponse {
	return []*chan *api.MetadataResponse{&h.metadataChan}
}

func (h *streamHandler) GetSpeechStarted() []*chan *api.SpeechStartedResponse {
	return []*chan *api.SpeechStartedResponse{&h.speechStartedChan}
}

func (h *streamHandler) GetUtteranceEnd() []*chan *api.UtteranceEndResponse {
	return []*chan *api.UtteranceEndResponse{&h.utteranceEndChan}
}

func (h *streamHandler) GetClose() []*chan *api.CloseResponse {
	return []*chan *api.CloseResponse{&h.closeChan}
}

func (h *streamHandler) GetError() []*chan *api.ErrorResponse {
	return []*chan *api.ErrorResponse{&h.errorChan}
}

func (h *streamHandler) GetUnhandled() []*chan *[]byte {
	return []*chan *[]byte{&h.unhandledChan}
}

// Provider opens Deepgram live transcription streams.
type Provider struct {
	apiKey string
}

// NewProvider returns a provider authenticating with apiKey.
func NewProvider(apiKey string) *Provider {
	client.InitWithDefault()
	return &Provider{apiKey: apiKey}
}

func (p *Provider) Name() string {
	return providerName
}

// NewSession dials a live stream. The stream lives until ctx is done or the
// session is closed.
func (p *Provider) NewSession(ctx context.Context, config providers.SessionConfig) (providers.Session, error) {
	if p.apiKey == "" {
		return nil, errors.New("deepgram: missing API key")
	}

	handler := newStreamHandler()
	dgClient, err := client.NewWSUsingChan(ctx, "", &interfaces.ClientOptions{
		APIKey:          p.apiKey,
		EnableKeepAlive: true,
	}, liveOptions(config), handler)
	if err != nil {
		return nil, fmt.Errorf("deepgram: %w", err)
	}

	if !dgClient.Connect() {
		return nil, errors.New("deepgram: connect failed")
	}

	return &Session{
		ctx:     ctx,
		client:  dgClient,
		handler: handler,
		interim: config.InterimResults,
	}, nil
}

func liveOptions(config providers.SessionConfig) *interfaces.LiveTranscriptionOptions {
	opts := &interfaces.LiveTranscriptionOptions{
		Model:          defaultModel,
		Language:       config.LanguageCode,
		Punctuate:      true,
		SmartFormat:    true,
		Encoding:       "linear16",
		Channels:       1,
		SampleRate:     config.SampleRate,
		VadEvents:      true,
		InterimResults: config.InterimResults,
		UtteranceEndMs: "1000",
	}
	if m, ok := config.Extensions[ExtensionModel].(string); ok && m != "" {
		opts.Model = m
	}
	if terms, ok := config.Extensions[ExtensionKeyterms].([]string); ok {
		opts.Keyterm = terms
	}
	return opts
}

// Session is one Deepgram live stream.
type Session struct {
	ctx     context.Context
	client  dgWriter
	handler *streamHandler
	interim bool
}

func (s *Session) SendAudio(audioData []byte) error {
	_, err := s.client.Write(audioData)
	return err
}

// ReceiveTranscription blocks until a transcript is available. Interim
// transcripts are returned only when the session asked for them.
func (s *Session) ReceiveTranscription() (providers.TranscriptionResult, error) {
	for {
		select {
		case msg := <-s.handler.messageChan:
			if res, ok := s.toResult(msg); ok {
				return res, nil
			}
		case e := <-s.handler.errorChan:
			if e != nil {
				return providers.TranscriptionResult{}, fmt.Errorf("deepgram %s: %s", e.Type, e.Description)
			}
		case <-s.handler.closeChan:
			return providers.TranscriptionResult{}, io.EOF
		case <-s.handler.openChan:
		case <-s.handler.metadataChan:
		case <-s.handler.speechStartedChan:
		case <-s.handler.utteranceEndChan:
		case <-s.handler.unhandledChan:
		case <-s.ctx.Done():
			if errors.Is(s.ctx.Err(), context.Canceled) {
				return providers.TranscriptionResult{}, io.EOF
			}
			return providers.TranscriptionResult{}, s.ctx.Err()
		}
	}
}

func (s *Session) toResult(msg *api.MessageResponse) (providers.TranscriptionResult, bool) {
	if msg == nil || len(msg.Channel.Alternatives) == 0 {
		return providers.TranscriptionResult{}, false
	}
	if !msg.IsFinal && !s.interim {
		return providers.TranscriptionResult{}, false
	}

	best := msg.Channel.Alternatives[0]
	text := strings.TrimSpace(best.Transcript)
	if text == "" {
		return providers.TranscriptionResult{}, false
	}
	return providers.TranscriptionResult{
		Text:         text,
		IsFinal:      msg.IsFinal,
		Confidence:   float32(best.Confidence),
		ProviderName: providerName,
		ReceivedAt:   time.Now(),
	}, true
}

// Close stops the stream. The handler channels stay open because the SDK
// may still deliver in-flight messages to them.
func (s *Session) Close() error {
	if s.client != nil {
		s.client.Stop()
	}
	return nil
}
