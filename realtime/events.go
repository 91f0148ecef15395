package realtime

import (
	"encoding/base64"
	"encoding/json"

	"github.com/agnivade/interview_coach/session"
)

// Upstream frame types.
const (
	typeSessionUpdate      = "session.update"
	typeAudioAppend        = "input_audio_buffer.append"
	typeAudioCommit        = "input_audio_buffer.commit"
	typeItemCreate         = "conversation.item.create"
	typeResponseCreate     = "response.create"
	typeResponseCancel     = "response.cancel"
	typeSessionCreated     = "session.created"
	typeSessionUpdated     = "session.updated"
	typeResponseCreated    = "response.created"
	typeResponseDone       = "response.done"
	typeAudioDelta         = "response.audio.delta"
	typeTranscriptDelta    = "response.audio_transcript.delta"
	typeInputTranscription = "conversation.item.input_audio_transcription.completed"
	typeSpeechStarted      = "input_audio_buffer.speech_started"
	typeSpeechStopped      = "input_audio_buffer.speech_stopped"
	typeError              = "error"
)

// Outbound frames.

type sessionUpdate struct {
	Type    string        `json:"type"`
	Session sessionParams `json:"session"`
}

type sessionParams struct {
	Modalities              []string             `json:"modalities"`
	Instructions            string               `json:"instructions"`
	Voice                   string               `json:"voice"`
	InputAudioFormat        string               `json:"input_audio_format"`
	OutputAudioFormat       string               `json:"output_audio_format"`
	InputAudioTranscription *transcriptionParams `json:"input_audio_transcription,omitempty"`
	TurnDetection           turnDetection        `json:"turn_detection"`
}

type transcriptionParams struct {
	Model string `json:"model"`
}

type turnDetection struct {
	Type              string  `json:"type"`
	Threshold         float64 `json:"threshold"`
	PrefixPaddingMs   int     `json:"prefix_padding_ms"`
	SilenceDurationMs int     `json:"silence_duration_ms"`
}

type audioAppend struct {
	Type  string `json:"type"`
	Audio string `json:"audio"`
}

type bareFrame struct {
	Type string `json:"type"`
}

type itemCreate struct {
	Type string      `json:"type"`
	Item messageItem `json:"item"`
}

type messageItem struct {
	Type    string        `json:"type"`
	Role    string        `json:"role"`
	Content []itemContent `json:"content"`
}

type itemContent struct {
	Type       string `json:"type"`
	Text       string `json:"text,omitempty"`
	Transcript string `json:"transcript,omitempty"`
}

func newSessionUpdate(cfg Config, instructions string) sessionUpdate {
	u := sessionUpdate{
		Type: typeSessionUpdate,
		Session: sessionParams{
			Modalities:        []string{"text", "audio"},
			Instructions:      instructions,
			Voice:             cfg.Voice,
			InputAudioFormat:  cfg.InputAudioFormat,
			OutputAudioFormat: cfg.OutputAudioFormat,
			TurnDetection: turnDetection{
				Type:              "server_vad",
				Threshold:         cfg.VAD.Threshold,
				PrefixPaddingMs:   cfg.VAD.PrefixPaddingMs,
				SilenceDurationMs: cfg.VAD.SilenceDurationMs,
			},
		},
	}
	if cfg.TranscriptionModel != "" {
		u.Session.InputAudioTranscription = &transcriptionParams{Model: cfg.TranscriptionModel}
	}
	return u
}

func newTextItem(text string) itemCreate {
	return itemCreate{
		Type: typeItemCreate,
		Item: messageItem{
			Type:    "message",
			Role:    string(session.RoleUser),
			Content: []itemContent{{Type: "input_text", Text: text}},
		},
	}
}

// Inbound frames. ServerEvent is closed over the types below; anything the
// client does not act on decodes to Ignored.

type ServerEvent interface {
	serverEvent()
}

type SessionCreated struct{ SessionID string }
type SessionUpdated struct{ SessionID string }
type ResponseCreated struct{ ResponseID string }

type ResponseDone struct {
	ResponseID string
	Status     string
	// Transcript is the spoken text reported in the response output, if any.
	Transcript string
}

type AudioDelta struct {
	ResponseID string
	Audio      []byte
}

type TranscriptDelta struct {
	ResponseID string
	Delta      string
}

type InputTranscriptionCompleted struct {
	ItemID     string
	Transcript string
}

type SpeechStarted struct {
	ItemID       string
	AudioStartMs int
}

type SpeechStopped struct {
	ItemID     string
	AudioEndMs int
}

type ErrorFrame struct{ Err *ServiceError }

type Ignored struct{ Type string }

func (SessionCreated) serverEvent()              {}
func (SessionUpdated) serverEvent()              {}
func (ResponseCreated) serverEvent()             {}
func (ResponseDone) serverEvent()                {}
func (AudioDelta) serverEvent()                  {}
func (TranscriptDelta) serverEvent()             {}
func (InputTranscriptionCompleted) serverEvent() {}
func (SpeechStarted) serverEvent()               {}
func (SpeechStopped) serverEvent()               {}
func (ErrorFrame) serverEvent()                  {}
func (Ignored) serverEvent()                     {}

type wireEvent struct {
	Type         string          `json:"type"`
	ResponseID   string          `json:"response_id"`
	ItemID       string          `json:"item_id"`
	Delta        *string         `json:"delta"`
	Transcript   *string         `json:"transcript"`
	AudioStartMs int             `json:"audio_start_ms"`
	AudioEndMs   int             `json:"audio_end_ms"`
	Session      *wireSession    `json:"session"`
	Response     *wireResponse   `json:"response"`
	Error        json.RawMessage `json:"error"`
}

type wireSession struct {
	ID string `json:"id"`
}

type wireResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Output []struct {
		Type    string        `json:"type"`
		Content []itemContent `json:"content"`
	} `json:"output"`
}

type wireError struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DecodeServerEvent validates one upstream frame. Malformed frames and frames
// missing a required field yield a *ProtocolError.
func DecodeServerEvent(data []byte) (ServerEvent, error) {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, &ProtocolError{Reason: "invalid JSON", Err: err}
	}
	if w.Type == "" {
		return nil, &ProtocolError{Reason: "missing type"}
	}

	switch w.Type {
	case typeSessionCreated, typeSessionUpdated:
		var id string
		if w.Session != nil {
			id = w.Session.ID
		}
		if w.Type == typeSessionCreated {
			return SessionCreated{SessionID: id}, nil
		}
		return SessionUpdated{SessionID: id}, nil

	case typeResponseCreated:
		if w.Response == nil {
			return nil, &ProtocolError{Type: w.Type, Reason: "missing response"}
		}
		return ResponseCreated{ResponseID: w.Response.ID}, nil

	case typeResponseDone:
		if w.Response == nil {
			return nil, &ProtocolError{Type: w.Type, Reason: "missing response"}
		}
		return ResponseDone{
			ResponseID: w.Response.ID,
			Status:     w.Response.Status,
			Transcript: w.Response.spokenTranscript(),
		}, nil

	case typeAudioDelta:
		if w.Delta == nil {
			return nil, &ProtocolError{Type: w.Type, Reason: "missing delta"}
		}
		audio, err := base64.StdEncoding.DecodeString(*w.Delta)
		if err != nil {
			return nil, &ProtocolError{Type: w.Type, Reason: "invalid base64 audio", Err: err}
		}
		return AudioDelta{ResponseID: w.ResponseID, Audio: audio}, nil

	case typeTranscriptDelta:
		if w.Delta == nil {
			return nil, &ProtocolError{Type: w.Type, Reason: "missing delta"}
		}
		return TranscriptDelta{ResponseID: w.ResponseID, Delta: *w.Delta}, nil

	case typeInputTranscription:
		if w.Transcript == nil {
			return nil, &ProtocolError{Type: w.Type, Reason: "missing transcript"}
		}
		return InputTranscriptionCompleted{ItemID: w.ItemID, Transcript: *w.Transcript}, nil

	case typeSpeechStarted:
		return SpeechStarted{ItemID: w.ItemID, AudioStartMs: w.AudioStartMs}, nil

	case typeSpeechStopped:
		return SpeechStopped{ItemID: w.ItemID, AudioEndMs: w.AudioEndMs}, nil

	case typeError:
		var we wireError
		if len(w.Error) > 0 {
			if err := json.Unmarshal(w.Error, &we); err != nil {
				return nil, &ProtocolError{Type: w.Type, Reason: "invalid error body", Err: err}
			}
		}
		if we.Message == "" {
			we.Message = "Unknown error"
		}
		return ErrorFrame{Err: &ServiceError{Type: we.Type, Code: we.Code, Message: we.Message}}, nil

	default:
		return Ignored{Type: w.Type}, nil
	}
}

func (r *wireResponse) spokenTranscript() string {
	var out string
	for _, item := range r.Output {
		if item.Type != "message" {
			continue
		}
		for _, c := range item.Content {
			if c.Type == "audio" && c.Transcript != "" {
				out += c.Transcript
			}
		}
	}
	return out
}

// EventKind tags the events delivered to the owner of a Client.
type EventKind int

const (
	EventSessionReady EventKind = iota
	EventAudio
	EventTranscriptDelta
	EventUserTranscript
	EventResponseStarted
	EventResponseDone
	EventSpeechStarted
	EventSpeechStopped
	EventError
)

var eventKindNames = [...]string{
	EventSessionReady:    "session_ready",
	EventAudio:           "audio",
	EventTranscriptDelta: "transcript_delta",
	EventUserTranscript:  "user_transcript",
	EventResponseStarted: "response_started",
	EventResponseDone:    "response_done",
	EventSpeechStarted:   "speech_started",
	EventSpeechStopped:   "speech_stopped",
	EventError:           "error",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}

// Event is what the receive loop emits after applying its own state changes.
type Event struct {
	Kind       EventKind
	ResponseID string
	// ItemID names the input audio item of EventSpeechStopped and
	// EventUserTranscript.
	ItemID string
	Role   session.Role
	// Text is a transcript fragment for EventTranscriptDelta, the complete
	// utterance for EventUserTranscript and the concatenated assistant text
	// for EventResponseDone.
	Text  string
	Audio []byte
	// Interrupted marks an EventSpeechStarted that cancelled a response, and
	// an EventResponseDone for a cancelled response.
	Interrupted bool
	Err         error
}
