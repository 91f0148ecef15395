package interview_coach

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/agnivade/interview_coach/providers"
	"github.com/agnivade/interview_coach/realtime"
	"github.com/agnivade/interview_coach/session"
)

const (
	clientWriteWait = 10 * time.Second

	// maxClientFrame bounds one inbound frame; audio chunks are far smaller.
	maxClientFrame = 1 << 20
)

var (
	errShutdown = errors.New("relay shut down")
	errTeardown = errors.New("relay torn down")
)

// Upstream is the voice model connection driven by a Relay.
// *realtime.Client implements it.
type Upstream interface {
	Connect(ctx context.Context) error
	Listen(ctx context.Context) error
	Events() <-chan realtime.Event
	SendAudio(audio []byte) error
	CommitAudio() error
	SendText(text string) error
	CancelResponse() error
	Disconnect() error
}

// UpstreamFactory builds the upstream connection of one session.
// transcribeInput is false when a transcription provider handles the
// candidate's speech instead of the voice model.
type UpstreamFactory func(d *session.Descriptor, transcribeInput bool) Upstream

// clientConn is the part of *websocket.Conn used by the relay.
type clientConn interface {
	NextReader() (messageType int, r io.Reader, err error)
	WriteMessage(messageType int, data []byte) error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
}

// Relay bridges one client socket to one upstream connection for the life
// of a session.
type Relay struct {
	desc       *session.Descriptor
	transcript *session.Transcript
	conn       clientConn
	registry   *Registry
	log        *log.Logger

	newUpstream       UpstreamFactory
	transcribers      []providers.Provider
	transcriberConfig providers.SessionConfig

	// Set in Run before any goroutine starts.
	upstream Upstream
	selector *TranscriberSelector

	ctx    context.Context
	cancel context.CancelCauseFunc
	wg     sync.WaitGroup

	stateMu sync.Mutex
	state   State

	writeMu     sync.Mutex
	writeFailed bool

	registered   bool
	teardownOnce sync.Once
}

// NewRelay returns an idle relay for the session described by desc.
func NewRelay(desc *session.Descriptor, conn clientConn, registry *Registry, newUpstream UpstreamFactory, logger *log.Logger) *Relay {
	ctx, cancel := context.WithCancelCause(context.Background())
	return &Relay{
		desc:        desc,
		transcript:  session.NewTranscript(),
		conn:        conn,
		registry:    registry,
		log:         logger,
		newUpstream: newUpstream,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Descriptor returns the session the relay serves.
func (r *Relay) Descriptor() *session.Descriptor {
	return r.desc
}

// Transcript returns the session transcript. It is safe to read while the
// relay runs.
func (r *Relay) Transcript() *session.Transcript {
	return r.transcript
}

// State returns the current lifecycle state.
func (r *Relay) State() State {
	r.stateMu.Lock()
	defer r.stateMu.Unlock()
	return r.state
}

// Run relays the session until the client ends it, the client socket closes,
// the upstream fails or ctx is cancelled. Teardown always completes before
// Run returns. The error is the reason the session ended abnormally.
func (r *Relay) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, r.Shutdown)
	defer stop()
	defer r.teardown()

	if err := r.registry.Register(r.desc.ID, r); err != nil {
		r.sendError(err)
		return err
	}
	r.registered = true
	sessionsActive.Inc()
	sessionsTotal.Inc()

	r.transition(StateConnecting)
	r.log.Printf("[%s] Starting %s session", r.desc.ID, r.desc.Mode)

	transcribeInput := true
	if len(r.transcribers) > 0 {
		sel, err := NewTranscriberSelector(r.ctx, r.transcribers, r.transcriberConfig, r.log)
		if err != nil {
			r.log.Printf("[%s] Falling back to upstream transcription: %v", r.desc.ID, err)
		} else {
			r.selector = sel
			transcribeInput = false
		}
	}
	r.upstream = r.newUpstream(r.desc, transcribeInput)

	start := time.Now()
	if err := r.upstream.Connect(r.ctx); err != nil {
		relayErrors.WithLabelValues("connect").Inc()
		r.log.Printf("[%s] Upstream connect failed: %v", r.desc.ID, err)
		r.sendError(err)
		return err
	}
	upstreamConnectDuration.Observe(time.Since(start).Seconds())

	r.transition(StateConnected)
	r.send(statusOut(StatusConnected))

	r.wg.Add(2)
	go r.listen()
	go r.forwardEvents()
	if r.selector != nil {
		r.wg.Add(1)
		go r.forwardTranscriptions()
	}

	r.pumpInbound()

	if cause := context.Cause(r.ctx); cause != nil && !errors.Is(cause, errShutdown) {
		return cause
	}
	return nil
}

// Shutdown asks a running relay to stop. The relay finishes its own
// teardown; Shutdown does not wait for it.
func (r *Relay) Shutdown() {
	r.stop(errShutdown)
}

// stop cancels the session with cause and unblocks the inbound pump. Only
// the first cause is kept.
func (r *Relay) stop(cause error) {
	r.cancel(cause)
	_ = r.conn.SetReadDeadline(time.Now())
}

func (r *Relay) teardown() {
	r.teardownOnce.Do(func() {
		r.transition(StateClosing)
		r.stop(errTeardown)

		// Nothing may write to the client once the background tasks are gone.
		r.wg.Wait()

		if r.upstream != nil {
			if err := r.upstream.Disconnect(); err != nil {
				r.log.Printf("[%s] Upstream disconnect: %v", r.desc.ID, err)
			}
		}
		if r.selector != nil {
			r.selector.Close()
		}
		r.registry.Remove(r.desc.ID, r)
		if r.registered {
			sessionsActive.Dec()
		}

		r.transition(StateClosed)
		r.log.Printf("[%s] Session closed with %d transcript entries", r.desc.ID, r.transcript.Len())
	})
}

func (r *Relay) pumpInbound() {
	for {
		data, err := r.readFrame()
		if errors.Is(err, ErrFrameTooLarge) {
			r.frameFailed(&RelayError{Err: err})
			continue
		}
		if err != nil {
			if r.ctx.Err() == nil && websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				r.log.Printf("[%s] Client read error: %v", r.desc.ID, err)
			}
			return
		}

		frame, err := decodeClientFrame(data)
		if err != nil {
			r.frameFailed(err)
			continue
		}
		clientFrames.WithLabelValues(frame.frameType()).Inc()

		if _, ok := frame.(endFrame); ok {
			r.log.Printf("[%s] Client ended the session", r.desc.ID)
			return
		}
		if err := r.dispatch(frame); err != nil {
			r.frameFailed(&RelayError{FrameType: frame.frameType(), Err: err})
		}
	}
}

// readFrame returns the next client message. At most maxClientFrame bytes
// are buffered; the unread rest of a longer message is discarded by the next
// NextReader call.
func (r *Relay) readFrame() ([]byte, error) {
	_, rd, err := r.conn.NextReader()
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(rd, maxClientFrame+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxClientFrame {
		return nil, ErrFrameTooLarge
	}
	return data, nil
}

func (r *Relay) dispatch(frame clientFrame) error {
	switch f := frame.(type) {
	case audioFrame:
		if r.selector != nil {
			if err := r.selector.SendAudio(f.audio); err != nil && !errors.Is(err, io.EOF) {
				r.log.Printf("[%s] Transcriber audio: %v", r.desc.ID, err)
			}
		}
		return r.upstream.SendAudio(f.audio)

	case commitFrame:
		return r.upstream.CommitAudio()

	case textFrame:
		if strings.TrimSpace(f.text) == "" {
			return nil
		}
		if err := r.upstream.SendText(f.text); err != nil {
			return err
		}
		r.recordUser(f.text)
		return nil

	case interruptFrame:
		if err := r.upstream.CancelResponse(); err != nil {
			return err
		}
		r.responseInterrupted()
		return nil
	}
	return nil
}

func (r *Relay) frameFailed(err error) {
	relayErrors.WithLabelValues("frame").Inc()
	r.log.Printf("[%s] %v", r.desc.ID, err)
	r.sendError(err)
}

func (r *Relay) listen() {
	defer r.wg.Done()

	err := r.upstream.Listen(r.ctx)
	if err == nil {
		return
	}
	relayErrors.WithLabelValues("upstream").Inc()
	r.log.Printf("[%s] Upstream connection lost: %v", r.desc.ID, err)
	r.sendError(err)
	r.stop(err)
}

func (r *Relay) forwardEvents() {
	defer r.wg.Done()
	for ev := range r.upstream.Events() {
		r.handleEvent(ev)
	}
}

func (r *Relay) forwardTranscriptions() {
	defer r.wg.Done()
	for {
		res, err := r.selector.ReceiveTranscription()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				r.log.Printf("[%s] Transcription stream: %v", r.desc.ID, err)
			}
			return
		}
		if strings.TrimSpace(res.Text) == "" {
			continue
		}
		r.recordUser(res.Text)
		r.send(transcriptOut(string(session.RoleUser), res.Text))
	}
}

func (r *Relay) handleEvent(ev realtime.Event) {
	upstreamEvents.WithLabelValues(ev.Kind.String()).Inc()

	switch ev.Kind {
	case realtime.EventSessionReady:
		r.log.Printf("[%s] Upstream session configured", r.desc.ID)

	case realtime.EventResponseStarted:
		if r.transition(StateResponseInProgress) {
			r.send(statusOut(StatusSpeaking))
		}

	case realtime.EventAudio:
		r.send(audioOut(ev.Audio))

	case realtime.EventTranscriptDelta:
		r.transcript.Accumulate(ev.ResponseID, session.RoleAssistant, ev.Text)
		r.send(transcriptOut(string(session.RoleAssistant), ev.Text))

	case realtime.EventResponseDone:
		_, streamed := r.transcript.InFlight(ev.ResponseID)
		entry, ok := r.transcript.Commit(ev.ResponseID, session.RoleAssistant, ev.Text, ev.Interrupted)
		if ok {
			r.trackProgress(entry.Role, entry.Content)
			if !streamed {
				r.send(transcriptOut(string(session.RoleAssistant), entry.Content))
			}
		}
		if r.transition(StateAwaitingInput) {
			r.send(statusOut(StatusListening))
		}

	case realtime.EventUserTranscript:
		if e, ok := r.transcript.Fill(ev.ItemID, session.RoleUser, ev.Text); ok {
			r.trackProgress(e.Role, e.Content)
		}
		r.send(transcriptOut(string(session.RoleUser), ev.Text))

	case realtime.EventSpeechStarted:
		if ev.Interrupted {
			r.responseInterrupted()
		}

	case realtime.EventSpeechStopped:
		// The transcription of this turn may complete after the reply to it.
		if r.selector == nil && ev.ItemID != "" {
			r.transcript.Reserve(ev.ItemID, session.RoleUser)
		}

	case realtime.EventError:
		kind := "service"
		var perr *realtime.ProtocolError
		if errors.As(ev.Err, &perr) {
			kind = "protocol"
		}
		relayErrors.WithLabelValues(kind).Inc()
		r.sendError(ev.Err)
	}
}

// responseInterrupted moves a speaking session back to awaiting input.
func (r *Relay) responseInterrupted() {
	r.stateMu.Lock()
	speaking := r.state == StateResponseInProgress
	if speaking {
		r.state = StateAwaitingInput
	}
	r.stateMu.Unlock()

	if speaking {
		interruptions.Inc()
		r.log.Printf("[%s] Response interrupted", r.desc.ID)
		r.send(statusOut(StatusListening))
	}
}

func (r *Relay) recordUser(text string) {
	r.transcript.Append(session.RoleUser, text)
	r.trackProgress(session.RoleUser, text)
}

// trackProgress updates the descriptor from a finalized utterance. The first
// candidate utterance is the presentation; later ones answer the pending
// question, which is the last coach utterance that asked something.
func (r *Relay) trackProgress(role session.Role, content string) {
	switch role {
	case session.RoleUser:
		if !r.desc.MarkPresentationDone() {
			r.desc.AnswerCurrentQuestion()
		}
	case session.RoleAssistant:
		if strings.Contains(content, "?") {
			r.desc.SetCurrentQuestion(strings.TrimSpace(content))
		}
	}
}

// transition moves to state to if the lifecycle allows it. It reports
// whether the state changed.
func (r *Relay) transition(to State) bool {
	r.stateMu.Lock()
	defer r.stateMu.Unlock()
	if r.state == to || !r.state.canTransition(to) {
		return false
	}
	r.state = to
	return true
}

func (r *Relay) sendError(err error) {
	r.send(errorOut(err))
}

// send writes one frame to the client. After the first failed write the
// client is considered gone and frames are dropped.
func (r *Relay) send(f Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		r.log.Printf("[%s] Failed to marshal %s frame: %v", r.desc.ID, f.Type, err)
		return
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	if r.writeFailed {
		return
	}
	_ = r.conn.SetWriteDeadline(time.Now().Add(clientWriteWait))
	if err := r.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		r.writeFailed = true
		r.log.Printf("[%s] Client write error: %v", r.desc.ID, err)
	}
}
