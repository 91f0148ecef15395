package realtime

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/agnivade/interview_coach/session"
)

// wsConn is the subset of *websocket.Conn used by the client, so tests can
// substitute the transport.
type wsConn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

type dialFunc func(ctx context.Context, url string, header http.Header) (wsConn, *http.Response, error)

func websocketDial(handshakeTimeout time.Duration) dialFunc {
	dialer := &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: handshakeTimeout,
		ReadBufferSize:   16384,
		WriteBufferSize:  16384,
	}
	return func(ctx context.Context, url string, header http.Header) (wsConn, *http.Response, error) {
		conn, resp, err := dialer.DialContext(ctx, url, header)
		if err != nil {
			return nil, resp, err
		}
		return conn, resp, nil
	}
}

const (
	responseIdle = iota
	responseActive
	responseCancelling
)

// Client is one connection to the realtime voice service. It is single use:
// Connect, then run Listen in its own goroutine while sending from another,
// then Disconnect.
type Client struct {
	cfg          Config
	instructions string
	log          *log.Logger
	dial         dialFunc

	// mu guards conn and serializes frame writes.
	mu   sync.Mutex
	conn wsConn

	connected atomic.Bool
	listening atomic.Bool

	respMu         sync.Mutex
	respState      int
	activeResponse string
	cancelledID    string

	deadlineMu  sync.Mutex
	readStopped bool

	events     chan Event
	eventsOnce sync.Once
	closeOnce  sync.Once

	// Owned by the receive loop.
	buffers        map[string]*strings.Builder
	protocolErrors int
}

// NewClient returns a disconnected client. instructions is sent once in the
// session configuration frame.
func NewClient(cfg Config, instructions string, logger *log.Logger) *Client {
	cfg = cfg.withDefaults()
	return &Client{
		cfg:          cfg,
		instructions: instructions,
		log:          logger,
		dial:         websocketDial(10 * time.Second),
		events:       make(chan Event, cfg.EventBuffer),
		buffers:      make(map[string]*strings.Builder),
	}
}

// Events returns the stream of demultiplexed upstream events. It is closed
// when Listen returns.
func (c *Client) Events() <-chan Event {
	return c.events
}

// Connected reports whether the transport is open.
func (c *Client) Connected() bool {
	return c.connected.Load()
}

// ResponseInProgress reports whether a response is being generated and has
// not been cancelled.
func (c *Client) ResponseInProgress() bool {
	c.respMu.Lock()
	defer c.respMu.Unlock()
	return c.respState == responseActive
}

// Connect dials the service and sends the session configuration.
func (c *Client) Connect(ctx context.Context) error {
	if c.cfg.APIKey == "" {
		return &ConnectionError{Op: "connect", Err: ErrMissingCredential}
	}
	if c.connected.Load() {
		return nil
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	header.Set("OpenAI-Beta", "realtime=v1")

	conn, resp, err := c.dial(ctx, c.cfg.URL, header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			return &ConnectionError{Op: "connect", Err: fmt.Errorf("%w: %s", ErrCredentialRejected, resp.Status)}
		}
		return &ConnectionError{Op: "connect", Err: err}
	}

	conn.SetPongHandler(func(string) error {
		c.extendReadDeadline(conn)
		return nil
	})

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	c.connected.Store(true)

	data, err := json.Marshal(newSessionUpdate(c.cfg, c.instructions))
	if err == nil {
		err = c.write(data)
	}
	if err != nil {
		c.Disconnect()
		return &ConnectionError{Op: "configure", Err: err}
	}

	c.log.Printf("Connected to realtime API (voice %s)", c.cfg.Voice)
	return nil
}

// SendAudio appends raw pcm16 audio to the input buffer. Audio sent while
// disconnected is dropped.
func (c *Client) SendAudio(audio []byte) error {
	if len(audio) == 0 {
		return nil
	}
	return c.send(audioAppend{
		Type:  typeAudioAppend,
		Audio: base64.StdEncoding.EncodeToString(audio),
	})
}

// CommitAudio marks the end of the user's utterance.
func (c *Client) CommitAudio() error {
	return c.send(bareFrame{Type: typeAudioCommit})
}

// SendText adds a typed user turn and asks for a response.
func (c *Client) SendText(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if err := c.send(newTextItem(text)); err != nil {
		return err
	}
	return c.send(bareFrame{Type: typeResponseCreate})
}

// CancelResponse aborts the response in progress. It does nothing when no
// response is in progress.
func (c *Client) CancelResponse() error {
	_, err := c.cancelResponse()
	return err
}

func (c *Client) cancelResponse() (bool, error) {
	if !c.connected.Load() {
		return false, nil
	}

	c.respMu.Lock()
	if c.respState != responseActive {
		c.respMu.Unlock()
		return false, nil
	}
	c.respState = responseCancelling
	c.cancelledID = c.activeResponse
	c.respMu.Unlock()

	return true, c.send(bareFrame{Type: typeResponseCancel})
}

// Disconnect closes the transport. It is safe to call more than once.
func (c *Client) Disconnect() error {
	var err error
	c.closeOnce.Do(func() {
		c.connected.Store(false)

		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()
		if conn == nil {
			return
		}

		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		err = conn.Close()
		c.log.Println("Disconnected from realtime API")
	})
	return err
}

// Listen runs the receive loop until ctx is cancelled or the transport
// fails. It returns nil on cancellation or after Disconnect, and a
// *ConnectionError otherwise. Listen must be called at most once.
func (c *Client) Listen(ctx context.Context) error {
	if !c.listening.CompareAndSwap(false, true) {
		return errors.New("realtime: Listen called twice")
	}
	defer c.closeEvents()

	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil || !c.connected.Load() {
		return &ConnectionError{Op: "listen", Err: errors.New("not connected")}
	}

	stop := context.AfterFunc(ctx, func() { c.stopReading(conn) })
	defer stop()

	c.extendReadDeadline(conn)

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.keepAlive(conn, done)
	}()
	defer func() {
		close(done)
		wg.Wait()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || !c.connected.Load() {
				return nil
			}
			c.connected.Store(false)
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				return &ConnectionError{Op: "keepalive", Err: err}
			}
			return &ConnectionError{Op: "listen", Err: err}
		}
		if ctx.Err() != nil {
			return nil
		}
		c.extendReadDeadline(conn)

		if err := c.handleFrame(ctx, data); err != nil {
			c.connected.Store(false)
			return err
		}
	}
}

func (c *Client) handleFrame(ctx context.Context, data []byte) error {
	ev, err := DecodeServerEvent(data)
	if err != nil {
		c.protocolErrors++
		c.log.Printf("Realtime protocol error (%d in a row): %v", c.protocolErrors, err)
		c.emit(ctx, Event{Kind: EventError, Err: err})
		if c.protocolErrors >= c.cfg.MaxProtocolErrors {
			return &ConnectionError{
				Op:  "listen",
				Err: fmt.Errorf("%d consecutive malformed frames: %w", c.protocolErrors, err),
			}
		}
		return nil
	}
	c.protocolErrors = 0

	switch ev := ev.(type) {
	case SessionCreated:
		c.log.Printf("Realtime session created: %s", ev.SessionID)

	case SessionUpdated:
		c.emit(ctx, Event{Kind: EventSessionReady})

	case ResponseCreated:
		c.respMu.Lock()
		c.respState = responseActive
		c.activeResponse = ev.ResponseID
		c.respMu.Unlock()
		c.emit(ctx, Event{Kind: EventResponseStarted, ResponseID: ev.ResponseID})

	case AudioDelta:
		if c.discarding(ev.ResponseID) {
			return nil
		}
		c.emit(ctx, Event{Kind: EventAudio, ResponseID: ev.ResponseID, Audio: ev.Audio})

	case TranscriptDelta:
		if ev.Delta == "" || c.discarding(ev.ResponseID) {
			return nil
		}
		buf, ok := c.buffers[ev.ResponseID]
		if !ok {
			buf = &strings.Builder{}
			c.buffers[ev.ResponseID] = buf
		}
		buf.WriteString(ev.Delta)
		c.emit(ctx, Event{
			Kind:       EventTranscriptDelta,
			ResponseID: ev.ResponseID,
			Role:       session.RoleAssistant,
			Text:       ev.Delta,
		})

	case ResponseDone:
		c.emit(ctx, c.finishResponse(ev))

	case InputTranscriptionCompleted:
		if strings.TrimSpace(ev.Transcript) == "" {
			return nil
		}
		c.emit(ctx, Event{Kind: EventUserTranscript, ItemID: ev.ItemID, Role: session.RoleUser, Text: ev.Transcript})

	case SpeechStarted:
		cancelled, err := c.cancelResponse()
		if err != nil {
			c.emit(ctx, Event{Kind: EventError, Err: fmt.Errorf("cancel response: %w", err)})
		}
		if cancelled {
			c.log.Println("Candidate interrupted the response")
		}
		c.emit(ctx, Event{Kind: EventSpeechStarted, Interrupted: cancelled})

	case SpeechStopped:
		c.emit(ctx, Event{Kind: EventSpeechStopped, ItemID: ev.ItemID})

	case ErrorFrame:
		c.log.Printf("Realtime API error: %v", ev.Err)
		c.emit(ctx, Event{Kind: EventError, Err: ev.Err})

	case Ignored:
	}
	return nil
}

// finishResponse settles the response state and returns the completed turn.
// Accumulated deltas take precedence over the transcript in the done frame.
func (c *Client) finishResponse(ev ResponseDone) Event {
	c.respMu.Lock()
	prev := c.respState
	if c.activeResponse == "" || c.activeResponse == ev.ResponseID {
		c.respState = responseIdle
		c.activeResponse = ""
	}
	c.respMu.Unlock()
	cancelled := prev == responseCancelling

	text := ev.Transcript
	if buf, ok := c.buffers[ev.ResponseID]; ok {
		if buf.Len() > 0 {
			text = buf.String()
		}
		delete(c.buffers, ev.ResponseID)
	}

	return Event{
		Kind:        EventResponseDone,
		ResponseID:  ev.ResponseID,
		Role:        session.RoleAssistant,
		Text:        text,
		Interrupted: cancelled || ev.Status == "cancelled",
	}
}

// discarding reports whether output for responseID must be dropped: the
// response was cancelled, or the frame belongs to a response other than the
// active one.
func (c *Client) discarding(responseID string) bool {
	c.respMu.Lock()
	defer c.respMu.Unlock()
	switch {
	case c.respState == responseCancelling:
		return true
	case responseID == "":
		return false
	case c.activeResponse != "":
		return responseID != c.activeResponse
	default:
		return responseID == c.cancelledID
	}
}

func (c *Client) emit(ctx context.Context, ev Event) {
	select {
	case c.events <- ev:
	case <-ctx.Done():
	}
}

func (c *Client) closeEvents() {
	c.eventsOnce.Do(func() { close(c.events) })
}

func (c *Client) keepAlive(conn wsConn, done <-chan struct{}) {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(c.cfg.WriteTimeout))
			if err != nil {
				c.log.Printf("Realtime ping failed: %v", err)
				// Unblock the reader so the failure surfaces as a keep-alive error.
				c.stopReading(conn)
				return
			}
		}
	}
}

func (c *Client) extendReadDeadline(conn wsConn) {
	c.deadlineMu.Lock()
	defer c.deadlineMu.Unlock()
	if c.readStopped {
		return
	}
	_ = conn.SetReadDeadline(time.Now().Add(c.cfg.PingInterval + c.cfg.PingTimeout))
}

func (c *Client) stopReading(conn wsConn) {
	c.deadlineMu.Lock()
	defer c.deadlineMu.Unlock()
	c.readStopped = true
	_ = conn.SetReadDeadline(time.Now())
}

// send writes one frame. A frame sent while disconnected, or racing with
// teardown, is dropped without error.
func (c *Client) send(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	err = c.write(data)
	if errors.Is(err, errNotConnected) || errors.Is(err, websocket.ErrCloseSent) || errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

var errNotConnected = errors.New("not connected")

func (c *Client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil || !c.connected.Load() {
		return errNotConnected
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}
