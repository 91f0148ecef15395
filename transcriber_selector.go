package interview_coach

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/agnivade/interview_coach/providers"
)

const (
	// selectionWindow is how often the selector re-evaluates which provider
	// it forwards, and how far back it looks when doing so.
	selectionWindow = 2 * time.Second
	// resultRetention bounds what is kept for replay and deduplication.
	resultRetention = 5 * time.Second

	// utteranceOverlap is the share of words two results must have in
	// common to count as the same utterance.
	utteranceOverlap = 0.6
	// unratedConfidence weighs results from providers that report none.
	unratedConfidence = 0.5
)

var errNoTranscribers = errors.New("no transcription provider available")

// utterance is a final result with its words normalized for comparison
// across providers.
type utterance struct {
	providers.TranscriptionResult
	words []string
}

func newUtterance(r providers.TranscriptionResult) utterance {
	return utterance{TranscriptionResult: r, words: utteranceWords(r.Text)}
}

// utteranceWords lowercases text and splits it on anything that is not a
// letter or a digit, so "X-HEC" and "x hec" compare equal.
func utteranceWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// sameUtterance reports whether a and b transcribe the same speech, by the
// Dice coefficient of their word multisets.
func sameUtterance(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return len(a) == len(b)
	}
	counts := make(map[string]int, len(a))
	for _, w := range a {
		counts[w]++
	}
	shared := 0
	for _, w := range b {
		if counts[w] > 0 {
			counts[w]--
			shared++
		}
	}
	return float64(2*shared)/float64(len(a)+len(b)) >= utteranceOverlap
}

// TranscriberSelector streams the candidate's audio to every configured
// transcription provider and forwards the candidate's utterances as heard
// by the provider that currently transcribes them best.
type TranscriberSelector struct {
	sessions []providers.Session
	names    []string

	audioIn  chan []byte
	out      chan providers.TranscriptionResult
	incoming chan providers.TranscriptionResult

	// Owned by the selection goroutine.
	active string
	heard  map[string][]utterance
	sent   []utterance

	ctx    context.Context
	cancel context.CancelFunc
	log    *log.Logger
	wg     sync.WaitGroup
}

// NewTranscriberSelector opens a stream on every provider. Providers that
// fail to open are skipped; it is an error only if none opens. The streams
// live until ctx is cancelled or Close is called.
func NewTranscriberSelector(ctx context.Context, list []providers.Provider, config providers.SessionConfig, logger *log.Logger) (*TranscriberSelector, error) {
	ctx, cancel := context.WithCancel(ctx)

	ts := &TranscriberSelector{
		sessions: make([]providers.Session, 0, len(list)),
		names:    make([]string, 0, len(list)),
		audioIn:  make(chan []byte, 100),
		out:      make(chan providers.TranscriptionResult, 10),
		incoming: make(chan providers.TranscriptionResult, 100),
		heard:    make(map[string][]utterance),
		ctx:      ctx,
		cancel:   cancel,
		log:      logger,
	}

	for _, p := range list {
		sess, err := p.NewSession(ctx, config)
		if err != nil {
			ts.log.Printf("Failed to open %s transcription stream: %v", p.Name(), err)
			continue
		}
		ts.sessions = append(ts.sessions, sess)
		ts.names = append(ts.names, p.Name())
	}

	if len(ts.sessions) == 0 {
		cancel()
		return nil, errNoTranscribers
	}
	ts.active = ts.names[0]

	ts.wg.Add(2 + len(ts.sessions))
	go ts.distribute()
	go ts.selectActive()
	for i, sess := range ts.sessions {
		go ts.collect(sess, ts.names[i])
	}

	return ts, nil
}

// Names returns the providers that opened a stream.
func (ts *TranscriberSelector) Names() []string {
	return ts.names
}

// SendAudio queues audio for every provider. It returns io.EOF once the
// selector is closed.
func (ts *TranscriberSelector) SendAudio(audio []byte) error {
	select {
	case ts.audioIn <- audio:
		return nil
	case <-ts.ctx.Done():
		if errors.Is(ts.ctx.Err(), context.Canceled) {
			return io.EOF
		}
		return ts.ctx.Err()
	}
}

// ReceiveTranscription blocks for the next forwarded final result. It
// returns io.EOF once the selector is closed.
func (ts *TranscriberSelector) ReceiveTranscription() (providers.TranscriptionResult, error) {
	select {
	case r := <-ts.out:
		return r, nil
	case <-ts.ctx.Done():
		if errors.Is(ts.ctx.Err(), context.Canceled) {
			return providers.TranscriptionResult{}, io.EOF
		}
		return providers.TranscriptionResult{}, ts.ctx.Err()
	}
}

// Close stops every stream. SendAudio must not be called concurrently with
// or after Close.
func (ts *TranscriberSelector) Close() error {
	ts.cancel()
	close(ts.audioIn)

	for i, sess := range ts.sessions {
		if err := sess.Close(); err != nil {
			ts.log.Printf("Error closing %s transcription stream: %v", ts.names[i], err)
		}
	}

	ts.wg.Wait()
	ts.log.Println("Transcriber selector closed")
	return nil
}

// distribute hands every audio chunk to all providers before taking the
// next one, so each provider sees the chunks in order.
func (ts *TranscriberSelector) distribute() {
	defer ts.wg.Done()

	for audio := range ts.audioIn {
		var wg sync.WaitGroup
		for i, sess := range ts.sessions {
			wg.Add(1)
			go func(s providers.Session, name string) {
				defer wg.Done()
				// Providers may retain the slice.
				buf := make([]byte, len(audio))
				copy(buf, audio)
				if err := s.SendAudio(buf); err != nil && !errors.Is(err, io.EOF) {
					ts.log.Printf("Sending audio to %s failed: %v", name, err)
				}
			}(sess, ts.names[i])
		}
		wg.Wait()
	}
}

func (ts *TranscriberSelector) collect(sess providers.Session, name string) {
	defer ts.wg.Done()

	for {
		r, err := sess.ReceiveTranscription()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			ts.log.Printf("%s transcription error: %v", name, err)
			return
		}
		if r.ProviderName == "" {
			r.ProviderName = name
		}
		if r.ReceivedAt.IsZero() {
			r.ReceivedAt = time.Now()
		}

		select {
		case ts.incoming <- r:
		case <-ts.ctx.Done():
			return
		}
	}
}

func (ts *TranscriberSelector) selectActive() {
	defer ts.wg.Done()

	ticker := time.NewTicker(selectionWindow)
	defer ticker.Stop()

	for {
		select {
		case r := <-ts.incoming:
			if !r.IsFinal {
				continue
			}
			u := newUtterance(r)
			if len(u.words) == 0 {
				continue
			}
			ts.heard[r.ProviderName] = append(ts.heard[r.ProviderName], u)

			if r.ProviderName == ts.active {
				if !ts.forward(u) {
					return
				}
			}

		case <-ticker.C:
			ts.updateActive()
			ts.prune()

		case <-ts.ctx.Done():
			return
		}
	}
}

func (ts *TranscriberSelector) forward(u utterance) bool {
	select {
	case ts.out <- u.TranscriptionResult:
		ts.sent = append(ts.sent, u)
		return true
	case <-ts.ctx.Done():
		return false
	}
}

// score weighs the words a provider transcribed inside the selection window
// by its confidence in them.
func (ts *TranscriberSelector) score(name string, since time.Time) float64 {
	total := 0.0
	for _, u := range ts.heard[name] {
		if !u.ReceivedAt.After(since) {
			continue
		}
		c := float64(u.Confidence)
		if c <= 0 {
			c = unratedConfidence
		}
		total += float64(len(u.words)) * c
	}
	return total
}

// updateActive switches to the provider that transcribed the most of the
// candidate's recent speech. The active provider keeps ties.
func (ts *TranscriberSelector) updateActive() {
	since := time.Now().Add(-selectionWindow)
	best, bestScore := ts.active, ts.score(ts.active, since)
	for name := range ts.heard {
		if sc := ts.score(name, since); sc > bestScore {
			best, bestScore = name, sc
		}
	}
	if best == ts.active {
		return
	}

	ts.log.Printf("Switching transcription from %s to %s (score %.2f)", ts.active, best, bestScore)
	ts.active = best
	ts.replayMissed()
}

// replayMissed forwards the active provider's retained utterances that match
// nothing already sent, so speech the previous provider dropped still
// reaches the session.
func (ts *TranscriberSelector) replayMissed() {
	for _, u := range ts.heard[ts.active] {
		if ts.wasSent(u) {
			continue
		}
		ts.log.Printf("Replaying %s utterance: %s", ts.active, u.Text)
		if !ts.forward(u) {
			return
		}
	}
}

func (ts *TranscriberSelector) wasSent(u utterance) bool {
	for _, s := range ts.sent {
		if sameUtterance(s.words, u.words) {
			return true
		}
	}
	return false
}

func (ts *TranscriberSelector) prune() {
	cutoff := time.Now().Add(-resultRetention)
	for name, heard := range ts.heard {
		ts.heard[name] = retainSince(heard, cutoff)
	}
	ts.sent = retainSince(ts.sent, cutoff)
}

func retainSince(list []utterance, cutoff time.Time) []utterance {
	kept := list[:0]
	for _, u := range list {
		if u.ReceivedAt.After(cutoff) {
			kept = append(kept, u)
		}
	}
	clear(list[len(kept):])
	return kept
}
