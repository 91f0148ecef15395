package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/agnivade/interview_coach/realtime"
)

type config struct {
	Addr string

	Realtime realtime.Config

	ContextFile string

	DeepgramAPIKey        string
	GoogleSpeechEnabled   bool
	TranscriptionLanguage string
	SampleRate            int
}

// loadConfig reads the settings through getenv. The first malformed value
// is reported.
func loadConfig(getenv func(string) string) (config, error) {
	e := env{getenv: getenv}
	rt := realtime.DefaultConfig()

	cfg := config{
		Addr:                  e.str("COACH_ADDR", ":8081"),
		ContextFile:           e.str("COACH_CONTEXT_FILE", ""),
		DeepgramAPIKey:        e.str("DEEPGRAM_API_KEY", ""),
		GoogleSpeechEnabled:   e.bool("GOOGLE_SPEECH_ENABLED", false),
		TranscriptionLanguage: e.str("TRANSCRIPTION_LANGUAGE", "fr-FR"),
		SampleRate:            e.int("AUDIO_SAMPLE_RATE", 24000),
	}

	rt.APIKey = e.str("OPENAI_API_KEY", "")
	rt.URL = e.str("OPENAI_REALTIME_URL", rt.URL)
	rt.Voice = e.str("OPENAI_REALTIME_VOICE", rt.Voice)
	rt.TranscriptionModel = e.str("OPENAI_TRANSCRIPTION_MODEL", rt.TranscriptionModel)
	rt.VAD.Threshold = e.float("VAD_THRESHOLD", rt.VAD.Threshold)
	rt.VAD.PrefixPaddingMs = e.int("VAD_PREFIX_PADDING_MS", rt.VAD.PrefixPaddingMs)
	rt.VAD.SilenceDurationMs = e.int("VAD_SILENCE_DURATION_MS", rt.VAD.SilenceDurationMs)
	rt.PingInterval = e.duration("UPSTREAM_PING_INTERVAL", rt.PingInterval)
	rt.PingTimeout = e.duration("UPSTREAM_PING_TIMEOUT", rt.PingTimeout)
	cfg.Realtime = rt

	if e.err != nil {
		return config{}, e.err
	}
	if cfg.SampleRate <= 0 {
		return config{}, fmt.Errorf("AUDIO_SAMPLE_RATE must be positive, got %d", cfg.SampleRate)
	}
	return cfg, nil
}

type env struct {
	getenv func(string) string
	err    error
}

func (e *env) lookup(key string) (string, bool) {
	v := strings.TrimSpace(e.getenv(key))
	return v, v != ""
}

func (e *env) fail(key, value string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
}

func (e *env) str(key, def string) string {
	if v, ok := e.lookup(key); ok {
		return v
	}
	return def
}

func (e *env) int(key string, def int) int {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return n
}

func (e *env) float(key string, def float64) float64 {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return f
}

func (e *env) duration(key string, def time.Duration) time.Duration {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return d
}

func (e *env) bool(key string, def bool) bool {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return b
}
