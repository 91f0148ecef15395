package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	speech "cloud.google.com/go/speech/apiv1"
	"github.com/joho/godotenv"

	coach "github.com/agnivade/interview_coach"
	"github.com/agnivade/interview_coach/prompts"
	"github.com/agnivade/interview_coach/providers"
	"github.com/agnivade/interview_coach/providers/deepgram"
	"github.com/agnivade/interview_coach/providers/google"
	"github.com/agnivade/interview_coach/realtime"
	"github.com/agnivade/interview_coach/session"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Failed to load .env: %v", err)
	}

	cfg, err := loadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.Realtime.APIKey == "" {
		log.Println("OPENAI_API_KEY is not set, sessions will fail to connect")
	}

	programme := ""
	if cfg.ContextFile != "" {
		data, err := os.ReadFile(cfg.ContextFile)
		if err != nil {
			log.Fatalf("Failed to read programme context: %v", err)
		}
		programme = string(data)
	}

	var transcribers []providers.Provider
	if cfg.DeepgramAPIKey != "" {
		transcribers = append(transcribers, deepgram.NewProvider(cfg.DeepgramAPIKey))
	}
	if cfg.GoogleSpeechEnabled {
		speechClient, err := speech.NewClient(context.Background())
		if err != nil {
			log.Fatalf("Failed to create speech client: %v", err)
		}
		defer speechClient.Close()
		transcribers = append(transcribers, google.NewProvider(speechClient))
	}

	logger := log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile)
	newUpstream := func(d *session.Descriptor, transcribeInput bool) coach.Upstream {
		rc := cfg.Realtime
		if !transcribeInput {
			rc.TranscriptionModel = ""
		}
		return realtime.NewClient(rc, prompts.Build(d, programme), logger)
	}

	s := coach.New(coach.Config{
		Addr:               cfg.Addr,
		UpstreamConfigured: cfg.Realtime.APIKey != "",
		TranscriberConfig: providers.SessionConfig{
			SampleRate:   cfg.SampleRate,
			LanguageCode: cfg.TranscriptionLanguage,
		},
	}, newUpstream, transcribers...)

	go func() {
		if err := s.Start(); err != nil {
			log.Fatalf("Server failed to start: %v\n", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	if err := s.Stop(); err != nil {
		log.Printf("Error during server shutdown: %v\n", err)
	}
}
