package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

type prepareRequest struct {
	Mode        string   `json:"mode"`
	DossierText string   `json:"dossier_text"`
	Questions   []string `json:"questions,omitempty"`
}

type prepareResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"session_id"`
	Error     string `json:"error"`
}

var httpClient = &http.Client{Timeout: 10 * time.Second}

// loadPrepareRequest reads the dossier and the optional question file, one
// question per non-blank line.
func loadPrepareRequest(dossierPath, questionsPath, mode string) (prepareRequest, error) {
	dossier, err := os.ReadFile(dossierPath)
	if err != nil {
		return prepareRequest{}, err
	}
	req := prepareRequest{Mode: mode, DossierText: string(dossier)}
	if questionsPath == "" {
		return req, nil
	}

	f, err := os.Open(questionsPath)
	if err != nil {
		return prepareRequest{}, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if q := strings.TrimSpace(scanner.Text()); q != "" {
			req.Questions = append(req.Questions, q)
		}
	}
	return req, scanner.Err()
}

// prepareSession registers a session with the server and returns its id.
func prepareSession(baseURL string, req prepareRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	resp, err := httpClient.Post(strings.TrimRight(baseURL, "/")+"/api/sessions", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out prepareResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("unexpected %s response: %w", resp.Status, err)
	}
	if resp.StatusCode != http.StatusOK || !out.Success {
		return "", fmt.Errorf("server refused session (%s): %s", resp.Status, out.Error)
	}
	return out.SessionID, nil
}

// websocketURL maps the http base URL to the session's websocket endpoint.
func websocketURL(baseURL, sessionID string) string {
	u := strings.TrimRight(baseURL, "/")
	switch {
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	}
	return u + "/ws/" + sessionID
}
