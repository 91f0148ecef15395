package main

import (
	"bufio"
	"encoding/base64"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gordonklaus/portaudio"
	"github.com/gorilla/websocket"

	coach "github.com/agnivade/interview_coach"
)

const (
	roleAssistant = "assistant"
	roleUser      = "user"
)

type Client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	audioReader io.Reader
	speaker     io.Writer

	log                 *log.Logger
	msgBuffer           *MessageBuffer
	similarityThreshold float64
	bufWriter           *bufio.Writer

	// outMu serializes terminal and transcript output between the socket
	// reader and the stdin commands.
	outMu sync.Mutex
	// coachLine accumulates the streamed transcript of the current answer.
	coachLine strings.Builder

	wg   sync.WaitGroup
	done chan struct{}
}

func main() {
	var (
		serverURL   = flag.String("url", "http://localhost:8081", "Coach server base URL")
		sessionID   = flag.String("session", "", "Prepared session id")
		dossierPath = flag.String("dossier", "", "Dossier text file used to prepare a new session")
		mode        = flag.String("mode", "question_by_question", "Interview mode when preparing: question_by_question or full_interview")
		questions   = flag.String("questions", "", "Optional file with one question per line")
		outputPath  = flag.String("output", "", "Output file path for the transcript (optional)")
	)
	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile)

	id := *sessionID
	if id == "" {
		if *dossierPath == "" {
			logger.Println("Either -session or -dossier is required")
			return
		}
		req, err := loadPrepareRequest(*dossierPath, *questions, *mode)
		if err != nil {
			logger.Printf("Failed to read session files: %v\n", err)
			return
		}
		id, err = prepareSession(*serverURL, req)
		if err != nil {
			logger.Printf("Failed to prepare session: %v\n", err)
			return
		}
		fmt.Printf("Session %s prepared.\n", id)
	}

	if err := portaudio.Initialize(); err != nil {
		logger.Printf("portaudio.Initialize: %v\n", err)
		return
	}
	defer portaudio.Terminate()

	mic, err := NewMicrophoneReader()
	if err != nil {
		logger.Printf("Failed to open microphone: %v\n", err)
		return
	}
	defer mic.Close()

	speaker, err := NewSpeaker()
	if err != nil {
		logger.Printf("Failed to open speaker: %v\n", err)
		return
	}
	defer speaker.Close()

	conn, _, err := websocket.DefaultDialer.Dial(websocketURL(*serverURL, id), nil)
	if err != nil {
		logger.Printf("WebSocket dial failed: %v\n", err)
		return
	}
	defer conn.Close()

	client := NewClient(conn, mic, speaker, logger)

	if *outputPath != "" {
		outputFile, err := os.Create(*outputPath)
		if err != nil {
			logger.Printf("Failed to create output file: %v\n", err)
			return
		}
		defer outputFile.Close()

		client.bufWriter = bufio.NewWriter(outputFile)
		defer client.bufWriter.Flush()
	}

	fmt.Println("Interview started. Type to answer in writing, /commit, /interrupt or /end.")
	client.Start()

	ended := make(chan struct{})
	go func() {
		defer close(ended)
		client.commands(os.Stdin)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
		client.send(coach.Frame{Type: coach.FrameEnd})
	case <-ended:
	case <-client.done:
	}

	client.Close()
	fmt.Println("\nDone.")
}

func NewClient(conn *websocket.Conn, audio io.Reader, speaker io.Writer, logger *log.Logger) *Client {
	return &Client{
		conn:                conn,
		audioReader:         audio,
		speaker:             speaker,
		log:                 logger,
		msgBuffer:           NewMessageBuffer(10),
		similarityThreshold: 0.8,
		done:                make(chan struct{}),
	}
}

func (c *Client) Start() {
	c.wg.Add(2)
	go c.reader()
	go c.writer()
}

func (c *Client) reader() {
	defer c.wg.Done()
	defer close(c.done)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.log.Printf("WebSocket read error: %v\n", err)
			}
			c.outMu.Lock()
			c.finishCoachLine()
			c.outMu.Unlock()
			return
		}

		var frame coach.Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			c.log.Printf("Failed to unmarshal frame: %v\n", err)
			continue
		}
		c.handleFrame(frame)
	}
}

func (c *Client) handleFrame(f coach.Frame) {
	if f.Type == coach.FrameAudio {
		c.play(f.Data)
		return
	}

	c.outMu.Lock()
	defer c.outMu.Unlock()

	switch f.Type {
	case coach.FrameTranscript:
		if f.Role == roleAssistant {
			if c.coachLine.Len() == 0 {
				fmt.Printf("[%s] Coach: ", time.Now().Format("15:04:05"))
			}
			c.coachLine.WriteString(f.Text)
			fmt.Print(f.Text)
			return
		}
		c.finishCoachLine()
		if c.msgBuffer.Seen(f.Text, c.similarityThreshold) {
			return
		}
		c.emit(fmt.Sprintf("[%s] Vous: %s\n", time.Now().Format("15:04:05"), f.Text))

	case coach.FrameStatus:
		if f.Status == coach.StatusListening {
			c.finishCoachLine()
		}
		if f.Status == coach.StatusConnected {
			fmt.Println("(connecté)")
		}

	case coach.FrameError:
		c.finishCoachLine()
		if c.msgBuffer.Seen(f.Message, c.similarityThreshold) {
			return
		}
		fmt.Printf("[%s] Erreur: %s\n", time.Now().Format("15:04:05"), f.Message)
	}
}

func (c *Client) play(data string) {
	if c.speaker == nil {
		return
	}
	pcm, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		c.log.Printf("Invalid audio frame: %v\n", err)
		return
	}
	if _, err := c.speaker.Write(pcm); err != nil {
		c.log.Printf("Playback error: %v\n", err)
	}
}

// finishCoachLine ends a streamed coach answer on the terminal and records
// it in the transcript file. c.outMu must be held.
func (c *Client) finishCoachLine() {
	if c.coachLine.Len() == 0 {
		return
	}
	fmt.Println()
	c.write(fmt.Sprintf("[%s] Coach: %s\n", time.Now().Format("15:04:05"), c.coachLine.String()))
	c.coachLine.Reset()
}

func (c *Client) emit(line string) {
	fmt.Print(line)
	c.write(line)
}

func (c *Client) write(line string) {
	if c.bufWriter == nil {
		return
	}
	if _, err := c.bufWriter.WriteString(line); err != nil {
		c.log.Printf("Failed to write to output file: %v\n", err)
		return
	}
	c.bufWriter.Flush()
}

func (c *Client) writer() {
	defer c.wg.Done()
	buf := make([]byte, framesPerBuffer*2)
	for {
		n, err := c.audioReader.Read(buf)
		if n > 0 {
			if werr := c.send(coach.Frame{Type: coach.FrameAudio, Data: base64.StdEncoding.EncodeToString(buf[:n])}); werr != nil {
				if !errors.Is(werr, net.ErrClosed) && !errors.Is(werr, websocket.ErrCloseSent) {
					c.log.Printf("WebSocket write error: %v\n", werr)
				}
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				c.log.Printf("Audio read error: %v\n", err)
			}
			return
		}
	}
}

// commands turns stdin lines into frames until /end or end of input.
func (c *Client) commands(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		var f coach.Frame
		switch line {
		case "":
			continue
		case "/commit":
			f = coach.Frame{Type: coach.FrameCommit}
		case "/interrupt":
			f = coach.Frame{Type: coach.FrameInterrupt}
		case "/end":
			c.send(coach.Frame{Type: coach.FrameEnd})
			return
		default:
			f = coach.Frame{Type: coach.FrameText, Data: line}
			c.outMu.Lock()
			c.finishCoachLine()
			c.emit(fmt.Sprintf("[%s] Vous (écrit): %s\n", time.Now().Format("15:04:05"), line))
			c.outMu.Unlock()
		}
		if err := c.send(f); err != nil {
			c.log.Printf("WebSocket write error: %v\n", err)
			return
		}
	}
}

func (c *Client) send(f coach.Frame) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(f)
}

func (c *Client) Close() {
	c.log.Println("Closing client...")
	if c.conn != nil {
		c.writeMu.Lock()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		c.writeMu.Unlock()
		c.conn.Close()
	}
	c.wg.Wait()
}
