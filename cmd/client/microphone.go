package main

import (
	"github.com/gordonklaus/portaudio"
)

const (
	// sampleRate matches the pcm16 format the voice model expects.
	sampleRate      = 24000
	framesPerBuffer = 1024
)

// MicrophoneReader captures mono pcm16 from the default input device. Each
// Read returns at most one buffer of little-endian samples.
type MicrophoneReader struct {
	stream *portaudio.Stream
	buffer []int16
}

// NewMicrophoneReader starts recording. PortAudio must be initialized.
func NewMicrophoneReader() (*MicrophoneReader, error) {
	buffer := make([]int16, framesPerBuffer)
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(sampleRate), len(buffer), buffer)
	if err != nil {
		return nil, err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, err
	}
	return &MicrophoneReader{stream: stream, buffer: buffer}, nil
}

func (m *MicrophoneReader) Read(p []byte) (int, error) {
	if err := m.stream.Read(); err != nil {
		return 0, err
	}
	return copy(p, int16SliceToByteSlice(m.buffer)), nil
}

func (m *MicrophoneReader) Close() error {
	return closeStream(m.stream)
}

// Speaker plays pcm16 received from the coach on the default output device.
type Speaker struct {
	stream *portaudio.Stream
	buffer []int16
}

// NewSpeaker opens the output stream. PortAudio must be initialized.
func NewSpeaker() (*Speaker, error) {
	buffer := make([]int16, framesPerBuffer)
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(sampleRate), len(buffer), buffer)
	if err != nil {
		return nil, err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, err
	}
	return &Speaker{stream: stream, buffer: buffer}, nil
}

// Write blocks until all of p is queued for playback. A trailing odd byte
// is dropped.
func (s *Speaker) Write(p []byte) (int, error) {
	samples := byteSliceToInt16Slice(p)
	for len(samples) > 0 {
		n := copy(s.buffer, samples)
		clear(s.buffer[n:])
		if err := s.stream.Write(); err != nil {
			return 0, err
		}
		samples = samples[n:]
	}
	return len(p), nil
}

func (s *Speaker) Close() error {
	return closeStream(s.stream)
}

func closeStream(stream *portaudio.Stream) error {
	if stream == nil {
		return nil
	}
	err := stream.Stop()
	if closeErr := stream.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

// int16SliceToByteSlice encodes samples little-endian.
func int16SliceToByteSlice(in []int16) []byte {
	out := make([]byte, len(in)*2)
	for i, v := range in {
		out[2*i] = byte(v)
		out[2*i+1] = byte(v >> 8)
	}
	return out
}

// byteSliceToInt16Slice decodes little-endian samples.
func byteSliceToInt16Slice(in []byte) []int16 {
	out := make([]int16, len(in)/2)
	for i := range out {
		out[i] = int16(uint16(in[2*i]) | uint16(in[2*i+1])<<8)
	}
	return out
}
