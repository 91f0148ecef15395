package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleConversion(t *testing.T) {
	tests := []struct {
		name    string
		samples []int16
		bytes   []byte
	}{
		{name: "empty", samples: []int16{}, bytes: []byte{}},
		{name: "positive", samples: []int16{258}, bytes: []byte{0x02, 0x01}},
		{name: "negative", samples: []int16{-1}, bytes: []byte{0xFF, 0xFF}},
		{name: "zero", samples: []int16{0}, bytes: []byte{0x00, 0x00}},
		{name: "several", samples: []int16{256, 1, -32768}, bytes: []byte{0x00, 0x01, 0x01, 0x00, 0x00, 0x80}},
		{name: "max", samples: []int16{32767}, bytes: []byte{0xFF, 0x7F}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.bytes, int16SliceToByteSlice(tt.samples))
			assert.Equal(t, tt.samples, byteSliceToInt16Slice(tt.bytes))
		})
	}
}

func TestByteSliceToInt16Slice_OddLength(t *testing.T) {
	assert.Equal(t, []int16{258}, byteSliceToInt16Slice([]byte{0x02, 0x01, 0x7F}))
}
