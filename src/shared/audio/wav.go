package audio

import (
	"bytes"
	"io"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cockroachdb/errors"
	"github.com/voxsplit/voxsplit-be/src/shared/lib/errors/mark"
)

var UnreadableFileMark = mark.NewMark("UnreadableFile")

// DecodeWAV reads a PCM WAV stream into a planar waveform with
// samples scaled to [-1, 1].
func DecodeWAV(r io.ReadSeeker) (Waveform, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return Waveform{}, mark.Message(UnreadableFileMark, "Stream is not a valid WAV file")
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return Waveform{}, mark.Wrap(err, UnreadableFileMark, "Failed to decode WAV PCM data")
	}

	numChannels := buf.Format.NumChannels
	if numChannels <= 0 {
		return Waveform{}, mark.Message(UnreadableFileMark, "WAV file reports no channels")
	}

	scale := 1.0 / float64(int(1)<<(decoder.BitDepth-1))
	frameCount := len(buf.Data) / numChannels

	channels := make([][]float64, numChannels)
	for c := range channels {
		channels[c] = make([]float64, frameCount)
	}

	for frame := 0; frame < frameCount; frame++ {
		for c := 0; c < numChannels; c++ {
			channels[c][frame] = float64(buf.Data[frame*numChannels+c]) * scale
		}
	}

	return NewWaveform(channels, buf.Format.SampleRate)
}

func DecodeWAVBytes(contents []byte) (Waveform, error) {
	return DecodeWAV(bytes.NewReader(contents))
}

func DecodeWAVFile(path string) (Waveform, error) {
	file, err := os.Open(path)
	if err != nil {
		return Waveform{}, mark.Wrap(err, UnreadableFileMark, "Failed to open WAV file")
	}
	defer file.Close()

	return DecodeWAV(file)
}

const encodeBitDepth = 16

// EncodeWAV writes the waveform as 16 bit PCM WAV.
func EncodeWAV(w io.WriteSeeker, waveform Waveform) error {
	if waveform.IsEmpty() {
		return errors.New("Cannot encode an empty waveform")
	}

	encoder := wav.NewEncoder(w, waveform.SampleRate, encodeBitDepth, waveform.NumChannels(), 1)

	numChannels := waveform.NumChannels()
	frameCount := waveform.NumFrames()
	data := make([]int, frameCount*numChannels)

	scale := float64(int(1)<<(encodeBitDepth-1)) - 1
	for frame := 0; frame < frameCount; frame++ {
		for c := 0; c < numChannels; c++ {
			sample := waveform.Channels[c][frame]
			sample = math.Max(-1, math.Min(1, sample))
			data[frame*numChannels+c] = int(math.Round(sample * scale))
		}
	}

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: numChannels,
			SampleRate:  waveform.SampleRate,
		},
		Data:           data,
		SourceBitDepth: encodeBitDepth,
	}

	err := encoder.Write(buf)
	if err != nil {
		return errors.Wrap(err, "Failed to write WAV PCM data")
	}

	err = encoder.Close()
	if err != nil {
		return errors.Wrap(err, "Failed to finalize WAV file")
	}

	return nil
}

// EncodeWAVBytes encodes into an in memory WAV file.
func EncodeWAVBytes(waveform Waveform) ([]byte, error) {
	buf := newWriteSeekBuffer()

	err := EncodeWAV(buf, waveform)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to encode WAV into buffer")
	}

	return buf.Bytes(), nil
}

func EncodeWAVFile(path string, waveform Waveform) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "Failed to create WAV file")
	}
	defer file.Close()

	return EncodeWAV(file, waveform)
}
