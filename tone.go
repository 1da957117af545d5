package testmaker

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"go.uber.org/zap"
)

type (
	// ToneGenerator synthesizes sine-wave WAV files to use as auditory
	// stimuli. Output is 16-bit mono PCM. The zero value renders at the
	// default rate and amplitude
	ToneGenerator struct {
		SampleRate int
		Amplitude  float64
		Log        *zap.Logger
	}
)

// NewToneGenerator returns a generator at the standard rate and amplitude
func NewToneGenerator() *ToneGenerator {
	return &ToneGenerator{
		SampleRate: DefaultSampleRate,
		Amplitude:  DefaultToneAmplitude,
	}
}

// WriteTone renders a sine tone of the given frequency and length
func (g *ToneGenerator) WriteTone(
	w io.WriteSeeker, freqHz float64, durationMS int64,
) error {
	if freqHz <= 0 {
		return fmt.Errorf("frequency must be positive: %v", freqHz)
	}
	if durationMS <= 0 {
		return fmt.Errorf("duration must be positive: %d", durationMS)
	}
	rate := g.SampleRate
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	amp := g.Amplitude
	if amp <= 0 || amp > 1 {
		amp = DefaultToneAmplitude
	}

	n := int(int64(rate) * durationMS / 1000)
	data := make([]int, n)
	for i := range data {
		t := float64(i) / float64(rate)
		data[i] = int(amp * math.Sin(2*math.Pi*freqHz*t) * math.MaxInt16)
	}

	enc := wav.NewEncoder(w, rate, 16, 1, 1)
	err := enc.Write(&audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  rate,
		},
		Data:           data,
		SourceBitDepth: 16,
	})
	if err != nil {
		return err
	}
	return enc.Close()
}

// GenerateFile writes one tone to a WAV file at path
func (g *ToneGenerator) GenerateFile(
	path string, freqHz float64, durationMS int64,
) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := g.WriteTone(f, freqHz, durationMS); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	g.logger().Debug("Tone written",
		zap.String("path", path),
		zap.Float64("freq_hz", freqHz),
		zap.Int64("duration_ms", durationMS),
	)
	return nil
}

// GenerateRange writes one tone per step across [startHz, endHz], both ends
// included, into dir, and returns the paths in ascending frequency order.
// An empty prefix falls back to "tone"
func (g *ToneGenerator) GenerateRange(
	dir, prefix string, startHz, endHz, stepHz float64, durationMS int64,
) ([]string, error) {
	if stepHz <= 0 {
		return nil, fmt.Errorf("step must be positive: %v", stepHz)
	}
	if prefix == "" {
		prefix = "tone"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	var paths []string
	for i := 0; ; i++ {
		freq := startHz + float64(i)*stepHz
		if freq > endHz {
			break
		}
		path := filepath.Join(dir, toneFileName(prefix, freq))
		if err := g.GenerateFile(path, freq, durationMS); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// toneFileName formats tone_440Hz.wav, keeping one decimal only when the
// frequency is fractional
func toneFileName(prefix string, freqHz float64) string {
	if freqHz == math.Trunc(freqHz) {
		return fmt.Sprintf("%s_%dHz.wav", prefix, int64(freqHz))
	}
	return fmt.Sprintf("%s_%.1fHz.wav", prefix, freqHz)
}

func (g *ToneGenerator) logger() *zap.Logger {
	if g.Log == nil {
		return zap.NewNop()
	}
	return g.Log
}
