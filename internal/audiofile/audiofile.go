package audiofile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	dspresample "github.com/cwbudde/algo-dsp/dsp/resample"
	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"
	mp3 "github.com/hajimehoshi/go-mp3"
)

// ReadMono decodes an audio file into mono float64 samples in [-1, 1] and
// returns them with the file's sample rate. The decoder is chosen by file
// extension; WAV and MP3 are supported. Multi-channel input averages down
// to one channel.
func ReadMono(path string) ([]float64, int, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return ReadWAVMono(path)
	case ".mp3":
		return ReadMP3Mono(path)
	default:
		return nil, 0, fmt.Errorf("unsupported audio format %q (expected .wav or .mp3)", filepath.Ext(path))
	}
}

// ReadWAVMono decodes a WAV file to mono float64 samples in [-1, 1].
func ReadWAVMono(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid wav file: %s", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, 0, fmt.Errorf("invalid wav buffer: %s", path)
	}

	scale := 1.0
	if dec.BitDepth > 0 && dec.BitDepth <= 32 {
		scale = 1.0 / float64(int64(1)<<(dec.BitDepth-1))
	}

	ch := buf.Format.NumChannels
	frames := len(buf.Data) / ch
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < ch; c++ {
			sum += float64(buf.Data[i*ch+c])
		}
		out[i] = sum / float64(ch) * scale
	}
	return out, buf.Format.SampleRate, nil
}

// ReadMP3Mono decodes an MP3 file to mono float64 samples in [-1, 1].
// go-mp3 always emits 16-bit little-endian stereo.
func ReadMP3Mono(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, 0, fmt.Errorf("mp3 decode failed: %w", err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, 0, fmt.Errorf("mp3 read failed: %w", err)
	}

	frames := len(raw) / 4
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		l := int16(raw[i*4]) | int16(raw[i*4+1])<<8
		r := int16(raw[i*4+2]) | int16(raw[i*4+3])<<8
		out[i] = (float64(l) + float64(r)) / 2.0 / 32768.0
	}
	return out, dec.SampleRate(), nil
}

// ResampleIfNeeded converts the samples from one rate to another; it is a
// no-op when the rates already match.
func ResampleIfNeeded(in []float64, fromRate int, toRate int) ([]float64, error) {
	if fromRate == toRate {
		return in, nil
	}
	r, err := dspresample.NewForRates(
		float64(fromRate),
		float64(toRate),
		dspresample.WithQuality(dspresample.QualityBest),
	)
	if err != nil {
		return nil, err
	}
	return r.Process(in), nil
}

// WriteMonoWAV writes mono float32 samples as a 16-bit PCM WAV file,
// creating parent directories as needed.
func WriteMonoWAV(path string, data []float32, sampleRate int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	defer enc.Close()

	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: 1,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	return enc.Write(buf)
}
