package audiofile

import (
	"math"
	"path/filepath"
	"testing"
)

func TestWriteAndReadWAVMono(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tone.wav")

	sr := 44100
	n := sr / 2
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = 0.5 * float32(math.Sin(2*math.Pi*440*float64(i)/float64(sr)))
	}
	if err := WriteMonoWAV(path, samples, sr); err != nil {
		t.Fatalf("WriteMonoWAV: %v", err)
	}

	got, gotRate, err := ReadWAVMono(path)
	if err != nil {
		t.Fatalf("ReadWAVMono: %v", err)
	}
	if gotRate != sr {
		t.Fatalf("sample rate = %d, want %d", gotRate, sr)
	}
	if len(got) != n {
		t.Fatalf("length = %d, want %d", len(got), n)
	}
	for i := 0; i < n; i += 1000 {
		if math.Abs(got[i]-float64(samples[i])) > 1e-3 {
			t.Fatalf("sample %d = %g, want about %g", i, got[i], samples[i])
		}
	}
}

func TestReadMonoRejectsUnknownExtension(t *testing.T) {
	if _, _, err := ReadMono("song.ogg"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestResampleIfNeededPassThrough(t *testing.T) {
	in := []float64{0.1, 0.2, 0.3}
	out, err := ResampleIfNeeded(in, 44100, 44100)
	if err != nil {
		t.Fatalf("ResampleIfNeeded: %v", err)
	}
	if len(out) != len(in) || out[0] != in[0] {
		t.Fatalf("matching rates must pass through unchanged")
	}
}
