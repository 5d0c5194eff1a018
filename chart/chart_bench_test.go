package chart

import "testing"

func BenchmarkAnalyze(b *testing.B) {
	sr := 44100
	buf := makeClickTrack(sr, 0.4, 30)
	p := DifficultyMedium.Profile()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Analyze(buf, sr, p); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRMSEnvelope(b *testing.B) {
	buf := makeClickTrack(44100, 0.4, 30)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = rmsEnvelope(buf, windowSize, hopSize)
	}
}

func BenchmarkPickOnsets(b *testing.B) {
	buf := makeClickTrack(44100, 0.4, 30)
	env := rmsEnvelope(buf, windowSize, hopSize)
	curve := onsetCurve(env)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = pickOnsets(curve, env, 44100, 1.0)
	}
}
