package constants

import "testing"

func TestParsePurpose(t *testing.T) {
	tests := []struct {
		in     string
		want   Purpose
		wantOK bool
	}{
		{"transcribe", PurposeTranscribe, true},
		{"Transcription", PurposeTranscribe, true},
		{"analyze", PurposeAnalyze, true},
		{"ANALYSIS", PurposeAnalyze, true},
		{"", PurposeAnalyze, false},
		{"garbage", PurposeAnalyze, false},
	}
	for _, tt := range tests {
		got, ok := ParsePurpose(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParsePurpose(%q) = (%s, %v), want (%s, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCanonicalizeIntensity(t *testing.T) {
	tests := []struct {
		in     string
		want   Intensity
		wantOK bool
	}{
		{"light", IntensityLight, true},
		{"EASY", IntensityLight, true},
		{"moderate", IntensityModerate, true},
		{"medium", IntensityModerate, true},
		{"hard", IntensityVigorous, true},
		{"Vigorous", IntensityVigorous, true},
		{"", IntensityModerate, false},
		{"unknown", IntensityModerate, false},
	}
	for _, tt := range tests {
		got, ok := CanonicalizeIntensity(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("CanonicalizeIntensity(%q) = (%s, %v), want (%s, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
