package ffprobe

import (
	"testing"
)

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video", AvgFrameRate: "30000/1001"},
			{CodecType: "audio", Channels: 2},
			{CodecType: "audio", Channels: 1},
		},
		Format: Format{
			Duration: "123.45",
			Size:     "1000",
		},
	}
	if result.AudioStreamCount() != 2 {
		t.Fatalf("expected 2 audio streams, got %d", result.AudioStreamCount())
	}
	if result.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 1000 {
		t.Fatalf("unexpected size: %d", result.SizeBytes())
	}
	fps := result.AvgFrameRate()
	if fps < 29.96 || fps > 29.98 {
		t.Fatalf("unexpected frame rate: %v", fps)
	}
}

func TestAvgFrameRateForms(t *testing.T) {
	cases := []struct {
		name string
		rate string
		want float64
	}{
		{"rational", "25/1", 25},
		{"decimal", "23.976", 23.976},
		{"zero denominator", "30/0", 0},
		{"empty", "", 0},
		{"garbage", "n/a", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Result{Streams: []Stream{{CodecType: "video", AvgFrameRate: tc.rate}}}
			if got := result.AvgFrameRate(); got != tc.want {
				t.Fatalf("AvgFrameRate(%q) = %v, want %v", tc.rate, got, tc.want)
			}
		})
	}
}

func TestResultHelpersHandleInvalidNumbers(t *testing.T) {
	result := Result{
		Format: Format{
			Duration: "bad",
			Size:     "-1",
		},
	}
	if result.DurationSeconds() != 0 {
		t.Fatalf("expected duration 0, got %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 0 {
		t.Fatalf("expected size 0, got %d", result.SizeBytes())
	}
	if result.AvgFrameRate() != 0 {
		t.Fatalf("expected fps 0 with no video stream, got %v", result.AvgFrameRate())
	}
}
