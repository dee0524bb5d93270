package ffmpeg

import (
	"fmt"
	"strconv"
)

// AudioArgs builds the fixed ffmpeg argument vector for the audio extraction:
// first audio stream only, no video, constant-bitrate opus tuned for voice,
// all prior metadata dropped and replaced.
func AudioArgs(s Settings, req AudioRequest, output string) []string {
	return []string{
		"-y",
		"-i", req.Input,
		"-map", "0:a:0",
		"-vn",
		"-c:a", "libopus",
		"-application", s.AudioApplication,
		"-b:a", s.AudioBitrate,
		"-map_metadata", "-1",
		"-metadata", "title=" + req.MetaTitle,
		"-metadata", "album_artist=" + req.AlbumArtist,
		"-metadata:s:a:0", "title=" + req.MetaTitle,
		output,
	}
}

// VideoArgs builds the fixed ffmpeg argument vector for the video compression:
// scale to the configured height with an even width, strip metadata, encode
// libx265 at a fixed quality and frame-rate cap, copy audio/subtitle/chapter
// streams through.
func VideoArgs(s Settings, req VideoRequest, output string) []string {
	return []string{
		"-y",
		"-i", req.Input,
		"-vf", fmt.Sprintf("scale=-2:%d", s.VideoHeight),
		"-map_metadata", "-1",
		"-c:v", "libx265",
		"-preset", s.VideoPreset,
		"-crf", strconv.Itoa(s.VideoCRF),
		"-r", strconv.Itoa(s.VideoFPSCap),
		"-c:a", "copy",
		"-c:s", "copy",
		"-map_chapters", "0",
		"-metadata:s:a:0", "title=" + req.MetaTitle,
		output,
	}
}
