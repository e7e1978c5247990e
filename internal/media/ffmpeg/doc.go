// Package ffmpeg wraps the ffmpeg and ffprobe executables.
//
// Transcoder converts a downloaded container into an MP3 (or whatever the
// destination extension implies). Probe reads container metadata through
// ffprobe's JSON output and is used for best-effort duration reporting.
package ffmpeg
