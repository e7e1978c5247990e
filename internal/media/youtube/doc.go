// Package youtube downloads audio streams with github.com/kkdai/youtube/v2.
//
// The downloader resolves a watch link, prefers an audio-only MP4 format
// (highest bitrate first) and falls back to any format carrying audio
// channels. The stream is written to <dir>/<filename>.<ext>.
package youtube
