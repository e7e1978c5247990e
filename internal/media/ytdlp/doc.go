// Package ytdlp wraps the yt-dlp executable.
//
// The client runs flat "ytsearchN:" listings for the search backend and
// audio-only downloads for the fetcher. Command failures surface as
// *ExecError carrying the exit code and trimmed output. Tests replace the
// process runner through an unexported exec hook.
package ytdlp
