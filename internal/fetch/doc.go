// Package fetch downloads one resolved link to disk and post-processes it.
//
// Fetch retries the download a bounded number of times, then optionally
// transcodes the file and normalizes its extension. Only the download
// decides success: a failed conversion is reported softly and the fetch
// still counts as successful. No partial-file cleanup is attempted.
package fetch
