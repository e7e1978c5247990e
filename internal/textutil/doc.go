// Package textutil provides filename and title comparison helpers.
//
// Titles from the title list become filenames by NFC normalisation, removal
// of filesystem-unsafe characters and replacement of whitespace runs with
// underscores, so "Song A" is stored as "Song_A". Term-frequency
// fingerprints let the CLI point out near-duplicate titles.
package textutil
