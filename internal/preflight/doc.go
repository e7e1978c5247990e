// Package preflight provides readiness checks for the filesystem paths,
// search endpoint and external programs songfetch depends on.
//
// These checks run in two contexts:
//   - "songfetch run" calls RunAll before touching the title file and stops
//     when a required check fails.
//   - "songfetch status" prints every check, including external binaries.
package preflight
