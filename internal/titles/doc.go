// Package titles reads and writes the line-oriented title list.
//
// Each line is one record: a bare title ("Song A"), a resolved title
// ("Song A -> https://...") or either form prefixed with "-" to mark it
// disabled. Disabled lines are never touched by the pipeline and are written
// back byte for byte. Saves replace the whole file atomically, and Lock
// guards a title file against concurrent runs.
package titles
