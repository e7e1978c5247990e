// Package pipeline runs the title list through resolution and download.
//
// A run locks the title file, parses every line into a record and then:
//
//  1. resolves each enabled record without a link (or every enabled record
//     when re-resolution is on) and saves the list;
//  2. fetches each enabled record with a link, disables the ones that
//     downloaded, and saves the list again.
//
// Each save is a checkpoint: a run interrupted mid-phase keeps the file as
// it was after the previous checkpoint. Failures of individual titles are
// logged and counted but never stop the run; only title file errors do.
package pipeline
