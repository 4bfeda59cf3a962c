// Package collect binds collected answers to an intake record.
//
// Collectors (terminal prompts, browser form posts) produce a tree of values
// keyed by the dotted field paths declared in package record; Bind coerces
// that tree into a record.IntakeRecord.
package collect
