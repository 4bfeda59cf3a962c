// Package orchestrator validates completed intake records and hands them to a
// named document renderer, logging the outcome.
package orchestrator
