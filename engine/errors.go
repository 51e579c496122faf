package engine

import "errors"

// ErrConfiguration marks a planning run rejected before any computation
// ran: a bad rate, an inconsistent gas list, a bottom time too short for
// the descent it implies. These are checked up front so a caller never
// pays for a search that was doomed from the first step.
var ErrConfiguration = errors.New("engine: invalid configuration")

// ErrComputation marks a failure discovered while planning: a
// find-stop-length search that didn't converge (wrapping the ascent
// package error describing the cause), or a first stop deeper than the
// bottom depth, which means the first-stop search degenerated.
var ErrComputation = errors.New("engine: computation failed")
