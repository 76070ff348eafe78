// Package limiter provides a real-time multichannel peak limiter with
// lookahead prediction, program-dependent release, and inter-sample peak
// estimation.
//
// The Engine analyzes every block on the undelayed signal, delays the main
// path through a per-channel lookahead line, and applies a single shared
// gain curve to all channels, so gain reduction is in place before a
// transient reaches the output. Processing is single-writer and
// synchronous: the caller serializes Configure/Process/Reset on one
// processing goroutine, and Process never allocates once buffers are sized.
package limiter
