// Package subtitles turns word-timed speech recognition output into
// display-ready subtitle cues.
//
// Generate runs three stages in order. The normalizer cleans recognizer
// words (clamping times, merging stray punctuation and split contractions).
// The segmenter groups words into cue drafts on sentence ends, pauses,
// character budget and duration. The layout stage assigns final timings under
// reading-speed and gap constraints and wraps text into balanced lines.
//
// The package is pure: every run owns its own accumulator and reports
// progress only through the caller-supplied Hooks.OnLog sink. Cues can be
// exported to SRT or WebVTT and re-checked with ValidateCues.
package subtitles
