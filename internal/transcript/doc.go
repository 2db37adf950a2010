// Package transcript defines the word-timed speech recognition payload the
// subtitle pipeline consumes, and loads it from WhisperX-style JSON files.
package transcript
