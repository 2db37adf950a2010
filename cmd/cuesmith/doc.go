// Package main hosts the cuesmith CLI entrypoint and command graph.
//
// The Cobra command tree generates subtitles from recognizer transcripts,
// aligns scripts, serves the HTTP API, inspects the run log, checks existing
// SubRip files, and scaffolds configuration. Command output goes to stdout;
// logs go to stderr so output can be piped.
package main
