// Package server exposes the generation service over HTTP.
//
// It owns the listener lifecycle and the data directory lock so only one
// server writes to a run log at a time. Handlers translate generation
// errors into status codes: validation failures are 400, strict alignment
// rejections are 422 with the alignment report, and everything else is 500
// with the run id when one was allocated.
package server
