// Package generation runs a subtitle request end to end: validation, optional
// script alignment behind the strict gate, the cue pipeline, run logging, and
// webinar persistence.
//
// Service is shared by the HTTP server and the CLI. Every request gets a run
// id and a run log entry; the pipeline's stage events and the service's own
// log lines are recorded against that run in emission order.
package generation
