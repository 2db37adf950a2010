// Package preflight provides readiness checks for the directories, run log,
// and listener that cuesmith depends on.
//
// The CLI "config validate" command runs every check and prints the results;
// "serve" runs them before binding so a misconfigured data directory fails
// fast with a readable reason instead of a SQLite error.
package preflight
