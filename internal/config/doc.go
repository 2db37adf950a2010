// Package config loads, normalizes, and validates cuesmith configuration.
//
// Configuration lives in a TOML file (default ~/.config/cuesmith/config.toml,
// falling back to ./cuesmith.toml). Every field has a default, so a missing
// file is not an error. Paths are expanded ("~" and relative paths become
// absolute) and the subtitle and alignment sections translate directly into
// the option structs used by the pipeline.
package config
