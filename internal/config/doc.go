// Package config loads sift's configuration from defaults, an optional
// JSON or YAML file, and SIFT_* environment variables, in that order of
// precedence (later overlays win).
package config
