// Package meta holds build-time metadata about the binary.
package meta

// Version is the version of the binary, set at build time via ldflags.
var Version = "v0.0.0-unknown"
