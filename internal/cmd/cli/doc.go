// Package cli implements the sift subcommands: checkpoint inspection,
// one-shot reconciliation passes, and embedded-store maintenance.
package cli
