// Package runtime assembles storage, checkpoint logs and the embedded
// topic store into a single-node instance the CLI runs against.
package runtime
