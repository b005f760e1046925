// Package logclient defines the consumer surface reconciliation reads
// through: partition assignment, absolute seeks, bounded polls, and end
// offsets. The embedded implementation serves the single-binary mode;
// remote broker clients implement the same Reader interface.
package logclient
