// Package types defines the configuration, value kinds, listing entries, and
// standard errors shared by the pantry store, its row backends, and the CLI.
package types
