// Package memory provides in-memory implementations of driven port interfaces.
// They hold state for the lifetime of the process only.
package memory
