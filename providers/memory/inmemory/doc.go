// Package inmemory provides a concurrency-safe, slice-backed implementation
// of [memory.Provider]. History lives in process memory only.
package inmemory
