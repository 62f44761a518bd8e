// Package fleet resolves which live droplets belong to a fleet.
//
// Membership is never stored. Every call recomputes it from a fresh
// provider read: all droplets carrying the fleet tag, optionally narrowed to
// those whose name starts with the configured base name.
package fleet
