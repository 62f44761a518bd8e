// Package preflight scores every configuration item against local rules and
// live account data before a large operation.
//
// Offline checks run first and need no network. A malformed credential
// stops validation there, as does an account that cannot be read with it.
// The remaining online checks all run even when some fail, so one pass
// shows every problem.
package preflight
