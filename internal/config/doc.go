// Package config defines the harbor-wave settings model and its on-disk store.
//
// [Config] is a flat set of named items (region, size, base-name, tag, ...)
// with typed values and documented defaults. It is loaded once per command
// and passed explicitly to every component; there is no package-level
// mutable configuration.
//
// The [Store] persists settings as a JSON object in the per-user config
// directory and keeps the API credential in a separate, owner-only file so
// that the credential never appears in the settings blob.
//
// [Timeouts] collects polling and retry parameters tunable through
// environment variables.
package config
