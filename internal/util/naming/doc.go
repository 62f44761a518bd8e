// Package naming provides the naming rules for fleet instances.
//
// A batch of one instance is named exactly after the base name so single-host
// setups get a stable hostname; larger batches append the zero-based sequence
// index ("web0", "web1", ...). With DNS enabled the instance name is the
// fully-qualified host name.
package naming
