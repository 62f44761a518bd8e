// Package provisioning provides shared types, interfaces, and orchestration for fleet provisioning.
//
// # Subpackages
//
//   - fleet/: fleet membership by tag and by name series
//   - spawn/: batch creation of instances
//   - readiness/: address-readiness polling
//   - dns/: A record reconciliation and removal
//   - destroy/: fleet teardown with DNS cleanup
//   - preflight/: offline and online configuration checks
//
// # Core Types
//
// Context carries configuration, the provider gateway, timeouts, metrics and the observer.
// Phase defines a provisioning step with Name() and Provision() methods.
// The error kinds in errors.go classify every failure the CLI maps to an exit code.
package provisioning
