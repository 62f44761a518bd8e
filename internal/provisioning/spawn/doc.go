// Package spawn creates a batch of fleet droplets.
//
// A spawn runs in three phases on a provisioning pipeline:
//
//   - create: one droplet per sequence index on the bounded worker pool, each
//     carrying its metadata payload and the fleet tags. A failed create is
//     counted and the batch continues.
//   - await: wait for the provider to assign addresses.
//   - dns: publish an A record per instance when a domain is configured.
//
// Every precondition (count, base name, template, domain, payload, SSH key)
// is checked before the first droplet is requested.
package spawn
