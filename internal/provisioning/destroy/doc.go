// Package destroy tears down fleet droplets and their DNS records.
//
// Targets are resolved from a fresh provider read: the whole tagged fleet
// for ALL, otherwise the tagged droplets in the base-name series. Each
// droplet is destroyed independently; when a domain is configured its A
// record is removed afterwards. A failure on one target is counted and the
// rest are still processed.
package destroy
