// Package dns keeps A records on a DigitalOcean-managed domain in step with
// fleet instance addresses.
//
// Reconcile updates the record for a host in place when one exists and
// creates it otherwise, so repeated calls never produce duplicates.
// RemoveRecord deletes every A record for a host when its instance is
// destroyed.
package dns
