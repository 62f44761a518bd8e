// Package readiness waits for the provider to assign public addresses to
// newly created droplets.
package readiness
