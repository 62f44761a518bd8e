// Package tags builds the DigitalOcean tag sets attached to fleet instances.
//
// Fleet membership is derived from tags, so every instance created by a
// spawn carries the configured fleet tag plus a managed-by marker.
package tags
