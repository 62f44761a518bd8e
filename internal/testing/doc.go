// Package testing provides test utilities, builders, and fixtures for unit tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - ConfigBuilder: Fluent builder for creating test configurations
//   - CloudFixture: In-memory DigitalOcean account behind a digitalocean.MockClient
//   - RecordingObserver: Observer that keeps every event for assertions
//
// Usage:
//
//	cfg := testing.NewConfigBuilder().
//	    WithBaseName("web").
//	    WithDomain("example.com").
//	    Build()
//
//	cloud := testing.NewCloudFixture()
//	ctx := testing.NewProvisioningContext(t, cfg, cloud.Mock())
package testing
