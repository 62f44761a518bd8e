// Package digitalocean provides the provider gateway for harbor-wave: a typed
// wrapper around the DigitalOcean API with credential checks, pagination,
// error classification and retries for transient read failures.
//
// # Architecture
//
//   - client.go: Gateway interface, Client construction and options
//   - credential.go: offline credential format validation
//   - errors.go: classification of API errors into sentinel kinds
//   - droplet.go: instance list, get, create and destroy
//   - domain.go: domains and DNS record management
//   - catalog.go: regions, sizes, images, keys and projects
//   - account.go: account, balance and project assignment
//   - mock.go: MockClient for tests in dependent packages
//
// # Error Kinds
//
// Every error returned by Client wraps one of the sentinels below together with
// the underlying godo error, so callers can use errors.Is:
//
//   - ErrNotFound: the API answered 404
//   - ErrCredentialRejected: the API answered 401 or 403
//   - ErrProviderUnavailable: 429, 5xx or a transport failure
//
// Reads retry ErrProviderUnavailable with exponential backoff. Creates never
// retry, since a lost response could otherwise produce a duplicate droplet.
//
// # Example Usage
//
//	client, err := digitalocean.Connect(token, digitalocean.WithTimeouts(config.LoadTimeouts()))
//	if err != nil {
//	    return err
//	}
//	instances, err := client.ListInstances(ctx, "harborwave")
package digitalocean
