package digitalocean

import (
	"context"
	"fmt"
	"time"

	"github.com/digitalocean/godo"
	"golang.org/x/oauth2"

	"github.com/harborwave/harbor-wave/internal/config"
	"github.com/harborwave/harbor-wave/internal/util/retry"
)

// InstanceCreateOpts holds all parameters for creating a droplet.
type InstanceCreateOpts struct {
	Name   string
	Region string
	Size   string
	// Image is a numeric custom image ID or a public image slug.
	Image    string
	SSHKeys  []int
	Tags     []string
	UserData string
}

// RecordOpts describes an A record write.
type RecordOpts struct {
	Name string
	Data string
	TTL  int
}

// InstanceManager covers droplet lifecycle.
type InstanceManager interface {
	ListInstances(ctx context.Context, tag string) ([]Instance, error)
	GetInstance(ctx context.Context, id int) (*Instance, error)
	CreateInstance(ctx context.Context, opts InstanceCreateOpts) (*Instance, error)
	DestroyInstance(ctx context.Context, id int) error
}

// RecordManager covers A records on a managed domain.
type RecordManager interface {
	ListRecords(ctx context.Context, domain string) ([]Record, error)
	CreateRecord(ctx context.Context, domain string, opts RecordOpts) (*Record, error)
	UpdateRecord(ctx context.Context, domain string, id int, opts RecordOpts) (*Record, error)
	DeleteRecord(ctx context.Context, domain string, id int) error
}

// Catalog lists account and platform resources.
type Catalog interface {
	ListRegions(ctx context.Context) ([]Region, error)
	ListSizes(ctx context.Context) ([]Size, error)
	ListImages(ctx context.Context) ([]Image, error)
	ListKeys(ctx context.Context) ([]Key, error)
	ListProjects(ctx context.Context) ([]Project, error)
	ListDomains(ctx context.Context) ([]Domain, error)
}

// AccountManager covers account level reads and project assignment.
type AccountManager interface {
	GetAccount(ctx context.Context) (*Account, error)
	GetBalance(ctx context.Context) (*Balance, error)
	AssignToProject(ctx context.Context, instanceID int, projectName string) error
}

// Gateway combines everything the orchestrators need from the provider.
type Gateway interface {
	InstanceManager
	RecordManager
	Catalog
	AccountManager
}

// Client implements Gateway using the DigitalOcean API.
type Client struct {
	client    *godo.Client
	timeouts  *config.Timeouts
	baseURL   string
	userAgent string
}

var _ Gateway = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *Client) {
		c.timeouts = t
	}
}

// WithGodoClient sets a custom godo client (useful for testing).
func WithGodoClient(gc *godo.Client) ClientOption {
	return func(c *Client) {
		c.client = gc
	}
}

// WithBaseURL points the client at another API endpoint.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithUserAgent sets the User-Agent prefix sent with each request.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// Connect validates the token format and builds a client. No network call is
// made; a rejected token surfaces as ErrCredentialRejected on first use.
func Connect(token string, opts ...ClientOption) (*Client, error) {
	if err := ValidateCredential(token); err != nil {
		return nil, err
	}

	c := &Client{timeouts: config.LoadTimeouts()}
	for _, opt := range opts {
		opt(c)
	}
	if c.client != nil {
		return c, nil
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(context.Background(), ts)
	httpClient.Timeout = c.timeouts.APICall

	var godoOpts []godo.ClientOpt
	if c.baseURL != "" {
		godoOpts = append(godoOpts, godo.SetBaseURL(c.baseURL))
	}
	if c.userAgent != "" {
		godoOpts = append(godoOpts, godo.SetUserAgent(c.userAgent))
	}
	gc, err := godo.New(httpClient, godoOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create DigitalOcean client: %w", err)
	}
	c.client = gc
	return c, nil
}

// Godo returns the underlying godo.Client for API features not exposed here.
func (c *Client) Godo() *godo.Client {
	return c.client
}

// read runs a read-only call, retrying transient failures. RetryMaxAttempts
// bounds the total number of calls, the first one included.
func (c *Client) read(ctx context.Context, op string, fn func() error) error {
	retries := max(c.timeouts.RetryMaxAttempts-1, 0)
	return retry.WithExponentialBackoff(ctx, func() error {
		return classify(op, fn())
	},
		retry.WithMaxRetries(retries),
		retry.WithInitialDelay(c.timeouts.RetryInitialDelay),
		retry.WithMaxDelay(15*time.Second),
		retry.WithRetryIf(IsRetryable),
	)
}

// listAll walks every page of a godo list endpoint.
func listAll[T any](ctx context.Context, c *Client, op string, page func(ctx context.Context, opt *godo.ListOptions) ([]T, *godo.Response, error)) ([]T, error) {
	var all []T
	opt := &godo.ListOptions{Page: 1, PerPage: 200}
	for {
		var (
			items []T
			resp  *godo.Response
		)
		err := c.read(ctx, op, func() error {
			var err error
			items, resp, err = page(ctx, opt)
			return err
		})
		if err != nil {
			return nil, err
		}
		all = append(all, items...)

		if resp == nil || resp.Links == nil || resp.Links.IsLastPage() {
			return all, nil
		}
		current, err := resp.Links.CurrentPage()
		if err != nil {
			return nil, fmt.Errorf("%s: failed to read page number: %w", op, err)
		}
		opt.Page = current + 1
	}
}
