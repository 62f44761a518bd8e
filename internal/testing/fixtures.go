package testing

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/harborwave/harbor-wave/internal/platform/digitalocean"
)

// CloudFixture is an in-memory DigitalOcean account. Its Mock method returns
// a MockClient whose funcs read and write the fixture state, so orchestrators
// can be exercised end to end without HTTP.
type CloudFixture struct {
	mu sync.Mutex

	nextInstanceID int
	nextRecordID   int

	Instances []digitalocean.Instance
	Records   map[string][]digitalocean.Record
	Domains   []digitalocean.Domain
	Regions   []digitalocean.Region
	Sizes     []digitalocean.Size
	Keys      []digitalocean.Key
	Projects  []digitalocean.Project
	Images    []digitalocean.Image

	// AddressAfterPolls is how many GetInstance calls an instance needs before
	// it reports an address. Negative means never.
	AddressAfterPolls int
	// CreateErrors fails creation of the named instances.
	CreateErrors map[string]error
	// DestroyErrors fails destruction of the given instance IDs.
	DestroyErrors map[int]error
	// ListError fails ListInstances.
	ListError error
	// AccountError fails GetAccount.
	AccountError error

	// CreateRequests records every create call, including failed ones.
	CreateRequests []digitalocean.InstanceCreateOpts

	// Assigned maps instance ID to the project it was assigned to.
	Assigned map[int]string

	polls      map[int]int
	Creates    int
	Destroys   int
	RecordOps  int
	ListCalls  int
	GetCalls   int
	AssignCall int
}

// NewCloudFixture returns an account with one region, one size, one key,
// one custom image with ID 4242 and no instances.
func NewCloudFixture() *CloudFixture {
	return &CloudFixture{
		nextInstanceID: 100,
		nextRecordID:   500,
		Records:        make(map[string][]digitalocean.Record),
		Regions:        []digitalocean.Region{{Slug: "nyc3", Name: "New York 3", Available: true}},
		Sizes:          []digitalocean.Size{{Slug: "s-1vcpu-1gb", Vcpus: 1, Memory: 1024, Disk: 25, PriceMonthly: 6, Available: true}},
		Keys:           []digitalocean.Key{{ID: 11, Name: "laptop", Fingerprint: "aa:bb"}},
		Images:         []digitalocean.Image{{ID: 4242, Name: "harbor-base", Regions: []string{"nyc3"}}},
		CreateErrors:   make(map[string]error),
		DestroyErrors:  make(map[int]error),
		Assigned:       make(map[int]string),
		polls:          make(map[int]int),
	}
}

// WithDomain registers domain on the account.
func (f *CloudFixture) WithDomain(domain string) *CloudFixture {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Domains = append(f.Domains, digitalocean.Domain{Name: domain, TTL: 1800})
	return f
}

// WithProject adds a project to the account.
func (f *CloudFixture) WithProject(name string) *CloudFixture {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Projects = append(f.Projects, digitalocean.Project{ID: "p-" + name, Name: name})
	return f
}

// AddInstance seeds a running instance and returns its ID.
func (f *CloudFixture) AddInstance(name, address string, tags ...string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextInstanceID++
	f.Instances = append(f.Instances, digitalocean.Instance{
		ID:      f.nextInstanceID,
		Name:    name,
		Region:  "nyc3",
		Tags:    tags,
		Address: address,
		Status:  "active",
	})
	return f.nextInstanceID
}

// AddRecord seeds an A record.
func (f *CloudFixture) AddRecord(domain, name, data string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextRecordID++
	f.Records[domain] = append(f.Records[domain], digitalocean.Record{
		ID: f.nextRecordID, Type: digitalocean.RecordTypeA, Name: name, Data: data, TTL: 1800,
	})
	return f.nextRecordID
}

// InstanceNames returns the names of the live instances in creation order.
func (f *CloudFixture) InstanceNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.Instances))
	for _, in := range f.Instances {
		names = append(names, in.Name)
	}
	return names
}

// RecordsNamed returns the records on domain whose name equals name.
func (f *CloudFixture) RecordsNamed(domain, name string) []digitalocean.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []digitalocean.Record
	for _, r := range f.Records[domain] {
		if r.Name == name {
			out = append(out, r)
		}
	}
	return out
}

// Instance returns the live instance named name.
func (f *CloudFixture) Instance(name string) (digitalocean.Instance, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, in := range f.Instances {
		if in.Name == name {
			return in, true
		}
	}
	return digitalocean.Instance{}, false
}

// Mock returns a MockClient backed by the fixture.
func (f *CloudFixture) Mock() *digitalocean.MockClient {
	return &digitalocean.MockClient{
		ListInstancesFunc:   f.listInstances,
		GetInstanceFunc:     f.getInstance,
		CreateInstanceFunc:  f.createInstance,
		DestroyInstanceFunc: f.destroyInstance,

		ListRecordsFunc:  f.listRecords,
		CreateRecordFunc: f.createRecord,
		UpdateRecordFunc: f.updateRecord,
		DeleteRecordFunc: f.deleteRecord,

		ListRegionsFunc: func(context.Context) ([]digitalocean.Region, error) {
			return locked(f, func() []digitalocean.Region { return slices.Clone(f.Regions) }), nil
		},
		ListSizesFunc: func(context.Context) ([]digitalocean.Size, error) {
			return locked(f, func() []digitalocean.Size { return slices.Clone(f.Sizes) }), nil
		},
		ListKeysFunc: func(context.Context) ([]digitalocean.Key, error) {
			return locked(f, func() []digitalocean.Key { return slices.Clone(f.Keys) }), nil
		},
		ListImagesFunc: func(context.Context) ([]digitalocean.Image, error) {
			return locked(f, func() []digitalocean.Image { return slices.Clone(f.Images) }), nil
		},
		ListProjectsFunc: func(context.Context) ([]digitalocean.Project, error) {
			return locked(f, func() []digitalocean.Project { return slices.Clone(f.Projects) }), nil
		},
		ListDomainsFunc: func(context.Context) ([]digitalocean.Domain, error) {
			return locked(f, func() []digitalocean.Domain { return slices.Clone(f.Domains) }), nil
		},
		GetAccountFunc: func(context.Context) (*digitalocean.Account, error) {
			if f.AccountError != nil {
				return nil, f.AccountError
			}
			return &digitalocean.Account{Email: "fleet@example.com", Status: "active", DropletLimit: 25}, nil
		},
		AssignToProjectFunc: f.assign,
	}
}

func locked[T any](f *CloudFixture, fn func() T) T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn()
}

func (f *CloudFixture) listInstances(_ context.Context, tag string) ([]digitalocean.Instance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	if f.ListError != nil {
		return nil, f.ListError
	}
	var out []digitalocean.Instance
	for _, in := range f.Instances {
		if slices.Contains(in.Tags, tag) {
			out = append(out, in)
		}
	}
	return out, nil
}

func (f *CloudFixture) getInstance(_ context.Context, id int) (*digitalocean.Instance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.GetCalls++
	for i := range f.Instances {
		in := &f.Instances[i]
		if in.ID != id {
			continue
		}
		if in.Address == "" && f.AddressAfterPolls >= 0 {
			f.polls[id]++
			if f.polls[id] > f.AddressAfterPolls {
				in.Address = fmt.Sprintf("203.0.113.%d", id%250)
				in.Status = "active"
			}
		}
		out := *in
		return &out, nil
	}
	return nil, fmt.Errorf("get droplet %d: %w", id, digitalocean.ErrNotFound)
}

func (f *CloudFixture) createInstance(_ context.Context, opts digitalocean.InstanceCreateOpts) (*digitalocean.Instance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Creates++
	f.CreateRequests = append(f.CreateRequests, opts)
	if err := f.CreateErrors[opts.Name]; err != nil {
		return nil, err
	}
	f.nextInstanceID++
	in := digitalocean.Instance{
		ID:     f.nextInstanceID,
		Name:   opts.Name,
		Region: opts.Region,
		Size:   opts.Size,
		Image:  opts.Image,
		Tags:   slices.Clone(opts.Tags),
		Status: "new",
	}
	f.Instances = append(f.Instances, in)
	return &in, nil
}

func (f *CloudFixture) destroyInstance(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Destroys++
	if err := f.DestroyErrors[id]; err != nil {
		return err
	}
	i := slices.IndexFunc(f.Instances, func(in digitalocean.Instance) bool { return in.ID == id })
	if i < 0 {
		return fmt.Errorf("delete droplet %d: %w", id, digitalocean.ErrNotFound)
	}
	f.Instances = slices.Delete(f.Instances, i, i+1)
	return nil
}

func (f *CloudFixture) listRecords(_ context.Context, domain string) ([]digitalocean.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.hasDomain(domain) {
		return nil, fmt.Errorf("list records %s: %w", domain, digitalocean.ErrNotFound)
	}
	return slices.Clone(f.Records[domain]), nil
}

func (f *CloudFixture) createRecord(_ context.Context, domain string, opts digitalocean.RecordOpts) (*digitalocean.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RecordOps++
	if !f.hasDomain(domain) {
		return nil, fmt.Errorf("create record %s: %w", domain, digitalocean.ErrNotFound)
	}
	f.nextRecordID++
	r := digitalocean.Record{ID: f.nextRecordID, Type: digitalocean.RecordTypeA, Name: opts.Name, Data: opts.Data, TTL: opts.TTL}
	f.Records[domain] = append(f.Records[domain], r)
	return &r, nil
}

func (f *CloudFixture) updateRecord(_ context.Context, domain string, id int, opts digitalocean.RecordOpts) (*digitalocean.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RecordOps++
	for i := range f.Records[domain] {
		r := &f.Records[domain][i]
		if r.ID == id {
			r.Name, r.Data, r.TTL = opts.Name, opts.Data, opts.TTL
			out := *r
			return &out, nil
		}
	}
	return nil, fmt.Errorf("update record %d: %w", id, digitalocean.ErrNotFound)
}

func (f *CloudFixture) deleteRecord(_ context.Context, domain string, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RecordOps++
	recs := f.Records[domain]
	i := slices.IndexFunc(recs, func(r digitalocean.Record) bool { return r.ID == id })
	if i < 0 {
		return fmt.Errorf("delete record %d: %w", id, digitalocean.ErrNotFound)
	}
	f.Records[domain] = slices.Delete(recs, i, i+1)
	return nil
}

func (f *CloudFixture) assign(_ context.Context, id int, project string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.AssignCall++
	if !slices.ContainsFunc(f.Projects, func(p digitalocean.Project) bool { return p.Name == project }) {
		return fmt.Errorf("assign droplet %d: %w: %q", id, digitalocean.ErrProjectNotFound, project)
	}
	f.Assigned[id] = project
	return nil
}

func (f *CloudFixture) hasDomain(domain string) bool {
	return slices.ContainsFunc(f.Domains, func(d digitalocean.Domain) bool {
		return strings.EqualFold(d.Name, domain)
	})
}
