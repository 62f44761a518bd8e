package digitalocean

import (
	"context"
)

// MockClient is a mock implementation of Gateway. Unset funcs fall back to
// empty, successful results.
type MockClient struct {
	ListInstancesFunc   func(ctx context.Context, tag string) ([]Instance, error)
	GetInstanceFunc     func(ctx context.Context, id int) (*Instance, error)
	CreateInstanceFunc  func(ctx context.Context, opts InstanceCreateOpts) (*Instance, error)
	DestroyInstanceFunc func(ctx context.Context, id int) error

	ListRecordsFunc  func(ctx context.Context, domain string) ([]Record, error)
	CreateRecordFunc func(ctx context.Context, domain string, opts RecordOpts) (*Record, error)
	UpdateRecordFunc func(ctx context.Context, domain string, id int, opts RecordOpts) (*Record, error)
	DeleteRecordFunc func(ctx context.Context, domain string, id int) error

	ListRegionsFunc  func(ctx context.Context) ([]Region, error)
	ListSizesFunc    func(ctx context.Context) ([]Size, error)
	ListImagesFunc   func(ctx context.Context) ([]Image, error)
	ListKeysFunc     func(ctx context.Context) ([]Key, error)
	ListProjectsFunc func(ctx context.Context) ([]Project, error)
	ListDomainsFunc  func(ctx context.Context) ([]Domain, error)

	GetAccountFunc      func(ctx context.Context) (*Account, error)
	GetBalanceFunc      func(ctx context.Context) (*Balance, error)
	AssignToProjectFunc func(ctx context.Context, instanceID int, projectName string) error
}

var _ Gateway = (*MockClient)(nil)

func (m *MockClient) ListInstances(ctx context.Context, tag string) ([]Instance, error) {
	if m.ListInstancesFunc != nil {
		return m.ListInstancesFunc(ctx, tag)
	}
	return nil, nil
}

func (m *MockClient) GetInstance(ctx context.Context, id int) (*Instance, error) {
	if m.GetInstanceFunc != nil {
		return m.GetInstanceFunc(ctx, id)
	}
	return &Instance{ID: id, Address: "127.0.0.1"}, nil
}

func (m *MockClient) CreateInstance(ctx context.Context, opts InstanceCreateOpts) (*Instance, error) {
	if m.CreateInstanceFunc != nil {
		return m.CreateInstanceFunc(ctx, opts)
	}
	return &Instance{
		ID:     1,
		Name:   opts.Name,
		Region: opts.Region,
		Size:   opts.Size,
		Image:  opts.Image,
		Tags:   opts.Tags,
		Status: "new",
	}, nil
}

func (m *MockClient) DestroyInstance(ctx context.Context, id int) error {
	if m.DestroyInstanceFunc != nil {
		return m.DestroyInstanceFunc(ctx, id)
	}
	return nil
}

func (m *MockClient) ListRecords(ctx context.Context, domain string) ([]Record, error) {
	if m.ListRecordsFunc != nil {
		return m.ListRecordsFunc(ctx, domain)
	}
	return nil, nil
}

func (m *MockClient) CreateRecord(ctx context.Context, domain string, opts RecordOpts) (*Record, error) {
	if m.CreateRecordFunc != nil {
		return m.CreateRecordFunc(ctx, domain, opts)
	}
	return &Record{ID: 1, Type: RecordTypeA, Name: opts.Name, Data: opts.Data, TTL: opts.TTL}, nil
}

func (m *MockClient) UpdateRecord(ctx context.Context, domain string, id int, opts RecordOpts) (*Record, error) {
	if m.UpdateRecordFunc != nil {
		return m.UpdateRecordFunc(ctx, domain, id, opts)
	}
	return &Record{ID: id, Type: RecordTypeA, Name: opts.Name, Data: opts.Data, TTL: opts.TTL}, nil
}

func (m *MockClient) DeleteRecord(ctx context.Context, domain string, id int) error {
	if m.DeleteRecordFunc != nil {
		return m.DeleteRecordFunc(ctx, domain, id)
	}
	return nil
}

func (m *MockClient) ListRegions(ctx context.Context) ([]Region, error) {
	if m.ListRegionsFunc != nil {
		return m.ListRegionsFunc(ctx)
	}
	return nil, nil
}

func (m *MockClient) ListSizes(ctx context.Context) ([]Size, error) {
	if m.ListSizesFunc != nil {
		return m.ListSizesFunc(ctx)
	}
	return nil, nil
}

func (m *MockClient) ListImages(ctx context.Context) ([]Image, error) {
	if m.ListImagesFunc != nil {
		return m.ListImagesFunc(ctx)
	}
	return nil, nil
}

func (m *MockClient) ListKeys(ctx context.Context) ([]Key, error) {
	if m.ListKeysFunc != nil {
		return m.ListKeysFunc(ctx)
	}
	return nil, nil
}

func (m *MockClient) ListProjects(ctx context.Context) ([]Project, error) {
	if m.ListProjectsFunc != nil {
		return m.ListProjectsFunc(ctx)
	}
	return nil, nil
}

func (m *MockClient) ListDomains(ctx context.Context) ([]Domain, error) {
	if m.ListDomainsFunc != nil {
		return m.ListDomainsFunc(ctx)
	}
	return nil, nil
}

func (m *MockClient) GetAccount(ctx context.Context) (*Account, error) {
	if m.GetAccountFunc != nil {
		return m.GetAccountFunc(ctx)
	}
	return &Account{Email: "mock@example.com", Status: "active"}, nil
}

func (m *MockClient) GetBalance(ctx context.Context) (*Balance, error) {
	if m.GetBalanceFunc != nil {
		return m.GetBalanceFunc(ctx)
	}
	return &Balance{}, nil
}

func (m *MockClient) AssignToProject(ctx context.Context, instanceID int, projectName string) error {
	if m.AssignToProjectFunc != nil {
		return m.AssignToProjectFunc(ctx, instanceID, projectName)
	}
	return nil
}
