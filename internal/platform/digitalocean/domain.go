package digitalocean

import (
	"context"
	"fmt"

	"github.com/digitalocean/godo"
)

// RecordTypeA is the only record type harbor-wave manages.
const RecordTypeA = "A"

// Record is a DNS record on a managed domain.
type Record struct {
	ID   int    `json:"id" yaml:"id"`
	Type string `json:"type" yaml:"type"`
	Name string `json:"name" yaml:"name"`
	Data string `json:"data" yaml:"data"`
	TTL  int    `json:"ttl" yaml:"ttl"`
}

// Domain is a DigitalOcean managed domain.
type Domain struct {
	Name string `json:"name" yaml:"name"`
	TTL  int    `json:"ttl" yaml:"ttl"`
}

func recordFromGodo(r *godo.DomainRecord) Record {
	return Record{ID: r.ID, Type: r.Type, Name: r.Name, Data: r.Data, TTL: r.TTL}
}

func editRequest(opts RecordOpts) *godo.DomainRecordEditRequest {
	return &godo.DomainRecordEditRequest{
		Type: RecordTypeA,
		Name: opts.Name,
		Data: opts.Data,
		TTL:  opts.TTL,
	}
}

// ListDomains returns the domains managed by the account.
func (c *Client) ListDomains(ctx context.Context) ([]Domain, error) {
	domains, err := listAll(ctx, c, "list domains", c.client.Domains.List)
	if err != nil {
		return nil, err
	}
	out := make([]Domain, 0, len(domains))
	for _, d := range domains {
		out = append(out, Domain{Name: d.Name, TTL: d.TTL})
	}
	return out, nil
}

// ListRecords returns every record of domain, of all types.
func (c *Client) ListRecords(ctx context.Context, domain string) ([]Record, error) {
	records, err := listAll(ctx, c, "list records of "+domain, func(ctx context.Context, opt *godo.ListOptions) ([]godo.DomainRecord, *godo.Response, error) {
		return c.client.Domains.Records(ctx, domain, opt)
	})
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(records))
	for i := range records {
		out = append(out, recordFromGodo(&records[i]))
	}
	return out, nil
}

// CreateRecord adds an A record to domain.
func (c *Client) CreateRecord(ctx context.Context, domain string, opts RecordOpts) (*Record, error) {
	rec, _, err := c.client.Domains.CreateRecord(ctx, domain, editRequest(opts))
	if err != nil {
		return nil, classify(fmt.Sprintf("create record %s.%s", opts.Name, domain), err)
	}
	out := recordFromGodo(rec)
	return &out, nil
}

// UpdateRecord rewrites the A record id on domain.
func (c *Client) UpdateRecord(ctx context.Context, domain string, id int, opts RecordOpts) (*Record, error) {
	rec, _, err := c.client.Domains.EditRecord(ctx, domain, id, editRequest(opts))
	if err != nil {
		return nil, classify(fmt.Sprintf("update record %s.%s", opts.Name, domain), err)
	}
	out := recordFromGodo(rec)
	return &out, nil
}

// DeleteRecord removes record id from domain.
func (c *Client) DeleteRecord(ctx context.Context, domain string, id int) error {
	_, err := c.client.Domains.DeleteRecord(ctx, domain, id)
	return classify(fmt.Sprintf("delete record %d on %s", id, domain), err)
}
