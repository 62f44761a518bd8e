package digitalocean

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/digitalocean/godo"
)

// Instance is a droplet as seen by harbor-wave.
type Instance struct {
	ID     int      `json:"id" yaml:"id"`
	Name   string   `json:"name" yaml:"name"`
	Region string   `json:"region" yaml:"region"`
	Size   string   `json:"size" yaml:"size"`
	Image  string   `json:"image" yaml:"image"`
	Tags   []string `json:"tags" yaml:"tags"`
	// Address is the public IPv4 address, empty until the provider assigns one.
	Address string `json:"address" yaml:"address"`
	Created string `json:"created" yaml:"created"`
	Status  string `json:"status" yaml:"status"`
}

// HasAddress reports whether the provider has assigned a public address.
func (i *Instance) HasAddress() bool {
	return i.Address != ""
}

func instanceFromDroplet(d *godo.Droplet) Instance {
	inst := Instance{
		ID:      d.ID,
		Name:    d.Name,
		Size:    d.SizeSlug,
		Tags:    slices.Clone(d.Tags),
		Created: d.Created,
		Status:  d.Status,
	}
	if d.Region != nil {
		inst.Region = d.Region.Slug
	}
	if inst.Size == "" && d.Size != nil {
		inst.Size = d.Size.Slug
	}
	if d.Image != nil {
		switch {
		case d.Image.Slug != "":
			inst.Image = d.Image.Slug
		case d.Image.ID != 0:
			inst.Image = strconv.Itoa(d.Image.ID)
		}
	}
	// PublicIPv4 only errors when the droplet has no networks yet
	if ip, err := d.PublicIPv4(); err == nil {
		inst.Address = ip
	}
	return inst
}

// ListInstances returns every droplet carrying tag, in provider order.
func (c *Client) ListInstances(ctx context.Context, tag string) ([]Instance, error) {
	droplets, err := listAll(ctx, c, "list droplets", func(ctx context.Context, opt *godo.ListOptions) ([]godo.Droplet, *godo.Response, error) {
		return c.client.Droplets.ListByTag(ctx, tag, opt)
	})
	if err != nil {
		return nil, err
	}

	instances := make([]Instance, 0, len(droplets))
	for i := range droplets {
		instances = append(instances, instanceFromDroplet(&droplets[i]))
	}
	return instances, nil
}

// GetInstance fetches a fresh view of one droplet.
func (c *Client) GetInstance(ctx context.Context, id int) (*Instance, error) {
	var droplet *godo.Droplet
	err := c.read(ctx, fmt.Sprintf("get droplet %d", id), func() error {
		var err error
		droplet, _, err = c.client.Droplets.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	inst := instanceFromDroplet(droplet)
	return &inst, nil
}

// CreateInstance requests a new droplet. It is not retried.
func (c *Client) CreateInstance(ctx context.Context, opts InstanceCreateOpts) (*Instance, error) {
	req := &godo.DropletCreateRequest{
		Name:     opts.Name,
		Region:   opts.Region,
		Size:     opts.Size,
		Image:    createImage(opts.Image),
		Tags:     opts.Tags,
		UserData: opts.UserData,
	}
	for _, id := range opts.SSHKeys {
		req.SSHKeys = append(req.SSHKeys, godo.DropletCreateSSHKey{ID: id})
	}

	droplet, _, err := c.client.Droplets.Create(ctx, req)
	if err != nil {
		return nil, classify(fmt.Sprintf("create droplet %s", opts.Name), err)
	}
	inst := instanceFromDroplet(droplet)
	return &inst, nil
}

// DestroyInstance deletes a droplet.
func (c *Client) DestroyInstance(ctx context.Context, id int) error {
	_, err := c.client.Droplets.Delete(ctx, id)
	return classify(fmt.Sprintf("delete droplet %d", id), err)
}

// createImage treats a numeric reference as a custom image ID, anything else
// as a slug.
func createImage(ref string) godo.DropletCreateImage {
	if id, err := strconv.Atoi(ref); err == nil {
		return godo.DropletCreateImage{ID: id}
	}
	return godo.DropletCreateImage{Slug: ref}
}
