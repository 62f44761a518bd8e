package digitalocean

import (
	"context"

	"github.com/digitalocean/godo"
)

// Region is a datacenter region.
type Region struct {
	Slug      string `json:"slug" yaml:"slug"`
	Name      string `json:"name" yaml:"name"`
	Available bool   `json:"available" yaml:"available"`
}

// Size is a droplet size class.
type Size struct {
	Slug         string  `json:"slug" yaml:"slug"`
	Vcpus        int     `json:"vcpus" yaml:"vcpus"`
	Memory       int     `json:"memory" yaml:"memory"`
	Disk         int     `json:"disk" yaml:"disk"`
	PriceMonthly float64 `json:"price_monthly" yaml:"price_monthly"`
	Available    bool    `json:"available" yaml:"available"`
}

// Image is a custom (user) image usable as a template.
type Image struct {
	ID           int      `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Slug         string   `json:"slug" yaml:"slug"`
	Distribution string   `json:"distribution" yaml:"distribution"`
	Created      string   `json:"created" yaml:"created"`
	Regions      []string `json:"regions" yaml:"regions"`
}

// Key is an SSH key registered with the account.
type Key struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Fingerprint string `json:"fingerprint" yaml:"fingerprint"`
}

// Project is a DigitalOcean project.
type Project struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	IsDefault   bool   `json:"is_default" yaml:"is_default"`
}

// ListRegions returns every region.
func (c *Client) ListRegions(ctx context.Context) ([]Region, error) {
	regions, err := listAll(ctx, c, "list regions", c.client.Regions.List)
	if err != nil {
		return nil, err
	}
	out := make([]Region, 0, len(regions))
	for _, r := range regions {
		out = append(out, Region{Slug: r.Slug, Name: r.Name, Available: r.Available})
	}
	return out, nil
}

// ListSizes returns every droplet size.
func (c *Client) ListSizes(ctx context.Context) ([]Size, error) {
	sizes, err := listAll(ctx, c, "list sizes", c.client.Sizes.List)
	if err != nil {
		return nil, err
	}
	out := make([]Size, 0, len(sizes))
	for _, s := range sizes {
		out = append(out, Size{
			Slug:         s.Slug,
			Vcpus:        s.Vcpus,
			Memory:       s.Memory,
			Disk:         s.Disk,
			PriceMonthly: s.PriceMonthly,
			Available:    s.Available,
		})
	}
	return out, nil
}

// ListImages returns the account's custom images.
func (c *Client) ListImages(ctx context.Context) ([]Image, error) {
	images, err := listAll(ctx, c, "list images", c.client.Images.ListUser)
	if err != nil {
		return nil, err
	}
	out := make([]Image, 0, len(images))
	for _, img := range images {
		out = append(out, Image{
			ID:           img.ID,
			Name:         img.Name,
			Slug:         img.Slug,
			Distribution: img.Distribution,
			Created:      img.Created,
			Regions:      img.Regions,
		})
	}
	return out, nil
}

// ListKeys returns the account's SSH keys in the order the API reports them.
func (c *Client) ListKeys(ctx context.Context) ([]Key, error) {
	keys, err := listAll(ctx, c, "list ssh keys", c.client.Keys.List)
	if err != nil {
		return nil, err
	}
	out := make([]Key, 0, len(keys))
	for _, k := range keys {
		out = append(out, Key{ID: k.ID, Name: k.Name, Fingerprint: k.Fingerprint})
	}
	return out, nil
}

// ListProjects returns the account's projects.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	projects, err := listAll(ctx, c, "list projects", func(ctx context.Context, opt *godo.ListOptions) ([]godo.Project, *godo.Response, error) {
		return c.client.Projects.List(ctx, opt)
	})
	if err != nil {
		return nil, err
	}
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		out = append(out, Project{ID: p.ID, Name: p.Name, Description: p.Description, IsDefault: p.IsDefault})
	}
	return out, nil
}
