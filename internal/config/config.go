package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Item names accepted by Set and Get.
const (
	ItemAPIKey   = "api-key"
	ItemDomain   = "domain"
	ItemPayload  = "payload"
	ItemProject  = "project"
	ItemRegion   = "region"
	ItemBaseName = "base-name"
	ItemSize     = "size"
	ItemTemplate = "template"
	ItemTag      = "tag"
	ItemSSHKeyN  = "ssh-key-n"
	ItemWait     = "wait"
)

// Defaults for every item.
const (
	DefaultRegion   = "nyc3"
	DefaultBaseName = "harborwave"
	DefaultSize     = "s-1vcpu-1gb"
	DefaultTag      = "harborwave"
	DefaultSSHKeyN  = 0
	DefaultWait     = true
)

// PayloadFilePrefix marks a payload value that names a local file.
const PayloadFilePrefix = "FILE:"

var (
	// ErrUnknownItem is returned for item names outside the settings table.
	ErrUnknownItem = errors.New("unknown config item")

	// ErrInvalidValue is returned when a value does not parse to the item's type.
	ErrInvalidValue = errors.New("invalid config value")
)

// Config holds the harbor-wave settings.
type Config struct {
	Domain   string `json:"domain" yaml:"domain"`
	Payload  string `json:"payload" yaml:"payload"`
	Project  string `json:"project" yaml:"project"`
	Region   string `json:"region" yaml:"region"`
	BaseName string `json:"base-name" yaml:"base-name"`
	Size     string `json:"size" yaml:"size"`
	Template string `json:"template" yaml:"template"`
	Tag      string `json:"tag" yaml:"tag"`
	SSHKeyN  int    `json:"ssh-key-n" yaml:"ssh-key-n"`
	Wait     bool   `json:"wait" yaml:"wait"`

	// APIKey is persisted by the Store in its own file, never with the rest.
	APIKey string `json:"-" yaml:"-"`
}

// Default returns a Config with every item at its default.
func Default() *Config {
	return &Config{
		Region:   DefaultRegion,
		BaseName: DefaultBaseName,
		Size:     DefaultSize,
		Tag:      DefaultTag,
		SSHKeyN:  DefaultSSHKeyN,
		Wait:     DefaultWait,
	}
}

// UseDNS reports whether instances get DNS names. It is derived from Domain.
func (c *Config) UseDNS() bool {
	return c.Domain != ""
}

// PayloadFile returns the path named by a FILE: payload and whether the
// payload is file-backed.
func (c *Config) PayloadFile() (string, bool) {
	return strings.CutPrefix(c.Payload, PayloadFilePrefix)
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}

// Kind is the value type of an item.
type Kind string

// Item kinds.
const (
	KindString Kind = "string"
	KindInt    Kind = "int"
	KindBool   Kind = "bool"
)

// Item describes one setting.
type Item struct {
	Name        string
	Kind        Kind
	Description string
	// Secret items are masked in listings.
	Secret bool

	get func(c *Config) string
	set func(c *Config, value string) error
}

// Items returns the settings table in display order.
func Items() []Item {
	return items
}

var items = []Item{
	stringItem(ItemAPIKey, "DigitalOcean API token, stored in its own file", "", func(c *Config) *string { return &c.APIKey }, true),
	stringItem(ItemBaseName, "base name for spawned instances", DefaultBaseName, func(c *Config) *string { return &c.BaseName }, false),
	stringItem(ItemDomain, "DNS domain for instance names; empty disables DNS", "", func(c *Config) *string { return &c.Domain }, false),
	stringItem(ItemPayload, "payload delivered to instances, or FILE:<path>", "", func(c *Config) *string { return &c.Payload }, false),
	stringItem(ItemProject, "DigitalOcean project new instances are assigned to", "", func(c *Config) *string { return &c.Project }, false),
	stringItem(ItemRegion, "region slug for new instances", DefaultRegion, func(c *Config) *string { return &c.Region }, false),
	stringItem(ItemSize, "size slug for new instances", DefaultSize, func(c *Config) *string { return &c.Size }, false),
	{
		Name:        ItemSSHKeyN,
		Kind:        KindInt,
		Description: "index of the account SSH key used for root access, from 0",
		get:         func(c *Config) string { return strconv.Itoa(c.SSHKeyN) },
		set: func(c *Config, value string) error {
			if value == "" {
				c.SSHKeyN = DefaultSSHKeyN
				return nil
			}
			// decimal only; a leading zero is not octal
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil || n < 0 {
				return fmt.Errorf("%w: %s wants a non-negative integer, got %q", ErrInvalidValue, ItemSSHKeyN, value)
			}
			c.SSHKeyN = n
			return nil
		},
	},
	stringItem(ItemTag, "tag identifying the fleet", DefaultTag, func(c *Config) *string { return &c.Tag }, false),
	stringItem(ItemTemplate, "custom image ID or slug used to create instances", "", func(c *Config) *string { return &c.Template }, false),
	{
		Name:        ItemWait,
		Kind:        KindBool,
		Description: "wait for instance addresses after spawning",
		get:         func(c *Config) string { return strconv.FormatBool(c.Wait) },
		set: func(c *Config, value string) error {
			if value == "" {
				c.Wait = DefaultWait
				return nil
			}
			b, err := cast.ToBoolE(value)
			if err != nil {
				return fmt.Errorf("%w: %s wants true or false, got %q", ErrInvalidValue, ItemWait, value)
			}
			c.Wait = b
			return nil
		},
	},
}

func stringItem(name, desc, def string, field func(c *Config) *string, secret bool) Item {
	return Item{
		Name:        name,
		Kind:        KindString,
		Description: desc,
		Secret:      secret,
		get:         func(c *Config) string { return *field(c) },
		set: func(c *Config, value string) error {
			if value == "" {
				value = def
			}
			*field(c) = value
			return nil
		},
	}
}

// Lookup returns the item named name.
func Lookup(name string) (Item, error) {
	for _, it := range items {
		if it.Name == name {
			return it, nil
		}
	}
	return Item{}, fmt.Errorf("%w: %q", ErrUnknownItem, name)
}

// Set assigns value to item. An empty value resets the item to its default.
// On error the Config is left unchanged.
func (c *Config) Set(item, value string) error {
	it, err := Lookup(item)
	if err != nil {
		return err
	}
	return it.set(c, value)
}

// Get returns the string form of item's current value.
func (c *Config) Get(item string) (string, error) {
	it, err := Lookup(item)
	if err != nil {
		return "", err
	}
	return it.get(c), nil
}

// Value returns the string form of the item's value in c.
func (it Item) Value(c *Config) string {
	return it.get(c)
}

// Default returns the string form of the item's default.
func (it Item) Default() string {
	return it.get(Default())
}
