package naming

import (
	"strconv"
	"strings"
)

// Host returns the host part of the name for instance index of a batch of total.
func Host(baseName string, index, total int) string {
	if total == 1 {
		return baseName
	}
	return baseName + strconv.Itoa(index)
}

// FQDN joins host and domain. An empty domain returns host unchanged.
func FQDN(host, domain string) string {
	if domain == "" {
		return host
	}
	return host + "." + strings.TrimSuffix(domain, ".")
}

// Instance returns the provider-side instance name for index of a batch of total.
func Instance(baseName string, index, total int, domain string) string {
	return FQDN(Host(baseName, index, total), domain)
}

// HostLabel reduces a possibly fully-qualified name to its leftmost label.
func HostLabel(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return name
}
