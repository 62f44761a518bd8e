package tags

import "regexp"

// ManagedBy marks instances created by this tool.
const ManagedBy = "harbor-wave"

// MaxLength is the provider's tag length limit.
const MaxLength = 255

var validTag = regexp.MustCompile(`^[a-zA-Z0-9_:\-]+$`)

// Builder provides a fluent interface for building instance tag sets.
type Builder struct {
	tags []string
	seen map[string]bool
}

// NewBuilder creates a builder with the fleet tag and managed-by marker pre-set.
func NewBuilder(fleetTag string) *Builder {
	b := &Builder{seen: make(map[string]bool)}
	return b.add(fleetTag).add(ManagedBy)
}

// Merge adds extra tags, skipping empty and duplicate values.
func (b *Builder) Merge(extra ...string) *Builder {
	for _, t := range extra {
		b.add(t)
	}
	return b
}

func (b *Builder) add(tag string) *Builder {
	if tag == "" || b.seen[tag] {
		return b
	}
	b.seen[tag] = true
	b.tags = append(b.tags, tag)
	return b
}

// Build returns a copy of the tag list in insertion order.
func (b *Builder) Build() []string {
	out := make([]string, len(b.tags))
	copy(out, b.tags)
	return out
}

// Valid reports whether tag is acceptable to the provider.
func Valid(tag string) bool {
	return len(tag) <= MaxLength && validTag.MatchString(tag)
}

// Contains reports whether set holds tag, compared exactly.
func Contains(set []string, tag string) bool {
	for _, t := range set {
		if t == tag {
			return true
		}
	}
	return false
}
