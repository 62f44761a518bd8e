package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHost(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		base  string
		index int
		total int
		want  string
	}{
		{"single instance has no suffix", "edge", 0, 1, "edge"},
		{"first of many", "web", 0, 3, "web0"},
		{"last of many", "web", 2, 3, "web2"},
		{"double digit", "node", 10, 11, "node10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Host(tt.base, tt.index, tt.total))
		})
	}
}

func TestInstance(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "edge.example.com", Instance("edge", 0, 1, "example.com"))
	assert.Equal(t, "web1.example.com", Instance("web", 1, 2, "example.com."))
	assert.Equal(t, "web1", Instance("web", 1, 2, ""))
}

func TestHostLabel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "edge", HostLabel("edge.example.com"))
	assert.Equal(t, "web0", HostLabel("web0"))
	assert.Equal(t, "", HostLabel(""))
}
