package digitalocean

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const validHex = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func TestValidateCredential(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"bare hex", validHex, false},
		{"upper case hex", strings.ToUpper(validHex), false},
		{"dop prefix", "dop_v1_" + validHex, false},
		{"dotted prefix", "team.prod." + validHex, false},
		{"surrounding whitespace", "  " + validHex + "\n", false},
		{"empty", "", true},
		{"too short", validHex[:63], true},
		{"too long", validHex + "0", true},
		{"non hex", strings.Repeat("g", 64), true},
		{"prefix only", "dop_v1_", true},
		{"hex before separator only", validHex + "_", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateCredential(tt.token)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCredential)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConnect_RejectsMalformedTokenOffline(t *testing.T) {
	t.Parallel()
	c, err := Connect("not-a-token", WithBaseURL("http://127.0.0.1:1/"))
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}
