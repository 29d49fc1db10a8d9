package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("AAHOTELS_TEST_DIR", "/tmp/aahotels")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty stays empty", in: "", want: ""},
		{name: "absolute unchanged", in: "/etc/headers.json", want: "/etc/headers.json"},
		{name: "bare tilde", in: "~", want: home},
		{name: "tilde prefix", in: "~/headers.json", want: filepath.Join(home, "headers.json")},
		{name: "env var", in: "$AAHOTELS_TEST_DIR/headers.json", want: "/tmp/aahotels/headers.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}
