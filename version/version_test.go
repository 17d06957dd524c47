package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShort(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{name: "no commit", info: Info{Version: "dev", Commit: "none"}, want: "dev"},
		{name: "long commit", info: Info{Version: "v1.2.0", Commit: "a1b2c3d4e5f6"}, want: "v1.2.0 (a1b2c3d)"},
		{name: "short commit", info: Info{Version: "v1.2.0", Commit: "abc"}, want: "v1.2.0 (abc)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.Short())
		})
	}
}

func TestGetInfo(t *testing.T) {
	info := GetInfo()
	assert.Equal(t, Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
	assert.True(t, Info{Version: "v1.0.0-dirty"}.IsDev())
	assert.False(t, Info{Version: "v1.0.0"}.IsDev())
	assert.Contains(t, info.String(), "Platform:")
}
