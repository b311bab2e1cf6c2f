package version

import (
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIIsSemver(t *testing.T) {
	_, err := semver.NewVersion(API)
	require.NoError(t, err)
}

func TestInfoString(t *testing.T) {
	info := Info{CommitHash: "abc1234def", BuildTime: "now", Version: "dev", API: API}
	assert.Equal(t, "inhabit dev (api 1.0.0, commit abc1234def, built now)", info.String())

	info.Version = "v0.3.0"
	assert.Contains(t, info.String(), "inhabit v0.3.0")
	assert.Equal(t, "abc1234", info.Short())

	assert.Equal(t, "ab", Info{CommitHash: "ab"}.Short())
}

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, API, info.API)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}
