package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	old := []string{Version, Commit, Date}
	t.Cleanup(func() { Version, Commit, Date = old[0], old[1], old[2] })

	Version, Commit, Date = "v1.2.0", "abc1234", "2026-01-02T09:14:00Z"
	assert.Equal(t, "v1.2.0 (commit: abc1234, built: 2026-01-02T09:14:00Z)", String())
}
