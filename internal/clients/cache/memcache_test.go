package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_FormatKey_ShouldNamespaceByUserAndOption(t *testing.T) {
	assert.Equal(t, "report:123:week", formatKey(123, "week"))
	assert.Equal(t, "report:-5:all", formatKey(-5, "all"))
}
