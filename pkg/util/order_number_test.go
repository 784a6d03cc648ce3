package util

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderNumber(t *testing.T) {
	before := time.Now()
	number := GenerateOrderNumber(42)

	require.Len(t, number, 14+2)
	assert.True(t, strings.HasSuffix(number, "42"))

	stamp, err := time.ParseInLocation("20060102150405", number[:14], time.Local)
	require.NoError(t, err)
	assert.WithinDuration(t, before, stamp, 2*time.Second)
}

func TestGenerateOrderNumberDistinctIDs(t *testing.T) {
	a := GenerateOrderNumber(1)
	b := GenerateOrderNumber(2)

	assert.NotEqual(t, a, b)

	idA, err := strconv.Atoi(a[14:])
	require.NoError(t, err)
	assert.Equal(t, 1, idA)
}
