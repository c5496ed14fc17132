package utils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheHelpersWithoutClient(t *testing.T) {
	ctx := context.Background()

	require.NoError(t, SetCache(ctx, nil, "k", map[string]int{"a": 1}, time.Minute))

	var dest map[string]int
	found, err := GetCache(ctx, nil, "k", &dest)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, DeleteCache(ctx, nil, "k"))
	assert.NoError(t, DeletePrefix(ctx, nil, PlacesListPrefix))
}
