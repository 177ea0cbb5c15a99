package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIdentifierShape(t *testing.T) {
	id, err := NewIdentifier()
	require.NoError(t, err)
	assert.Len(t, id, identifierLength)
	for _, r := range id {
		assert.Contains(t, "0123456789abcdef", string(r), "identifier must be lowercase hex")
	}
}

func TestNewIdentifierDoesNotRepeat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id, err := NewIdentifier()
		require.NoError(t, err)
		require.False(t, seen[id], "identifier %q generated twice", id)
		seen[id] = true
	}
}
