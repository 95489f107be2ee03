package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIconsLoadAndCache(t *testing.T) {
	for _, name := range []string{IconHeart, IconBook, IconCoffee} {
		first, err := Icon(name)
		require.NoError(t, err)
		assert.Equal(t, name, first.Name())
		assert.NotEmpty(t, first.Content())

		second := MustIcon(name)
		assert.Same(t, first, second)
	}
}

func TestMissingIcon(t *testing.T) {
	_, err := Icon("teapot.svg")
	assert.Error(t, err)
	assert.Panics(t, func() { MustIcon("teapot.svg") })
}
