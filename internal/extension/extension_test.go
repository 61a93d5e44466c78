package extension

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct{ n int }

type other struct{}

func TestGetReturnsSharedValue(t *testing.T) {
	var s Store
	Add(&s, &counter{n: 1})

	c, err := Get[counter](&s)
	require.NoError(t, err)
	c.n++

	again, err := Get[counter](&s)
	require.NoError(t, err)
	assert.Equal(t, 2, again.n)
	assert.Same(t, c, again)
}

func TestGetUnregistered(t *testing.T) {
	var s Store
	Add(&s, &counter{})

	_, err := Get[other](&s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotRegistered))
	assert.False(t, Has[other](&s))
	assert.True(t, Has[counter](&s))
}

func TestAddReplaces(t *testing.T) {
	var s Store
	Add(&s, &counter{n: 1})
	Add(&s, &counter{n: 7})

	c, err := Get[counter](&s)
	require.NoError(t, err)
	assert.Equal(t, 7, c.n)
}
