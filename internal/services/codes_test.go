package services

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCodePool(t *testing.T) {
	pool := NewCodePool(500)
	assert.Equal(t, 500, pool.Remaining())

	pattern := regexp.MustCompile(`^AY[A-Z0-9]{4}RA$`)
	seen := make(map[string]bool)
	for {
		code, ok := pool.Take()
		if !ok {
			break
		}
		assert.Regexp(t, pattern, code)
		assert.False(t, seen[code], "code %s issued twice", code)
		seen[code] = true
	}
	assert.Len(t, seen, 500)
}

func TestCodePoolTake(t *testing.T) {
	pool := NewCodePool(2)

	first, ok := pool.Take()
	assert.True(t, ok)
	assert.NotEmpty(t, first)
	assert.Equal(t, 1, pool.Remaining())

	second, ok := pool.Take()
	assert.True(t, ok)
	assert.NotEqual(t, first, second)

	_, ok = pool.Take()
	assert.False(t, ok, "exhausted pool must report no codes")
	assert.Equal(t, 0, pool.Remaining())
}
