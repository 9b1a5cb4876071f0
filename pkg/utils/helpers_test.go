package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 5, Clamp(5, 1, 100))
	assert.Equal(t, 1, Clamp(-3, 1, 100))
	assert.Equal(t, 100, Clamp(250, 1, 100))
	assert.Equal(t, 0.5, Clamp(0.5, 0.0, 1.0))
	assert.Equal(t, "m", Clamp("z", "a", "m"))
}
