package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	assert.True(t, StatusPlaced.CanTransitionTo(StatusReady))
	assert.True(t, StatusReady.CanTransitionTo(StatusCollected))

	// no skips, no reverses, no self-loops
	assert.False(t, StatusPlaced.CanTransitionTo(StatusCollected))
	assert.False(t, StatusReady.CanTransitionTo(StatusPlaced))
	assert.False(t, StatusCollected.CanTransitionTo(StatusReady))
	assert.False(t, StatusCollected.CanTransitionTo(StatusPlaced))
	assert.False(t, StatusPlaced.CanTransitionTo(StatusPlaced))
}
