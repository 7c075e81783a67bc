package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsFulfillmentStatus(t *testing.T) {
	for _, s := range []string{
		FulfillmentPending, FulfillmentProcessing, FulfillmentShipped,
		FulfillmentDelivered, FulfillmentCancelled,
	} {
		assert.True(t, IsFulfillmentStatus(s), s)
	}
	assert.False(t, IsFulfillmentStatus("paid"))
	assert.False(t, IsFulfillmentStatus(""))
	assert.False(t, IsFulfillmentStatus("SHIPPED"))
}

func TestCanTransitionHappyPath(t *testing.T) {
	// pending → processing → shipped → delivered
	require.NoError(t, CanTransition(FulfillmentPending, FulfillmentProcessing))
	require.NoError(t, CanTransition(FulfillmentProcessing, FulfillmentShipped))
	require.NoError(t, CanTransition(FulfillmentShipped, FulfillmentDelivered))
}

func TestCanTransitionCancellation(t *testing.T) {
	assert.NoError(t, CanTransition(FulfillmentPending, FulfillmentCancelled))
	assert.NoError(t, CanTransition(FulfillmentProcessing, FulfillmentCancelled))

	// Une commande expédiée ne s'annule plus
	err := CanTransition(FulfillmentShipped, FulfillmentCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCanTransitionRejectsSkips(t *testing.T) {
	// Pas de saut d'étape : pending → shipped interdit
	assert.ErrorIs(t, CanTransition(FulfillmentPending, FulfillmentShipped), ErrInvalidTransition)
	assert.ErrorIs(t, CanTransition(FulfillmentPending, FulfillmentDelivered), ErrInvalidTransition)
}

func TestCanTransitionTerminalStates(t *testing.T) {
	for _, terminal := range []string{FulfillmentDelivered, FulfillmentCancelled} {
		for _, to := range []string{
			FulfillmentPending, FulfillmentProcessing, FulfillmentShipped,
			FulfillmentDelivered, FulfillmentCancelled,
		} {
			assert.ErrorIs(t, CanTransition(terminal, to), ErrInvalidTransition,
				"%s → %s devrait être refusé", terminal, to)
		}
	}
}

func TestCanTransitionNoSelfLoop(t *testing.T) {
	assert.ErrorIs(t, CanTransition(FulfillmentPending, FulfillmentPending), ErrInvalidTransition)
}
