package tickets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusPurchased.IsValid())
	assert.True(t, StatusCancelled.IsValid())
	assert.True(t, StatusReserved.IsValid())

	assert.False(t, Status("REFUNDED").IsValid())
	assert.False(t, Status("purchased").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestStatusCanBeCancelled(t *testing.T) {
	assert.True(t, StatusPurchased.CanBeCancelled())
	assert.False(t, StatusCancelled.CanBeCancelled())
	assert.False(t, StatusReserved.CanBeCancelled())
}

func TestStatusOccupiesSeat(t *testing.T) {
	// Only a purchased ticket blocks its seat; cancelled and reserved
	// seats can be sold.
	assert.True(t, StatusPurchased.OccupiesSeat())
	assert.False(t, StatusCancelled.OccupiesSeat())
	assert.False(t, StatusReserved.OccupiesSeat())
}
