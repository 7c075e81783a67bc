package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"electroyard_back_end/internal/models"
)

func TestHasStatusEmail(t *testing.T) {
	assert.True(t, HasStatusEmail(models.FulfillmentShipped))
	assert.True(t, HasStatusEmail(models.FulfillmentDelivered))
	assert.True(t, HasStatusEmail(models.FulfillmentCancelled))

	// pending et processing ne notifient pas le client
	assert.False(t, HasStatusEmail(models.FulfillmentPending))
	assert.False(t, HasStatusEmail(models.FulfillmentProcessing))
	assert.False(t, HasStatusEmail("autre"))
}

func TestGenerateOrderStatusHTML(t *testing.T) {
	order := models.Order{
		ID:        primitive.NewObjectID(),
		FirstName: "Sophie",
		Email:     "sophie@example.be",
	}

	subject, html := GenerateOrderStatusHTML(order, models.FulfillmentShipped)

	assert.Contains(t, subject, "expédiée")
	assert.Contains(t, html, "Bonjour Sophie")
	assert.Contains(t, html, order.ID.Hex())
	assert.Contains(t, html, "L'équipe ElectroYard")
}
