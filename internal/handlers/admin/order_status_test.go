package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"electroyard_back_end/internal/models"
)

func TestStatusTransitionFilter(t *testing.T) {
	orderID := primitive.NewObjectID()

	filter := statusTransitionFilter(orderID, models.FulfillmentPending)

	// Le filtre doit porter sur l'id ET le statut lu : une écriture
	// concurrente qui change le statut rend le filtre sans correspondance
	assert.Equal(t, bson.M{
		"_id":                orderID,
		"fulfillment_status": models.FulfillmentPending,
	}, filter)
}
