package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPublish_QueuesEnvelope(t *testing.T) {
	h := NewHub(zap.NewNop())

	h.Publish("stock_update", map[string]interface{}{"product": "Helmet", "stock": 13})

	require.Len(t, h.Broadcast, 1)
	var ev Event
	require.NoError(t, json.Unmarshal(<-h.Broadcast, &ev))
	assert.Equal(t, "stock_update", ev.Type)
	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, "Helmet", ev.Payload.(map[string]interface{})["product"])
}

func TestPublish_DropsWhenFull(t *testing.T) {
	h := NewHub(zap.NewNop())
	for i := 0; i < cap(h.Broadcast)+5; i++ {
		h.Publish("sale_completed", i)
	}
	assert.Len(t, h.Broadcast, cap(h.Broadcast))
}
