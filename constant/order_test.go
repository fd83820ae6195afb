package constant

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusJSON(t *testing.T) {
	b, err := json.Marshal(map[string]OrderStatus{"status": OrderStatusConfirmed})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"confirmed"}`, string(b))

	var out struct {
		Status OrderStatus `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"status":"pending"}`), &out))
	assert.Equal(t, OrderStatusPending, out.Status)

	assert.Error(t, json.Unmarshal([]byte(`{"status":"shipped"}`), &out))
	_, err = json.Marshal(OrderStatus(9))
	assert.Error(t, err)
	assert.Equal(t, "unknown(9)", OrderStatus(9).String())
}
