package notify

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssriramteja/tablemeta/pkg/types"
)

func TestMessage(t *testing.T) {
	summary := types.RunSummary{
		RunID:           "8a33e2a1-4a2f-4a53-9f01-7a1f4a0c9b2d",
		Namespace:       "warehouse",
		TablesRequested: 4,
		TablesCollected: 3,
		Populated:       2,
		Degraded:        1,
		QueryFailures:   1,
		StartedAt:       time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
		Duration:        42 * time.Second,
	}

	msg, err := message(summary)
	require.NoError(t, err)
	assert.Equal(t, []byte(summary.RunID), msg.Key)

	var got types.RunSummary
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, summary, got)
}

func TestNew_ConfiguresWriter(t *testing.T) {
	n := New([]string{"kafka-1:9092", "kafka-2:9092"}, "tablemeta.runs", nil)
	defer n.Close()

	assert.Equal(t, "tablemeta.runs", n.writer.Topic)
	assert.NotNil(t, n.writer.Addr)
}
