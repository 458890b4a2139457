package message

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_UnapprovedSerializesWithoutApprovalFields(t *testing.T) {
	data, err := json.Marshal(Message{ID: uuid.New(), Direction: DirectionIncoming})
	require.NoError(t, err)

	// До решения HR в JSON нет ни ревьюера, ни времени подтверждения.
	assert.NotContains(t, string(data), "hrApprovedBy")
	assert.NotContains(t, string(data), "hrApprovedAt")
}

func TestMessage_ApprovedSerializesReviewer(t *testing.T) {
	reviewer := uuid.New()
	data, err := json.Marshal(Message{HRApproved: true, HRApprovedBy: &reviewer})
	require.NoError(t, err)
	assert.Contains(t, string(data), reviewer.String())
}
