package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/common"
)

func TestValidate(t *testing.T) {
	valid := Record{
		UserID:      "u1",
		Date:        time.Now(),
		Description: "groceries",
	}
	require.NoError(t, valid.Validate())

	noUser := valid
	noUser.UserID = "  "
	assert.ErrorIs(t, noUser.Validate(), common.ErrorNoUserID)

	noDesc := valid
	noDesc.Description = ""
	assert.ErrorIs(t, noDesc.Validate(), common.ErrorEmptyDescription)
}

func TestRecordJSON_DraftOmitsID(t *testing.T) {
	draft := Record{UserID: "u1", Description: "d"}

	data, err := json.Marshal(draft)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	_, hasID := m["_id"]
	assert.False(t, hasID, "a draft must not serialize an _id field")
	assert.Equal(t, "u1", m["userId"])
	assert.Contains(t, m, "paymentMethod")
}
