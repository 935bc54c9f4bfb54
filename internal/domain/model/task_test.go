package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTaskParams_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, (&CreateTaskParams{Content: "water the plants"}).Validate())
	assert.Error(t, (&CreateTaskParams{Content: ""}).Validate())
	assert.Error(t, (&CreateTaskParams{Content: "   "}).Validate())
}

func TestTaskWithAccess_JSON(t *testing.T) {
	t.Parallel()

	owner := "u1"
	b, err := json.Marshal(TaskWithAccess{
		Task:      Task{ID: 7, Content: "ship it", OwnerID: &owner},
		CanManage: true,
	})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, true, decoded["can_manage"])
	assert.Equal(t, "ship it", decoded["content"])
}
