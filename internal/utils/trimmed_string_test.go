package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrimmedStringUnmarshal(t *testing.T) {
	var req struct {
		Name TrimmedString `json:"name"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"name":"  Apollo \t"}`), &req))
	assert.Equal(t, "Apollo", req.Name.String())

	require.NoError(t, json.Unmarshal([]byte(`{"name":null}`), &req))
	assert.Equal(t, "Apollo", req.Name.String())

	assert.Error(t, json.Unmarshal([]byte(`{"name":42}`), &req))
}
