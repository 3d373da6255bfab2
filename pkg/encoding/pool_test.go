package encoding

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeJSON(t *testing.T) {
	out, err := EncodeJSON(map[string]interface{}{"success": true, "message": "ok"})

	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, true, decoded["success"])
	assert.Equal(t, "ok", decoded["message"])
}

func TestEncodeJSON_Error(t *testing.T) {
	_, err := EncodeJSON(make(chan int))

	assert.Error(t, err)
}

func TestEncodeJSON_ResultSurvivesPoolReuse(t *testing.T) {
	first, err := EncodeJSON(map[string]string{"key": "first"})
	require.NoError(t, err)

	snapshot := make([]byte, len(first))
	copy(snapshot, first)

	_, err = EncodeJSON(map[string]string{"key": "second"})
	require.NoError(t, err)

	assert.True(t, bytes.Equal(snapshot, first), "earlier result mutated by pool reuse")
}

func TestGetBuffer_ReturnsEmptyBuffer(t *testing.T) {
	buf := GetBuffer()
	buf.WriteString("leftover")
	PutBuffer(buf)

	reused := GetBuffer()
	assert.Zero(t, reused.Len())
}
