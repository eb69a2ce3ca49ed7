package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONObjectFromProse(t *testing.T) {
	text := `Sure! Here is the answer: {"isDirectGameSearch":true} thanks`
	block, ok := ExtractJSONObject(text)
	assert.True(t, ok)
	assert.Equal(t, `{"isDirectGameSearch":true}`, block)
}

func TestExtractJSONObjectNested(t *testing.T) {
	text := `result: {"a": {"b": [1, 2]}, "c": "d"} trailing {"ignored": true}`
	block, ok := ExtractJSONObject(text)
	assert.True(t, ok)
	assert.Equal(t, `{"a": {"b": [1, 2]}, "c": "d"}`, block)
}

func TestExtractJSONObjectBracesInsideStrings(t *testing.T) {
	text := `{"note": "unbalanced } inside", "ok": true}`
	block, ok := ExtractJSONObject(text)
	assert.True(t, ok)
	assert.Equal(t, text, block)
}

func TestExtractJSONObjectMissing(t *testing.T) {
	_, ok := ExtractJSONObject("no json here")
	assert.False(t, ok)
}

func TestExtractJSONArray(t *testing.T) {
	block, ok := ExtractJSONArray("The ranking is [5, 12, 3, 7, 1], enjoy!")
	assert.True(t, ok)
	assert.Equal(t, "[5, 12, 3, 7, 1]", block)

	_, ok = ExtractJSONArray("nothing to see")
	assert.False(t, ok)
}
