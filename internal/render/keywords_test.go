package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandleReserved(t *testing.T) {
	tests := map[string]string{
		"type":    "type_",
		"self":    "self_",
		"Self":    "Self_",
		"box":     "box_",
		"":        "_",
		"_":       "_",
		"name":    "name",
		"typeof_": "typeof_",
	}
	for in, want := range tests {
		assert.Equal(t, want, HandleReserved(in), in)
	}
}

func TestIsReserved(t *testing.T) {
	assert.True(t, IsReserved("fn"))
	assert.True(t, IsReserved("yield"))
	assert.False(t, IsReserved("Fn"))
	assert.False(t, IsReserved("object"))
}
