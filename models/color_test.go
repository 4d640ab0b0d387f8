package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	color, err := ParseColor("#1d3c6e")
	require.NoError(t, err)
	assert.Equal(t, Color(0x1d3c6e), color)
	assert.Equal(t, "#1d3c6e", color.String())

	color, err = ParseColor("#FFFFFF")
	require.NoError(t, err)
	assert.Equal(t, Color(0xffffff), color)
	assert.Equal(t, "#ffffff", color.String())
}

func TestParseColorInvalid(t *testing.T) {
	for _, input := range []string{"", "1d3c6e", "#1d3c6", "#1d3c6ef", "#gggggg", "red"} {
		_, err := ParseColor(input)
		assert.Error(t, err, input)
	}
}

func TestColorJSON(t *testing.T) {
	encoded, err := json.Marshal(Color(0x00ff00))
	require.NoError(t, err)
	assert.Equal(t, `"#00ff00"`, string(encoded))

	var decoded Color
	require.NoError(t, json.Unmarshal([]byte(`"#123abc"`), &decoded))
	assert.Equal(t, Color(0x123abc), decoded)

	assert.Error(t, json.Unmarshal([]byte(`"blue"`), &decoded))
}
