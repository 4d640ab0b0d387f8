package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		input    string
		expected time.Duration
	}{
		{"00:19:19.001", 19*time.Minute + 19*time.Second + time.Millisecond},
		{"01:38:12.160", time.Hour + 38*time.Minute + 12*time.Second + 160*time.Millisecond},
		{"13:29", 13*time.Minute + 29*time.Second},
		{"42", 42 * time.Second},
		{"00:00:00", 0},
		{" 05:06:34.948 ", 5*time.Hour + 6*time.Minute + 34*time.Second + 948*time.Millisecond},
	}
	for _, tc := range cases {
		parsed, err := ParseTimestamp(tc.input)
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.expected, parsed, tc.input)
	}
}

func TestParseTimestampKeepsSubMillisecondFraction(t *testing.T) {
	parsed, err := ParseTimestamp("00:00:01.0019")
	require.NoError(t, err)
	assert.Equal(t, time.Second+1900*time.Microsecond, parsed)
	assert.Equal(t, int64(1001), parsed.Milliseconds())
}

func TestParseTimestampInvalid(t *testing.T) {
	for _, input := range []string{
		"",
		"not a timestamp",
		"00:19:19:001",
		"00:60:00",
		"00:00:60",
		"-1:00",
		"1.5:00",
	} {
		_, err := ParseTimestamp(input)
		assert.Error(t, err, input)
	}
}

func TestParseLocalizedInt(t *testing.T) {
	cases := []struct {
		input    string
		expected int64
	}{
		{"1576949556379", 1576949556379},
		{"1,576,949,556,379", 1576949556379},
		{"1 576 949 556 379", 1576949556379},
		{"1 576 949 556 379", 1576949556379},
		{"1 576 949 556 379", 1576949556379},
		{"-5", -5},
	}
	for _, tc := range cases {
		parsed, err := ParseLocalizedInt(tc.input)
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.expected, parsed, tc.input)
	}
}

func TestParseLocalizedIntInvalid(t *testing.T) {
	for _, input := range []string{"", ",", "12.5", "12a"} {
		_, err := ParseLocalizedInt(input)
		assert.Error(t, err, input)
	}
}
