package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRunWithState(t *testing.T) {
	cfg, err := Parse([]string{"run", "--state", "x:5", "prog.while"})
	require.NoError(t, err)
	assert.Equal(t, Run, cfg.Command)
	assert.Equal(t, "prog.while", cfg.File)
	assert.Equal(t, "x:5", cfg.State)
}

func TestParseAnalyzeDefaultsToBoundedInterval(t *testing.T) {
	cfg, err := Parse([]string{"analyze", "prog.while"})
	require.NoError(t, err)
	assert.Equal(t, Analyze, cfg.Command)
	assert.Equal(t, "bounded-interval", cfg.Domain)
	assert.False(t, cfg.Widening)
}

func TestParseAnalyzeWideningNarrowingFlags(t *testing.T) {
	cfg, err := Parse([]string{"analyze", "-W", "-N", "--domain", "cong", "prog.while"})
	require.NoError(t, err)
	assert.True(t, cfg.Widening)
	assert.True(t, cfg.Narrowing)
	assert.Equal(t, "cong", cfg.Domain)
}

func TestParseAnalyzeNarrowingWithoutWideningIsRejected(t *testing.T) {
	_, err := Parse([]string{"analyze", "-N", "prog.while"})
	assert.Error(t, err)
}

func TestParseUnknownCommandIsRejected(t *testing.T) {
	_, err := Parse([]string{"frobnicate", "prog.while"})
	assert.Error(t, err)
}

func TestParseRequiresExactlyOneFile(t *testing.T) {
	_, err := Parse([]string{"run"})
	assert.Error(t, err)

	_, err = Parse([]string{"run", "a.while", "b.while"})
	assert.Error(t, err)
}
