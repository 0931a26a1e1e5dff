package session

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvdesolve/mlrpt/config"
	"github.com/dvdesolve/mlrpt/sdr"
)

func testConfig() *config.Config {
	cfg := config.Defaults()
	cfg.OperationTimeSec = 0
	cfg.Quiet = true
	return cfg
}

func TestSessionRunningStatsStartAtZero(t *testing.T) {
	dev := sdr.NewFileDevice(bytes.NewReader(nil), 1024)
	sess := New(testConfig(), dev)

	assert.Equal(t, 0.0, sess.SignalQuality())
	total, ok := sess.FrameCounts()
	assert.Equal(t, int64(0), total)
	assert.Equal(t, int64(0), ok)
}

func TestSessionRunningStatsMatchFinalResult(t *testing.T) {
	raw := make([]byte, 8192)
	dev := sdr.NewFileDevice(bytes.NewReader(raw), 4096)
	sess := New(testConfig(), dev)

	result, err := sess.Run(context.Background())
	require.NoError(t, err)

	total, ok := sess.FrameCounts()
	assert.Equal(t, int64(result.Stats.FramesTotal), total)
	assert.Equal(t, int64(result.Stats.FramesOK), ok)
	assert.Equal(t, result.Stats.SignalQualityPercent(), sess.SignalQuality())
}

func TestSessionCloseIsIdempotent(t *testing.T) {
	dev := sdr.NewFileDevice(bytes.NewReader(nil), 1024)
	sess := New(testConfig(), dev)

	require.NoError(t, sess.Close())
	require.NoError(t, sess.Close())
}
