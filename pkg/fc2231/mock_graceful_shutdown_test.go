package fc2231

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Closing the mock must eventually close the readings channel so consumers
// ranging over it terminate, and a second Close must be a no-op.
func TestMock_GracefulShutdown(t *testing.T) {
	m := NewMock(fastMockConfig())
	require.NoError(t, m.Connect())

	collectReadings(t, m, 2, 5*time.Second)

	require.NoError(t, m.Close())
	assert.False(t, m.IsConnected())
	assert.NoError(t, m.Close())

	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-m.Readings():
			if !ok {
				return // channel drained and closed
			}
		case <-deadline:
			t.Fatal("readings channel never closed after Close")
		}
	}
}

func TestMock_ConnectAfterClose(t *testing.T) {
	m := NewMock(fastMockConfig())
	require.NoError(t, m.Connect())
	require.NoError(t, m.Close())

	assert.Error(t, m.Connect(), "mock is single-use once closed")
}
