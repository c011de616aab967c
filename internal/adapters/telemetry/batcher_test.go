package telemetry_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vario/internal/adapters/telemetry"
)

type collector struct {
	mu     sync.Mutex
	chunks [][]byte
}

func (c *collector) add(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chunks = append(c.chunks, data)
}

func (c *collector) snapshot() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]byte(nil), c.chunks...)
}

func TestBatchProcessor_SizeLimit(t *testing.T) {
	c := &collector{}
	bp := telemetry.NewBatchProcessor(4, time.Hour, c.add)

	_, err := bp.Write([]byte("ab"))
	require.NoError(t, err)
	assert.Empty(t, c.snapshot())

	_, err = bp.Write([]byte("cd"))
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("abcd")}, c.snapshot())

	require.NoError(t, bp.Close())
}

func TestBatchProcessor_TimeLimit(t *testing.T) {
	c := &collector{}
	bp := telemetry.NewBatchProcessor(1024, 10*time.Millisecond, c.add)
	defer bp.Close() //nolint:errcheck // test cleanup

	_, err := bp.Write([]byte("tick"))
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return len(c.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "tick", string(c.snapshot()[0]))
}

func TestBatchProcessor_Close(t *testing.T) {
	c := &collector{}
	bp := telemetry.NewBatchProcessor(1024, time.Hour, c.add)

	_, err := bp.Write([]byte("pending"))
	require.NoError(t, err)
	require.NoError(t, bp.Close())
	require.NoError(t, bp.Close())

	assert.Equal(t, [][]byte{[]byte("pending")}, c.snapshot())

	_, err = bp.Write([]byte("late"))
	require.ErrorIs(t, err, telemetry.ErrBatcherClosed)
}
