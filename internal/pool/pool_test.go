package pool

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockResettable struct {
	Value       int
	Name        string
	ResetCalled int
}

func (m *mockResettable) Reset() {
	m.Value = 0
	m.Name = ""
	m.ResetCalled++
}

func newMock() *mockResettable {
	return &mockResettable{}
}

func TestNewPool(t *testing.T) {
	pool := New(5, newMock)
	require.NotNil(t, pool)
	assert.Equal(t, 0, pool.Idle())
}

func TestPoolGet_EmptyPoolCreates(t *testing.T) {
	created := 0
	pool := New(5, func() *mockResettable {
		created++
		return &mockResettable{Value: 7}
	})

	item := pool.Get()

	require.NotNil(t, item)
	assert.Equal(t, 7, item.Value)
	assert.Equal(t, 1, created)
}

func TestPoolPutAndGet(t *testing.T) {
	pool := New(5, newMock)

	obj := &mockResettable{Value: 42, Name: "test"}
	pool.Put(obj)
	assert.Equal(t, 1, pool.Idle())

	retrieved := pool.Get()
	assert.Same(t, obj, retrieved)
	assert.Equal(t, 0, retrieved.Value)
	assert.Equal(t, "", retrieved.Name)
	assert.Equal(t, 1, retrieved.ResetCalled)
}

func TestPoolPut_NilIgnored(t *testing.T) {
	pool := New(5, newMock)

	pool.Put(nil)

	assert.Equal(t, 0, pool.Idle())
}

func TestPoolPut_FullPoolDrops(t *testing.T) {
	pool := New(2, newMock)

	pool.Put(&mockResettable{})
	pool.Put(&mockResettable{})
	pool.Put(&mockResettable{})

	assert.Equal(t, 2, pool.Idle())
}

func TestPool_Buffers(t *testing.T) {
	pool := New(4, func() *bytes.Buffer { return new(bytes.Buffer) })

	buf := pool.Get()
	buf.WriteString(`{"code":"abc123"}`)
	pool.Put(buf)

	reused := pool.Get()
	assert.Same(t, buf, reused)
	assert.Equal(t, 0, reused.Len())
}

func TestPool_Concurrent(t *testing.T) {
	pool := New(8, func() *bytes.Buffer { return new(bytes.Buffer) })

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := pool.Get()
			buf.WriteString("payload")
			pool.Put(buf)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, pool.Idle(), 8)
}
