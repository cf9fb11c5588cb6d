package dvd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandleClose(t *testing.T) {
	calls := 0
	h := NewHandle(7, func(ref int64) error {
		calls++
		assert.Equal(t, int64(7), ref)
		return nil
	})

	assert.True(t, h.Valid())
	assert.Equal(t, int64(7), h.Ref())

	h.Close()
	assert.False(t, h.Valid())
	assert.Equal(t, int64(0), h.Ref())
	assert.Equal(t, 1, calls)

	// closing again is a no-op
	h.Close()
	assert.Equal(t, 1, calls)
}

func TestHandleSentinel(t *testing.T) {
	calls := 0
	teardown := func(ref int64) error {
		calls++
		return nil
	}

	for _, ref := range []int64{0, -1} {
		h := NewHandle(ref, teardown)
		assert.False(t, h.Valid())
		assert.Equal(t, int64(0), h.Ref())
		h.Close()
		assert.Equal(t, 0, calls)
	}
}

func TestHandleTeardownError(t *testing.T) {
	calls := 0
	h := NewHandle(3, func(ref int64) error {
		calls++
		return errors.New("device unplugged")
	})

	// a failed teardown still marks the handle closed and is not retried
	h.Close()
	assert.False(t, h.Valid())
	h.Close()
	assert.Equal(t, 1, calls)
}

func TestHandleNilTeardown(t *testing.T) {
	h := NewHandle(1, nil)
	assert.True(t, h.Valid())
	h.Close()
	assert.False(t, h.Valid())
}
