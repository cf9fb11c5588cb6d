package dvd

import "github.com/sirupsen/logrus"

// Handle wraps an opaque native disc-session reference. A failed open
// produces an invalid sentinel (non-positive ref) which never needs
// closing; Close on any handle is an idempotent no-op after the first
// call.
type Handle struct {
	ref      int64
	teardown func(ref int64) error
	closed   bool
}

// NewHandle wraps a native session ref. teardown releases the native
// resource and may be nil. A ref <= 0 is the invalid sentinel.
func NewHandle(ref int64, teardown func(ref int64) error) *Handle {
	return &Handle{ref: ref, teardown: teardown}
}

// Valid reports whether the handle refers to an open native session.
func (h *Handle) Valid() bool {
	return h != nil && h.ref > 0 && !h.closed
}

// Ref returns the native session reference, or 0 if the handle is
// invalid or closed.
func (h *Handle) Ref() int64 {
	if !h.Valid() {
		return 0
	}
	return h.ref
}

// Close releases the native session. It is safe to call on sentinel
// and already-closed handles. The handle is marked closed even if the
// native teardown fails; a release is never retried.
func (h *Handle) Close() {
	if !h.Valid() {
		return
	}
	h.closed = true
	if h.teardown == nil {
		return
	}
	if err := h.teardown(h.ref); err != nil {
		logrus.WithField("ref", h.ref).WithError(err).Warn("dvd: session teardown failed")
	}
}
