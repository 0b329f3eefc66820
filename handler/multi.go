package handler

import (
	"github.com/philipp01105/nlog/core"
	"go.uber.org/multierr"
)

// MultiHandler sends log entries to multiple handlers. Every child sees
// every entry, so a layout shared by a console and a file child renders
// the same entry through both its text and byte paths.
type MultiHandler struct {
	handlers     []Handler
	recycleEntry bool // true when every child supports entry recycling
}

// NewMultiHandler creates a new multi-handler
func NewMultiHandler(handlers ...Handler) *MultiHandler {
	m := &MultiHandler{
		handlers:     handlers,
		recycleEntry: true,
	}
	for _, h := range handlers {
		if rc, ok := h.(interface{ CanRecycleEntry() bool }); !ok || !rc.CanRecycleEntry() {
			m.recycleEntry = false
		}
	}
	return m
}

// Handle passes the entry to every child and combines their errors.
//
// Async children take ownership of the entry they are given, so each
// async child receives its own copy when there is more than one child.
func (h *MultiHandler) Handle(entry *core.Entry) error {
	var err error
	for _, handler := range h.handlers {
		target := entry
		if len(h.handlers) > 1 && !canRecycle(handler) {
			target = cloneEntry(entry)
		}
		err = multierr.Append(err, handler.Handle(target))
	}
	return err
}

func canRecycle(h Handler) bool {
	rc, ok := h.(interface{ CanRecycleEntry() bool })
	return ok && rc.CanRecycleEntry()
}

func cloneEntry(e *core.Entry) *core.Entry {
	c := core.GetEntry()
	c.Time = e.Time
	c.Level = e.Level
	c.Message = e.Message
	c.Payload = e.Payload
	c.Caller = e.Caller
	c.Fields = append(c.Fields, e.Fields...)
	return c
}

// CanRecycleEntry returns true if the caller can recycle the entry after Handle returns.
// This is safe when all child handlers process entries synchronously.
func (h *MultiHandler) CanRecycleEntry() bool {
	return h.recycleEntry
}

// Close closes all handlers
func (h *MultiHandler) Close() error {
	var err error
	for _, handler := range h.handlers {
		err = multierr.Append(err, handler.Close())
	}
	return err
}

// Sync flushes every child that supports it.
func (h *MultiHandler) Sync() error {
	var err error
	for _, handler := range h.handlers {
		if s, ok := handler.(Syncer); ok {
			err = multierr.Append(err, s.Sync())
		}
	}
	return err
}
