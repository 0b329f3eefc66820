package handler

import (
	"io"
	"os"
	"sync"

	"github.com/philipp01105/nlog/charset"
	"github.com/philipp01105/nlog/core"
	"github.com/philipp01105/nlog/formatter"
)

// ConsoleHandler writes log entries to stdout or any io.Writer
type ConsoleHandler struct {
	writer   io.Writer
	renderer renderer
	mu       sync.Mutex
	stats    *Stats
	async    *dispatcher
}

// ConsoleConfig holds configuration for console handler
type ConsoleConfig struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// Charset encodes output when set to something other than UTF-8
	Charset *charset.Charset
	AsyncConfig
}

// NewConsoleHandler creates a new console handler
func NewConsoleHandler(cfg ConsoleConfig) *ConsoleHandler {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}

	h := &ConsoleHandler{
		writer:   cfg.Writer,
		renderer: newRenderer(cfg.Formatter, cfg.Charset),
		stats:    NewStats(),
	}
	if cfg.Async {
		h.async = newDispatcher(cfg.AsyncConfig, h.stats, h.write)
	}
	return h
}

// Handle processes a log entry
func (h *ConsoleHandler) Handle(entry *core.Entry) error {
	if h.async == nil {
		return h.write(entry)
	}
	return h.async.enqueue(entry)
}

// write formats outside the lock and writes under it
func (h *ConsoleHandler) write(entry *core.Entry) error {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := h.renderer.render(entry, buf); err != nil {
		h.stats.IncrementFailed()
		return err
	}

	h.mu.Lock()
	_, err := h.writer.Write(buf.Bytes())
	h.mu.Unlock()

	if err != nil {
		h.stats.IncrementFailed()
		return err
	}
	h.stats.IncrementProcessed()
	return nil
}

// CanRecycleEntry returns true if the caller can recycle the entry after Handle returns
func (h *ConsoleHandler) CanRecycleEntry() bool {
	return h.async == nil
}

// Stats returns a snapshot of the current statistics
func (h *ConsoleHandler) Stats() Snapshot {
	return h.stats.GetSnapshot()
}

// Close drains the async queue, if any. It is safe to call more than once.
func (h *ConsoleHandler) Close() error {
	if h.async != nil {
		h.async.close()
	}
	return nil
}
