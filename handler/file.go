package handler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/philipp01105/nlog/charset"
	"github.com/philipp01105/nlog/core"
	"github.com/philipp01105/nlog/formatter"
	"go.uber.org/multierr"
)

// ErrNoFilename is returned by NewFileHandler when FileConfig.Filename is empty.
var ErrNoFilename = errors.New("handler: filename is required")

// backupLayout is appended to the file name of rotated files.
const backupLayout = "2006-01-02T15-04-05.000"

// FileHandler writes log entries to a file with rotation support
type FileHandler struct {
	filename       string
	renderer       renderer
	stats          *Stats
	async          *dispatcher
	maxSize        int64
	maxAge         time.Duration
	maxBackups     int
	rotateInterval time.Duration

	mu          sync.Mutex // guards the fields below
	file        *os.File
	currentSize int64
	openedAt    time.Time
}

// FileConfig holds configuration for file handler
type FileConfig struct {
	// Filename is the path to the log file
	Filename string
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// Charset encodes output when set to something other than UTF-8
	Charset *charset.Charset
	// MaxSize is the maximum size in bytes before rotation (0 = no size rotation)
	MaxSize int64
	// MaxAge is the maximum age before rotation (0 = no time rotation)
	MaxAge time.Duration
	// MaxBackups is the maximum number of old log files to retain (0 = keep all)
	MaxBackups int
	// RotateInterval is the interval for time-based rotation (0 = no interval rotation)
	RotateInterval time.Duration
	AsyncConfig
}

// NewFileHandler opens (or creates) cfg.Filename for appending
func NewFileHandler(cfg FileConfig) (*FileHandler, error) {
	if cfg.Filename == "" {
		return nil, ErrNoFilename
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	h := &FileHandler{
		filename:       cfg.Filename,
		renderer:       newRenderer(cfg.Formatter, cfg.Charset),
		stats:          NewStats(),
		maxSize:        cfg.MaxSize,
		maxAge:         cfg.MaxAge,
		maxBackups:     cfg.MaxBackups,
		rotateInterval: cfg.RotateInterval,
	}
	if err := h.open(); err != nil {
		return nil, err
	}
	if cfg.Async {
		h.async = newDispatcher(cfg.AsyncConfig, h.stats, h.write)
	}
	return h, nil
}

// open must be called with mu held (or before the handler is shared).
func (h *FileHandler) open() error {
	file, err := os.OpenFile(h.filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	info, err := file.Stat()
	if err != nil {
		return multierr.Combine(err, file.Close())
	}
	h.file = file
	h.currentSize = info.Size()
	h.openedAt = time.Now()
	return nil
}

// Handle processes a log entry
func (h *FileHandler) Handle(entry *core.Entry) error {
	if h.async == nil {
		return h.write(entry)
	}
	return h.async.enqueue(entry)
}

func (h *FileHandler) write(entry *core.Entry) error {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := h.renderer.render(entry, buf); err != nil {
		h.stats.IncrementFailed()
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.file == nil {
		h.stats.IncrementFailed()
		return os.ErrClosed
	}
	if err := h.rotateIfNeeded(); err != nil {
		h.stats.IncrementFailed()
		return err
	}
	n, err := h.file.Write(buf.Bytes())
	h.currentSize += int64(n)
	if err != nil {
		h.stats.IncrementFailed()
		return err
	}
	h.stats.IncrementProcessed()
	return nil
}

// CanRecycleEntry returns true if the caller can recycle the entry after Handle returns
func (h *FileHandler) CanRecycleEntry() bool {
	return h.async == nil
}

func (h *FileHandler) rotateIfNeeded() error {
	age := time.Since(h.openedAt)
	switch {
	case h.maxSize > 0 && h.currentSize >= h.maxSize:
	case h.maxAge > 0 && age >= h.maxAge:
	case h.rotateInterval > 0 && age >= h.rotateInterval:
	default:
		return nil
	}
	return h.rotate()
}

// rotate renames the current file with a timestamp suffix and opens a
// fresh one. If closing or renaming fails the original file is
// reopened so later writes can still succeed.
func (h *FileHandler) rotate() error {
	if err := multierr.Combine(h.file.Sync(), h.file.Close()); err != nil {
		h.file = nil
		return multierr.Append(err, h.open())
	}
	h.file = nil

	rotated := h.filename + "." + time.Now().Format(backupLayout)
	if err := os.Rename(h.filename, rotated); err != nil {
		if openErr := h.open(); openErr != nil {
			return fmt.Errorf("rotation failed: %w, reopen failed: %w", err, openErr)
		}
		return err
	}
	if h.maxBackups > 0 {
		h.pruneBackups()
	}
	return h.open()
}

// pruneBackups removes the oldest backups beyond maxBackups. The
// timestamp suffix sorts lexically in time order.
func (h *FileHandler) pruneBackups() {
	prefix := filepath.Base(h.filename) + "."
	entries, err := os.ReadDir(filepath.Dir(h.filename))
	if err != nil {
		return
	}
	var backups []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), prefix) {
			backups = append(backups, e.Name())
		}
	}
	if len(backups) <= h.maxBackups {
		return
	}
	slices.Sort(backups)
	dir := filepath.Dir(h.filename)
	for _, name := range backups[:len(backups)-h.maxBackups] {
		_ = os.Remove(filepath.Join(dir, name))
	}
}

// Stats returns a snapshot of the current statistics
func (h *FileHandler) Stats() Snapshot {
	return h.stats.GetSnapshot()
}

// Close drains the queue, then syncs and closes the file
func (h *FileHandler) Close() error {
	if h.async != nil {
		h.async.close()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.file == nil {
		return nil
	}
	err := multierr.Combine(h.file.Sync(), h.file.Close())
	h.file = nil
	return err
}

// Sync flushes the file to stable storage. Entries still queued in
// async mode are not waited for.
func (h *FileHandler) Sync() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.file == nil {
		return nil
	}
	return h.file.Sync()
}
