package handler

import (
	"bytes"
	"sync"
	"time"

	"github.com/philipp01105/nlog/charset"
	"github.com/philipp01105/nlog/core"
	"github.com/philipp01105/nlog/formatter"
)

// AsyncConfig holds the queueing options shared by async handlers.
type AsyncConfig struct {
	// Async enables asynchronous logging
	Async bool
	// BufferSize is the size of the async queue (default: 1000)
	BufferSize int
	// OverflowPolicy defines per-level overflow behavior (default: uses DefaultLevelPolicy)
	OverflowPolicy map[core.Level]OverflowPolicy
	// BlockTimeout is the timeout for blocking overflow policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout is the timeout for draining queue on Close (default: 5s)
	DrainTimeout time.Duration
}

func (c *AsyncConfig) setDefaults() {
	if c.BufferSize <= 0 {
		c.BufferSize = 1000
	}
	if c.OverflowPolicy == nil {
		c.OverflowPolicy = DefaultLevelPolicy()
	}
	if c.BlockTimeout == 0 {
		c.BlockTimeout = 100 * time.Millisecond
	}
	if c.DrainTimeout == 0 {
		c.DrainTimeout = 5 * time.Second
	}
}

// dispatcher owns the async queue and its worker goroutine. Entries
// taken off the queue are written with write and returned to the pool.
type dispatcher struct {
	cfg    AsyncConfig
	queue  chan *core.Entry
	closed chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
	stats  *Stats
	write  func(*core.Entry) error
}

func newDispatcher(cfg AsyncConfig, stats *Stats, write func(*core.Entry) error) *dispatcher {
	cfg.setDefaults()
	d := &dispatcher{
		cfg:    cfg,
		queue:  make(chan *core.Entry, cfg.BufferSize),
		closed: make(chan struct{}),
		stats:  stats,
		write:  write,
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// enqueue applies the overflow policy for the entry's level.
func (d *dispatcher) enqueue(entry *core.Entry) error {
	select {
	case <-d.closed:
		return d.write(entry)
	default:
	}

	policy, ok := d.cfg.OverflowPolicy[entry.Level]
	if !ok {
		policy = DropNewest
	}

	select {
	case d.queue <- entry:
		return nil
	default:
	}

	switch policy {
	case Block:
		timer := time.NewTimer(d.cfg.BlockTimeout)
		defer timer.Stop()
		select {
		case d.queue <- entry:
			return nil
		case <-timer.C:
			// Timeout - fall back to synchronous write
			d.stats.IncrementBlocked()
			return d.write(entry)
		case <-d.closed:
			return d.write(entry)
		}
	case DropOldest:
		select {
		case old := <-d.queue:
			d.stats.IncrementDropped(old.Level)
			core.PutEntry(old)
		default:
		}
		select {
		case d.queue <- entry:
		default:
			d.stats.IncrementDropped(entry.Level)
		}
		return nil
	default:
		d.stats.IncrementDropped(entry.Level)
		return nil
	}
}

func (d *dispatcher) run() {
	defer d.wg.Done()
	for {
		select {
		case entry := <-d.queue:
			d.consume(entry)
		case <-d.closed:
			d.drain()
			return
		}
	}
}

func (d *dispatcher) consume(entry *core.Entry) {
	// Failures are already counted by write; keep serving the queue.
	_ = d.write(entry)
	core.PutEntry(entry)
}

func (d *dispatcher) drain() {
	deadline := time.NewTimer(d.cfg.DrainTimeout)
	defer deadline.Stop()
	for {
		select {
		case entry := <-d.queue:
			d.consume(entry)
		case <-deadline.C:
			return
		default:
			return
		}
	}
}

// close stops the worker after draining. It is idempotent.
func (d *dispatcher) close() {
	d.once.Do(func() {
		close(d.closed)
		d.wg.Wait()
	})
}

// renderer picks the cheapest formatting path a formatter offers. With
// a charset configured the byte path is used; otherwise the buffer path.
type renderer struct {
	formatter formatter.Formatter
	buffer    formatter.BufferFormatter
	encoding  formatter.EncodingFormatter
	charset   *charset.Charset
}

func newRenderer(f formatter.Formatter, cs *charset.Charset) renderer {
	r := renderer{formatter: f}
	r.buffer, _ = f.(formatter.BufferFormatter)
	r.encoding, _ = f.(formatter.EncodingFormatter)
	if cs != nil && !cs.IsUTF8() {
		r.charset = cs
	}
	return r
}

func (r *renderer) render(entry *core.Entry, buf *bytes.Buffer) error {
	if r.charset != nil {
		if r.encoding != nil {
			return r.encoding.FormatEncoded(entry, buf, r.charset)
		}
		data, err := r.formatter.Format(entry)
		if err != nil {
			return err
		}
		out, err := r.charset.AppendEncode(buf.AvailableBuffer(), string(data))
		if err != nil {
			return err
		}
		buf.Write(out)
		return nil
	}
	if r.buffer != nil {
		r.buffer.FormatEntry(entry, buf)
		return nil
	}
	data, err := r.formatter.Format(entry)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}

var bufferPool = sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 {
		return
	}
	bufferPool.Put(buf)
}
