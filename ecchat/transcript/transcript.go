package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/pierrec/lz4/v4"
)

var (
	ErrClosed           = errors.New("transcript: writer closed")
	ErrUnknownDirection = errors.New("transcript: unknown direction")
)

// CompressionLevel controls the speed/ratio tradeoff.
type CompressionLevel int

const (
	CompressionFast    CompressionLevel = iota // Fastest, lower ratio
	CompressionDefault                         // Balanced
	CompressionBest                            // Best ratio, slower
)

func (l CompressionLevel) option() lz4.Option {
	switch l {
	case CompressionFast:
		return lz4.CompressionLevelOption(lz4.Fast)
	case CompressionBest:
		return lz4.CompressionLevelOption(lz4.Level9)
	default:
		return lz4.CompressionLevelOption(lz4.Level4)
	}
}

type Direction uint8

const (
	Outgoing Direction = iota + 1
	Incoming
)

func (d Direction) String() string {
	switch d {
	case Outgoing:
		return "out"
	case Incoming:
		return "in"
	default:
		return "unknown"
	}
}

func (d Direction) MarshalText() ([]byte, error) {
	if d != Outgoing && d != Incoming {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDirection, d)
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	switch string(b) {
	case "out":
		*d = Outgoing
	case "in":
		*d = Incoming
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDirection, b)
	}
	return nil
}

// Entry is one chat turn in plaintext.
type Entry struct {
	Time      time.Time `json:"time"`
	Direction Direction `json:"dir"`
	Text      string    `json:"text"`
}

func NewEntry(dir Direction, text string) Entry {
	return Entry{Time: time.Now().UTC(), Direction: dir, Text: text}
}

// Writer appends entries as JSON lines inside an LZ4 frame. Each entry is
// flushed so a crashed session still leaves a readable prefix.
type Writer struct {
	mu     sync.Mutex
	zw     *lz4.Writer
	enc    *json.Encoder
	file   io.Closer
	closed bool
}

func NewWriter(w io.Writer, level CompressionLevel) (*Writer, error) {
	zw := lz4.NewWriter(w)
	if err := zw.Apply(level.option()); err != nil {
		return nil, err
	}
	return &Writer{zw: zw, enc: json.NewEncoder(zw)}, nil
}

// Create opens (truncating) a transcript file at path.
func Create(path string, level CompressionLevel) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}
	w, err := NewWriter(f, level)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w.file = f
	return w, nil
}

func (w *Writer) Append(e Entry) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	if err := w.enc.Encode(e); err != nil {
		return err
	}
	return w.zw.Flush()
}

// Close ends the LZ4 frame and closes the file opened by Create.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	err := w.zw.Close()
	if w.file != nil {
		if cerr := w.file.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// ReadAll decompresses a transcript and decodes every entry.
func ReadAll(r io.Reader) ([]Entry, error) {
	dec := json.NewDecoder(lz4.NewReader(r))
	var entries []Entry
	for {
		var e Entry
		err := dec.Decode(&e)
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return entries, err
		}
		entries = append(entries, e)
	}
}

// Open reads the transcript file at path.
func Open(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadAll(f)
}
