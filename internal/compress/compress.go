// Package compress wraps tree-set and report streams in zstd or lz4 frames.
//
// Readers detect the format from the frame magic, so compressed and plain
// inputs can be mixed freely. Writers pick the format from the object name.
package compress

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type defines the compression algorithm of a stream.
type Type uint8

const (
	// None indicates a plain stream.
	None Type = 0
	// LZ4 indicates an lz4 frame stream (fast).
	LZ4 Type = 1
	// Zstd indicates a zstd frame stream (better ratio).
	Zstd Type = 2
)

func (t Type) String() string {
	switch t {
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return "none"
	}
}

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

var zstdDecoderPool sync.Pool

func getZstdDecoder(r io.Reader) (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		dec := v.(*zstd.Decoder)
		if err := dec.Reset(r); err != nil {
			return nil, err
		}
		return dec, nil
	}
	return zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
}

func putZstdDecoder(dec *zstd.Decoder) {
	if err := dec.Reset(nil); err == nil {
		zstdDecoderPool.Put(dec)
	}
}

// Detect returns the compression type announced by the first bytes of a
// stream.
func Detect(header []byte) Type {
	switch {
	case bytes.HasPrefix(header, zstdMagic):
		return Zstd
	case bytes.HasPrefix(header, lz4Magic):
		return LZ4
	default:
		return None
	}
}

// FromName returns the compression type implied by a file extension.
func FromName(name string) Type {
	switch strings.ToLower(path.Ext(name)) {
	case ".zst", ".zstd":
		return Zstd
	case ".lz4":
		return LZ4
	default:
		return None
	}
}

type reader struct {
	io.Reader
	close func()
}

func (r *reader) Close() error {
	if r.close != nil {
		r.close()
		r.close = nil
	}
	return nil
}

// NewReader returns a reader that transparently decompresses r.
// Closing it does not close r.
func NewReader(r io.Reader) (io.ReadCloser, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	header, err := br.Peek(4)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, err
	}

	switch Detect(header) {
	case Zstd:
		dec, err := getZstdDecoder(br)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return &reader{Reader: dec, close: func() { putZstdDecoder(dec) }}, nil
	case LZ4:
		return &reader{Reader: lz4.NewReader(br)}, nil
	default:
		return &reader{Reader: br}, nil
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// NewWriter wraps w in a compressing writer of type t. Close flushes the
// final frame but does not close w.
func NewWriter(w io.Writer, t Type) (io.WriteCloser, error) {
	switch t {
	case Zstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	case LZ4:
		return lz4.NewWriter(w), nil
	case None:
		return nopWriteCloser{w}, nil
	default:
		return nil, fmt.Errorf("unknown compression type %d", t)
	}
}
