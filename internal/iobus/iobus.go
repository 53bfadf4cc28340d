// Package iobus implements the BNS 8-bit I/O port dispatch table and an
// optional bounded trace ring, grounded on original_source/qns/io.py's
// IOBus but reshaped from a Python dict to a fixed 256-entry array per
// spec.md §4.2 ("avoiding hashing on the hot path").
package iobus

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ReadFunc reads a byte from a port.
type ReadFunc func(port byte) byte

// WriteFunc writes a byte to a port.
type WriteFunc func(port byte, value byte)

// Direction identifies a trace entry's direction.
type Direction byte

const (
	DirRead Direction = iota
	DirWrite
)

func (d Direction) String() string {
	if d == DirWrite {
		return "W"
	}
	return "R"
}

// Entry is one recorded bus transaction.
type Entry struct {
	Dir   Direction
	Port  byte
	Value byte
}

func (e Entry) String() string {
	return fmt.Sprintf("%s port=%02X val=%02X", e.Dir, e.Port, e.Value)
}

const defaultLogCap = 4096

// Bus is the 8-bit port dispatch table.
type Bus struct {
	readers [256]ReadFunc
	writers [256]WriteFunc

	Tracing bool
	log     []Entry
	logCap  int

	log_ *logrus.Logger
}

// New constructs an empty Bus with tracing disabled.
func New(log *logrus.Logger) *Bus {
	return &Bus{logCap: defaultLogCap, log_: log}
}

// Register binds read/write handlers for a single port, overriding any
// prior binding. A nil handler leaves that direction unbound.
func (b *Bus) Register(port byte, read ReadFunc, write WriteFunc) {
	b.readers[port] = read
	b.writers[port] = write
}

// RegisterRange binds the same handlers across [start, end] inclusive.
func (b *Bus) RegisterRange(start, end byte, read ReadFunc, write WriteFunc) {
	for p := int(start); p <= int(end); p++ {
		b.Register(byte(p), read, write)
	}
}

// Read dispatches a port read. Ports with no registered read handler
// return 0xFF.
func (b *Bus) Read(port byte) byte {
	var v byte = 0xFF
	if h := b.readers[port]; h != nil {
		v = h(port)
	}
	b.trace(DirRead, port, v)
	return v
}

// Write dispatches a port write. Ports with no registered write handler
// silently drop the write.
func (b *Bus) Write(port byte, value byte) {
	b.trace(DirWrite, port, value)
	if h := b.writers[port]; h != nil {
		h(port, value)
	}
}

func (b *Bus) trace(dir Direction, port, value byte) {
	if !b.Tracing {
		return
	}
	e := Entry{Dir: dir, Port: port, Value: value}
	b.log = append(b.log, e)
	if len(b.log) > b.logCap {
		b.log = b.log[len(b.log)-b.logCap:]
	}
	if b.log_ != nil {
		b.log_.WithFields(logrus.Fields{
			"dir": dir.String(), "port": fmt.Sprintf("%02X", port), "value": fmt.Sprintf("%02X", value),
		}).Trace("io")
	}
}

// DumpLog returns up to the last `limit` trace entries (all, if limit<=0).
func (b *Bus) DumpLog(limit int) []Entry {
	if limit <= 0 || limit >= len(b.log) {
		out := make([]Entry, len(b.log))
		copy(out, b.log)
		return out
	}
	out := make([]Entry, limit)
	copy(out, b.log[len(b.log)-limit:])
	return out
}

// ClearLog discards all recorded trace entries.
func (b *Bus) ClearLog() { b.log = nil }
