package iobus

import "testing"

func TestRegisterAndDispatch(t *testing.T) {
	b := New(nil)
	var last byte
	b.Register(0x40, func(p byte) byte { return 0x5A }, func(p, v byte) { last = v })

	if got := b.Read(0x40); got != 0x5A {
		t.Fatalf("read = %#x, want 0x5A", got)
	}
	b.Write(0x40, 0x99)
	if last != 0x99 {
		t.Fatalf("write handler saw %#x, want 0x99", last)
	}
}

func TestUnregisteredPortReadsFF(t *testing.T) {
	b := New(nil)
	if got := b.Read(0x10); got != 0xFF {
		t.Fatalf("read unregistered port = %#x, want 0xFF", got)
	}
	b.Write(0x10, 0x01) // must not panic
}

func TestRegisterRange(t *testing.T) {
	b := New(nil)
	buf := map[byte]byte{}
	b.RegisterRange(0x80, 0x83, func(p byte) byte { return buf[p] }, func(p, v byte) { buf[p] = v })
	b.Write(0x81, 0x7)
	if got := b.Read(0x81); got != 0x7 {
		t.Fatalf("range write/read = %#x, want 7", got)
	}
	if got := b.Read(0x84); got != 0xFF {
		t.Fatalf("outside range = %#x, want 0xFF", got)
	}
}

func TestTraceLogAndClear(t *testing.T) {
	b := New(nil)
	b.Tracing = true
	b.Register(0x01, func(p byte) byte { return 0x02 }, func(p, v byte) {})
	b.Read(0x01)
	b.Write(0x01, 0x03)

	log := b.DumpLog(0)
	if len(log) != 2 {
		t.Fatalf("log len = %d, want 2", len(log))
	}
	if log[0].Dir != DirRead || log[0].Value != 0x02 {
		t.Fatalf("unexpected first entry: %+v", log[0])
	}
	if log[1].Dir != DirWrite || log[1].Value != 0x03 {
		t.Fatalf("unexpected second entry: %+v", log[1])
	}

	b.ClearLog()
	if len(b.DumpLog(0)) != 0 {
		t.Fatalf("log not cleared")
	}
}

func TestTraceLogBounded(t *testing.T) {
	b := New(nil)
	b.Tracing = true
	b.logCap = 4
	b.Register(0x01, func(p byte) byte { return 0 }, nil)
	for i := 0; i < 10; i++ {
		b.Read(0x01)
	}
	if got := len(b.DumpLog(0)); got != 4 {
		t.Fatalf("bounded log len = %d, want 4", got)
	}
}
