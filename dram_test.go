package main

import (
	"errors"
	"testing"
)

func TestLoadELFRejectsSegmentOverlappingIORegion(t *testing.T) {
	d := NewDram()
	img := buildMinimalELF32([]byte{0x13, 0x00, 0x00, 0x00}, IOBase, IOBase)
	_, err := d.LoadELF(img)
	if err == nil {
		t.Fatalf("expected error loading a segment that overlaps the IO region")
	}
	if !errors.Is(err, ErrMalformedElf) {
		t.Fatalf("err = %v, want errors.Is(err, ErrMalformedElf)", err)
	}
}

func TestLoadELFAcceptsSegmentBelowIORegion(t *testing.T) {
	d := NewDram()
	img := buildMinimalELF32([]byte{0x13, 0x00, 0x00, 0x00}, 0, 0)
	entry, err := d.LoadELF(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry != 0 {
		t.Fatalf("entry = %#x, want 0", entry)
	}
}

func TestLoadELFAcceptsSegmentAboveIORegion(t *testing.T) {
	d := NewDram()
	img := buildMinimalELF32([]byte{0x13, 0x00, 0x00, 0x00}, IOTop, IOTop)
	entry, err := d.LoadELF(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry != IOTop {
		t.Fatalf("entry = %#x, want %#x", entry, IOTop)
	}
}

func TestLoadELFRejectsTruncatedImage(t *testing.T) {
	d := NewDram()
	_, err := d.LoadELF([]byte{0x00, 0x01, 0x02})
	if !errors.Is(err, ErrMalformedElf) {
		t.Fatalf("err = %v, want errors.Is(err, ErrMalformedElf)", err)
	}
}

func TestSegmentOverlapsIO(t *testing.T) {
	cases := []struct {
		vaddr, filesz uint64
		want          bool
	}{
		{0, 0x100, false},    // ends exactly at IOBase
		{0, 0x101, true},     // one byte into the window
		{IOBase, 1, true},    // starts inside the window
		{IOTop - 1, 1, true}, // last byte of the window
		{IOTop, 1, false},    // starts right after the window
		{0, 0, false},        // empty segment never overlaps
	}
	for _, c := range cases {
		if got := segmentOverlapsIO(c.vaddr, c.filesz); got != c.want {
			t.Errorf("segmentOverlapsIO(%#x, %#x) = %v, want %v", c.vaddr, c.filesz, got, c.want)
		}
	}
}
