package main

import (
	"debug/elf"
	"fmt"
)

// DRAMSize is the default per-car guest memory size in bytes, matching the
// memory map's default; a session config may override it per race.
const DRAMSize = 65536

// Dram is the guest's flat, little-endian byte-addressed RAM.
type Dram struct {
	mem []byte
}

// NewDram creates a zeroed dram of the default size, used by tests that
// don't load a full ELF image.
func NewDram() *Dram {
	return NewDramSized(DRAMSize)
}

// NewDramSized creates a zeroed dram of the given size, used when the
// session config overrides the default.
func NewDramSized(size int) *Dram {
	if size <= 0 {
		size = DRAMSize
	}
	return &Dram{mem: make([]byte, size)}
}

// Size returns the dram's byte capacity.
func (d *Dram) Size() uint32 { return uint32(len(d.mem)) }

// LoadELF parses a little-endian ELF32 image into this dram's memory and
// returns the program's entry point. Only PT_LOAD segments are copied in;
// bytes outside those ranges remain zeroed.
func (d *Dram) LoadELF(code []byte) (uint32, error) {
	f, err := elf.NewFile(byteReaderAt(code))
	if err != nil {
		return 0, &MalformedElfError{Reason: fmt.Sprintf("failed to parse elf: %v", err)}
	}
	if f.Class != elf.ELFCLASS32 {
		return 0, &MalformedElfError{Reason: "only 32-bit ELF images are supported"}
	}
	if f.Data != elf.ELFDATA2LSB {
		return 0, &MalformedElfError{Reason: "only little-endian ELF images are supported"}
	}

	size := uint64(len(d.mem))
	for _, prog := range f.Progs {
		if prog.Type != elf.PT_LOAD {
			continue
		}
		vaddr := prog.Vaddr
		filesz := prog.Filesz
		memsz := prog.Memsz
		if memsz < filesz {
			memsz = filesz
		}
		if vaddr+memsz > size {
			return 0, &MalformedElfError{Reason: fmt.Sprintf("PT_LOAD segment at %#x size %#x exceeds dram size %#x", vaddr, memsz, size)}
		}
		if segmentOverlapsIO(vaddr, memsz) {
			return 0, &MalformedElfError{Reason: fmt.Sprintf("PT_LOAD segment at %#x size %#x overlaps the IO region [%#x, %#x)", vaddr, memsz, uint32(IOBase), uint32(IOTop))}
		}
		data := make([]byte, filesz)
		n, err := prog.ReadAt(data, 0)
		if err != nil && uint64(n) != filesz {
			return 0, &MalformedElfError{Reason: fmt.Sprintf("failed to read PT_LOAD segment at %#x: %v", vaddr, err)}
		}
		copy(d.mem[vaddr:vaddr+filesz], data)
	}

	return uint32(f.Entry), nil
}

// segmentOverlapsIO reports whether a PT_LOAD segment's byte range intersects
// the fixed MMIO window, which guest code and data may never occupy.
func segmentOverlapsIO(vaddr, filesz uint64) bool {
	if filesz == 0 {
		return false
	}
	return vaddr < uint64(IOTop) && vaddr+filesz > uint64(IOBase)
}

func (d *Dram) Load8(addr uint32) uint32 {
	return uint32(d.mem[addr])
}

func (d *Dram) Load16(addr uint32) uint32 {
	return uint32(d.mem[addr]) | uint32(d.mem[addr+1])<<8
}

func (d *Dram) Load32(addr uint32) uint32 {
	return uint32(d.mem[addr]) | uint32(d.mem[addr+1])<<8 |
		uint32(d.mem[addr+2])<<16 | uint32(d.mem[addr+3])<<24
}

func (d *Dram) Store8(addr uint32, value uint32) {
	d.mem[addr] = byte(value)
}

func (d *Dram) Store16(addr uint32, value uint32) {
	d.mem[addr] = byte(value)
	d.mem[addr+1] = byte(value >> 8)
}

func (d *Dram) Store32(addr uint32, value uint32) {
	d.mem[addr] = byte(value)
	d.mem[addr+1] = byte(value >> 8)
	d.mem[addr+2] = byte(value >> 16)
	d.mem[addr+3] = byte(value >> 24)
}

// Reset zeroes the dram in place, keeping the backing allocation.
func (d *Dram) Reset() {
	for i := range d.mem {
		d.mem[i] = 0
	}
}

// byteReaderAt adapts a byte slice to io.ReaderAt for debug/elf.NewFile.
type byteReaderAt []byte

func (b byteReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(b)) {
		return 0, fmt.Errorf("dram: read offset %d out of range", off)
	}
	n := copy(p, b[off:])
	if n < len(p) {
		return n, fmt.Errorf("dram: short read at offset %d", off)
	}
	return n, nil
}
