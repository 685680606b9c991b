package main

import "encoding/binary"

// buildMinimalELF32 assembles a bare little-endian ELF32 image with a
// single PT_LOAD segment, just enough for Dram.LoadELF to parse, used by
// tests that need a real guest artifact without shipping a binary fixture.
func buildMinimalELF32(code []byte, vaddr, entry uint32) []byte {
	const ehsize = 52
	const phentsize = 32
	offset := uint32(ehsize + phentsize)

	buf := make([]byte, offset+uint32(len(code)))

	copy(buf[0:4], []byte{0x7f, 'E', 'L', 'F'})
	buf[4] = 1 // ELFCLASS32
	buf[5] = 1 // ELFDATA2LSB
	buf[6] = 1 // EV_CURRENT

	le := binary.LittleEndian
	le.PutUint16(buf[16:18], 2)       // e_type = ET_EXEC
	le.PutUint16(buf[18:20], 243)     // e_machine = EM_RISCV
	le.PutUint32(buf[20:24], 1)       // e_version
	le.PutUint32(buf[24:28], entry)   // e_entry
	le.PutUint32(buf[28:32], ehsize)  // e_phoff
	le.PutUint32(buf[32:36], 0)       // e_shoff
	le.PutUint32(buf[36:40], 0)       // e_flags
	le.PutUint16(buf[40:42], ehsize)  // e_ehsize
	le.PutUint16(buf[42:44], phentsize)
	le.PutUint16(buf[44:46], 1) // e_phnum
	le.PutUint16(buf[46:48], 0)
	le.PutUint16(buf[48:50], 0)
	le.PutUint16(buf[50:52], 0)

	ph := buf[ehsize:offset]
	le.PutUint32(ph[0:4], 1)               // p_type = PT_LOAD
	le.PutUint32(ph[4:8], offset)          // p_offset
	le.PutUint32(ph[8:12], vaddr)          // p_vaddr
	le.PutUint32(ph[12:16], vaddr)         // p_paddr
	le.PutUint32(ph[16:20], uint32(len(code))) // p_filesz
	le.PutUint32(ph[20:24], uint32(len(code))) // p_memsz
	le.PutUint32(ph[24:28], 5)             // p_flags = PF_R|PF_X
	le.PutUint32(ph[28:32], 4)             // p_align

	copy(buf[offset:], code)
	return buf
}
