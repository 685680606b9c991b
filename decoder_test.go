package main

import "testing"

func decode32Bytes(t *testing.T, inst uint32) (Instruction, int) {
	t.Helper()
	low := uint16(inst & 0xffff)
	high := uint16(inst >> 16)
	in, n, err := Decode(low, high, true)
	if err != nil {
		t.Fatalf("Decode(%#08x): unexpected error: %v", inst, err)
	}
	return in, n
}

func decode16Bytes(t *testing.T, inst uint16) (Instruction, int) {
	t.Helper()
	in, n, err := Decode(inst, 0, false)
	if err != nil {
		t.Fatalf("Decode(%#04x): unexpected error: %v", inst, err)
	}
	return in, n
}

func TestParsesMulAsRV32M(t *testing.T) {
	in, n := decode32Bytes(t, 0x02b50533)
	if n != 4 {
		t.Fatalf("length = %d, want 4", n)
	}
	if in.Kind != KindM || in.Op != OpMUL {
		t.Fatalf("got Kind=%v Op=%v, want M/MUL", in.Kind, in.Op)
	}
	if in.Rd != 10 || in.Rs1 != 10 || in.Rs2 != 11 {
		t.Fatalf("got rd=%d rs1=%d rs2=%d, want 10/10/11", in.Rd, in.Rs1, in.Rs2)
	}
}

func TestParsesAmoAddW(t *testing.T) {
	in, n := decode32Bytes(t, 0x06b5202f)
	if n != 4 {
		t.Fatalf("length = %d, want 4", n)
	}
	if in.Kind != KindA || in.Op != OpAMOADDW {
		t.Fatalf("got Kind=%v Op=%v, want A/AMOADDW", in.Kind, in.Op)
	}
	if in.Rd != 0 || in.Rs1 != 10 || in.Rs2 != 11 {
		t.Fatalf("got rd=%d rs1=%d rs2=%d, want 0/10/11", in.Rd, in.Rs1, in.Rs2)
	}
	if !in.Aq || !in.Rl {
		t.Fatalf("got aq=%v rl=%v, want true/true", in.Aq, in.Rl)
	}
}

func TestParsesCJrWithLen2(t *testing.T) {
	in, n := decode16Bytes(t, 0x8082)
	if n != 2 {
		t.Fatalf("length = %d, want 2", n)
	}
	if in.Kind != KindI || in.Op != OpJALR {
		t.Fatalf("got Kind=%v Op=%v, want I/JALR", in.Kind, in.Op)
	}
	if in.Rd != 0 || in.Rs1 != 1 || in.Imm != 0 {
		t.Fatalf("got rd=%d rs1=%d imm=%d, want 0/1/0", in.Rd, in.Rs1, in.Imm)
	}
}

func TestParsesCFlwspWithLen2(t *testing.T) {
	in, n := decode16Bytes(t, 0x6092)
	if n != 2 {
		t.Fatalf("length = %d, want 2", n)
	}
	if in.Kind != KindFL || in.Op != OpFLW {
		t.Fatalf("got Kind=%v Op=%v, want FL/FLW", in.Kind, in.Op)
	}
	if in.Rd != 1 || in.Rs1 != 2 || in.Imm != 4 {
		t.Fatalf("got rd=%d rs1=%d imm=%d, want 1/2/4", in.Rd, in.Rs1, in.Imm)
	}
}

func TestParsesFence(t *testing.T) {
	in, n := decode32Bytes(t, 0x0330000f)
	if n != 4 {
		t.Fatalf("length = %d, want 4", n)
	}
	if in.Kind != KindFence || in.Op != OpFence {
		t.Fatalf("got Kind=%v Op=%v, want Fence/Fence", in.Kind, in.Op)
	}
}

func TestParsesFlhFldAndFshFsd(t *testing.T) {
	cases := []struct {
		inst uint32
		kind Kind
		op   Op
	}{
		{0x00009007, KindFL, OpFLH},
		{0x0000b007, KindFL, OpFLD},
		{0x00009027, KindFS, OpFSH},
		{0x0000b027, KindFS, OpFSD},
	}
	for _, c := range cases {
		in, n := decode32Bytes(t, c.inst)
		if n != 4 {
			t.Errorf("inst %#08x: length = %d, want 4", c.inst, n)
		}
		if in.Kind != c.kind || in.Op != c.op {
			t.Errorf("inst %#08x: got Kind=%v Op=%v, want %v/%v", c.inst, in.Kind, in.Op, c.kind, c.op)
		}
	}
}

func TestCompressedSignExtensionRegressions(t *testing.T) {
	cases := []struct {
		name string
		inst uint16
		kind Kind
		op   Op
		rd   uint32
		rs1  uint32
		imm  int32
	}{
		{"c.addi a3,-1", 0x16fd, KindI, OpADDI, 13, 13, -1},
		{"c.li x5,-1", 0x52fd, KindI, OpADDI, 5, 0, -1},
		{"c.lui x9,-1", 0x74fd, KindU, OpLUI, 9, 0, -4096},
		{"c.andi x9,-1", 0x98fd, KindI, OpANDI, 9, 9, -1},
	}
	for _, c := range cases {
		in, n := decode16Bytes(t, c.inst)
		if n != 2 {
			t.Errorf("%s: length = %d, want 2", c.name, n)
		}
		if in.Kind != c.kind || in.Op != c.op {
			t.Errorf("%s: got Kind=%v Op=%v, want %v/%v", c.name, in.Kind, in.Op, c.kind, c.op)
		}
		if in.Rd != c.rd || (c.kind == KindI && in.Rs1 != c.rs1) || in.Imm != c.imm {
			t.Errorf("%s: got rd=%d rs1=%d imm=%d, want %d/%d/%d", c.name, in.Rd, in.Rs1, in.Imm, c.rd, c.rs1, c.imm)
		}
	}
}
