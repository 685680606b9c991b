package main

import "fmt"

// decodeCompressed decodes a 16-bit RVC instruction. RV32 only: all RV64C
// opcodes that overlap these encodings (C.SUBW/C.ADDW and friends, flagged by
// bit 12 set in the op==0x3 group) are rejected as illegal.
func decodeCompressed(inst uint16) (Instruction, error) {
	in := uint32(inst)
	quadrant := in & 0x3
	funct3 := (in >> 13) & 0x7

	switch quadrant {
	case 0x0:
		return decodeCQuadrant0(in, funct3)
	case 0x1:
		return decodeCQuadrant1(in, funct3)
	case 0x2:
		return decodeCQuadrant2(in, funct3)
	default:
		return Instruction{}, fmt.Errorf("decodeCompressed: quadrant 3 is not a compressed form")
	}
}

// cReg maps a 3-bit compressed register field to x8-x15.
func cReg(field uint32) uint32 {
	return field + 8
}

func decodeCQuadrant0(in uint32, funct3 uint32) (Instruction, error) {
	rdRs2 := cReg((in >> 2) & 0x7)
	rs1 := cReg((in >> 7) & 0x7)
	uimm := ((in>>6)&0x1)<<2 | ((in>>10)&0x7)<<3 | ((in>>5)&0x1)<<6

	switch funct3 {
	case 0x0: // C.ADDI4SPN
		nzuimm := ((in>>11)&0x3)<<4 | ((in>>7)&0xf)<<6 | cbit(in, 6)<<2 | cbit(in, 5)<<3
		if nzuimm == 0 {
			return Instruction{}, fmt.Errorf("decodeCQuadrant0: C.ADDI4SPN with nzuimm==0 is illegal")
		}
		return Instruction{Kind: KindI, Op: OpADDI, Rd: rdRs2, Rs1: 2, Imm: int32(nzuimm)}, nil
	case 0x1: // C.FLW (RV32FC)
		return Instruction{Kind: KindFL, Op: OpFLW, Rd: rdRs2, Rs1: rs1, Imm: int32(uimm)}, nil
	case 0x2: // C.LW
		return Instruction{Kind: KindI, Op: OpLW, Rd: rdRs2, Rs1: rs1, Imm: int32(uimm)}, nil
	case 0x5: // C.FSW
		return Instruction{Kind: KindFS, Op: OpFSW, Rs1: rs1, Rs2: rdRs2, Imm: int32(uimm)}, nil
	case 0x6: // C.SW
		return Instruction{Kind: KindS, Op: OpSW, Rs1: rs1, Rs2: rdRs2, Imm: int32(uimm)}, nil
	default:
		return Instruction{}, fmt.Errorf("decodeCQuadrant0: unknown funct3 %#x", funct3)
	}
}

func decodeCQuadrant1(in uint32, funct3 uint32) (Instruction, error) {
	rd := (in >> 7) & 0x1f

	switch funct3 {
	case 0x0: // C.NOP / C.ADDI
		imm := signExtend(((in>>2)&0x1f)|(cbit(in, 12)<<5), 6)
		return Instruction{Kind: KindI, Op: OpADDI, Rd: rd, Rs1: rd, Imm: imm}, nil
	case 0x1: // C.JAL (RV32 only; RV64 uses this slot for C.ADDIW)
		imm := decodeCJImm(in)
		return Instruction{Kind: KindJ, Op: OpJAL, Rd: 1, Imm: imm}, nil
	case 0x2: // C.LI
		imm := signExtend(((in>>2)&0x1f)|(cbit(in, 12)<<5), 6)
		return Instruction{Kind: KindI, Op: OpADDI, Rd: rd, Rs1: 0, Imm: imm}, nil
	case 0x3: // C.ADDI16SP (rd==2) / C.LUI (rd!=2)
		if rd == 2 {
			nzimm := cbit(in, 12)<<9 | cbit(in, 6)<<4 | cbit(in, 5)<<6 | ((in>>3)&0x3)<<7 | cbit(in, 2)<<5
			imm := signExtend(nzimm, 10)
			if imm == 0 {
				return Instruction{}, fmt.Errorf("decodeCQuadrant1: C.ADDI16SP with nzimm==0 is illegal")
			}
			return Instruction{Kind: KindI, Op: OpADDI, Rd: 2, Rs1: 2, Imm: imm}, nil
		}
		imm6 := ((in >> 2) & 0x1f) | (cbit(in, 12) << 5)
		if rd == 0 || imm6 == 0 {
			return Instruction{}, fmt.Errorf("decodeCQuadrant1: C.LUI with rd==0 or imm==0 is illegal")
		}
		imm := signExtend(imm6, 6) << 12
		return Instruction{Kind: KindU, Op: OpLUI, Rd: rd, Imm: imm}, nil
	case 0x4: // arithmetic group
		rdp := cReg((in >> 7) & 0x7)
		op2 := (in >> 10) & 0x3
		switch op2 {
		case 0x0: // C.SRLI
			if cbit(in, 12) == 1 {
				return Instruction{}, fmt.Errorf("decodeCQuadrant1: C.SRLI64 not supported on RV32")
			}
			shamt := (in >> 2) & 0x1f
			return Instruction{Kind: KindI, Op: OpSRLI, Rd: rdp, Rs1: rdp, Imm: int32(shamt)}, nil
		case 0x1: // C.SRAI
			if cbit(in, 12) == 1 {
				return Instruction{}, fmt.Errorf("decodeCQuadrant1: C.SRAI64 not supported on RV32")
			}
			shamt := (in >> 2) & 0x1f
			return Instruction{Kind: KindI, Op: OpSRAI, Rd: rdp, Rs1: rdp, Imm: int32(shamt)}, nil
		case 0x2: // C.ANDI
			imm := signExtend(((in>>2)&0x1f)|(cbit(in, 12)<<5), 6)
			return Instruction{Kind: KindI, Op: OpANDI, Rd: rdp, Rs1: rdp, Imm: imm}, nil
		case 0x3: // C.SUB/C.XOR/C.OR/C.AND
			if cbit(in, 12) == 1 {
				return Instruction{}, fmt.Errorf("decodeCQuadrant1: RV64C C.SUBW/C.ADDW space not supported on RV32")
			}
			rs2p := cReg((in >> 2) & 0x7)
			funct2 := (in >> 5) & 0x3
			var op Op
			switch funct2 {
			case 0x0:
				op = OpSUB
			case 0x1:
				op = OpXOR
			case 0x2:
				op = OpOR
			case 0x3:
				op = OpAND
			}
			return Instruction{Kind: KindR, Op: op, Rd: rdp, Rs1: rdp, Rs2: rs2p}, nil
		}
	case 0x5: // C.J
		imm := decodeCJImm(in)
		return Instruction{Kind: KindJ, Op: OpJAL, Rd: 0, Imm: imm}, nil
	case 0x6: // C.BEQZ
		rs1 := cReg((in >> 7) & 0x7)
		imm := decodeCBImm(in)
		return Instruction{Kind: KindB, Op: OpBEQ, Rs1: rs1, Rs2: 0, Imm: imm}, nil
	case 0x7: // C.BNEZ
		rs1 := cReg((in >> 7) & 0x7)
		imm := decodeCBImm(in)
		return Instruction{Kind: KindB, Op: OpBNE, Rs1: rs1, Rs2: 0, Imm: imm}, nil
	}
	return Instruction{}, fmt.Errorf("decodeCQuadrant1: unreachable funct3 %#x", funct3)
}

func decodeCQuadrant2(in uint32, funct3 uint32) (Instruction, error) {
	rd := (in >> 7) & 0x1f
	rs2 := (in >> 2) & 0x1f

	switch funct3 {
	case 0x0: // C.SLLI
		if rd == 0 || cbit(in, 12) == 1 {
			return Instruction{}, fmt.Errorf("decodeCQuadrant2: C.SLLI illegal encoding")
		}
		shamt := (cbit(in, 12) << 5) | ((in >> 2) & 0x1f)
		return Instruction{Kind: KindI, Op: OpSLLI, Rd: rd, Rs1: rd, Imm: int32(shamt)}, nil
	case 0x1: // C.FLDSP (unused, RV32D not in scope) / treated as illegal
		return Instruction{}, fmt.Errorf("decodeCQuadrant2: C.FLDSP (double precision) not supported")
	case 0x2: // C.LWSP
		if rd == 0 {
			return Instruction{}, fmt.Errorf("decodeCQuadrant2: C.LWSP with rd==0 is illegal")
		}
		uimm := ((in>>4)&0x7)<<2 | cbit(in, 12)<<5 | ((in>>2)&0x3)<<6
		return Instruction{Kind: KindI, Op: OpLW, Rd: rd, Rs1: 2, Imm: int32(uimm)}, nil
	case 0x3: // C.FLWSP
		uimm := ((in>>4)&0x7)<<2 | cbit(in, 12)<<5 | ((in>>2)&0x3)<<6
		return Instruction{Kind: KindFL, Op: OpFLW, Rd: rd, Rs1: 2, Imm: int32(uimm)}, nil
	case 0x4:
		bit12 := cbit(in, 12)
		if bit12 == 0 {
			if rs2 == 0 { // C.JR
				if rd == 0 {
					return Instruction{}, fmt.Errorf("decodeCQuadrant2: C.JR with rd==0 is illegal")
				}
				return Instruction{Kind: KindI, Op: OpJALR, Rd: 0, Rs1: rd, Imm: 0}, nil
			}
			// C.MV
			if rd == 0 {
				return Instruction{}, fmt.Errorf("decodeCQuadrant2: C.MV with rd==0 is illegal")
			}
			return Instruction{Kind: KindR, Op: OpADD, Rd: rd, Rs1: 0, Rs2: rs2}, nil
		}
		if rd == 0 && rs2 == 0 { // C.EBREAK
			return Instruction{Kind: KindEbreak}, nil
		}
		if rs2 == 0 { // C.JALR
			return Instruction{Kind: KindI, Op: OpJALR, Rd: 1, Rs1: rd, Imm: 0}, nil
		}
		// C.ADD
		if rd == 0 {
			return Instruction{}, fmt.Errorf("decodeCQuadrant2: C.ADD with rd==0 is illegal")
		}
		return Instruction{Kind: KindR, Op: OpADD, Rd: rd, Rs1: rd, Rs2: rs2}, nil
	case 0x6: // C.SWSP
		uimm := ((in>>9)&0xf)<<2 | ((in>>7)&0x3)<<6
		return Instruction{Kind: KindS, Op: OpSW, Rs1: 2, Rs2: rs2, Imm: int32(uimm)}, nil
	case 0x7: // C.FSWSP
		uimm := ((in>>9)&0xf)<<2 | ((in>>7)&0x3)<<6
		return Instruction{Kind: KindFS, Op: OpFSW, Rs1: 2, Rs2: rs2, Imm: int32(uimm)}, nil
	}
	return Instruction{}, fmt.Errorf("decodeCQuadrant2: unreachable funct3 %#x", funct3)
}

func decodeCJImm(in uint32) int32 {
	imm := cbit(in, 12)<<11 | cbit(in, 11)<<4 | ((in>>9)&0x3)<<8 | cbit(in, 8)<<10 |
		cbit(in, 7)<<6 | cbit(in, 6)<<7 | ((in>>3)&0x7)<<1 | cbit(in, 2)<<5
	return signExtend(imm, 12)
}

func decodeCBImm(in uint32) int32 {
	imm := cbit(in, 12)<<8 | ((in>>5)&0x3)<<6 | cbit(in, 2)<<5 | ((in>>10)&0x3)<<3 | ((in>>3)&0x3)<<1
	return signExtend(imm, 9)
}
