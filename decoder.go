package main

import "fmt"

// Decode decodes one instruction from the low and high half-words at the
// fetch address, returning the decoded form and its length in bytes (2 for
// compressed, 4 otherwise). halfHigh is only read if halfLow indicates a
// 32-bit encoding; have4 reports whether the caller fetched it, and a 32-bit
// encoding without it is an error.
func Decode(halfLow, halfHigh uint16, have4 bool) (Instruction, int, error) {
	if halfLow&0x3 != 0x3 {
		in, err := decodeCompressed(halfLow)
		return in, 2, err
	}
	if !have4 {
		return Instruction{}, 0, fmt.Errorf("truncated 32-bit instruction at fetch boundary")
	}
	inst := uint32(halfLow) | uint32(halfHigh)<<16
	in, err := decode32(inst)
	return in, 4, err
}

func decode32(inst uint32) (Instruction, error) {
	opcode := inst & 0x7f
	funct3 := (inst >> 12) & 0x7
	rd := (inst >> 7) & 0x1f
	rs1 := (inst >> 15) & 0x1f
	rs2 := (inst >> 20) & 0x1f

	switch opcode {
	case 0x03: // loads
		imm := int32(inst) >> 20
		var op Op
		switch funct3 {
		case 0x0:
			op = OpLB
		case 0x1:
			op = OpLH
		case 0x2:
			op = OpLW
		case 0x4:
			op = OpLBU
		case 0x5:
			op = OpLHU
		default:
			return Instruction{}, fmt.Errorf("decode32: unknown load funct3 %#x", funct3)
		}
		return Instruction{Kind: KindI, Op: op, Rd: rd, Rs1: rs1, Imm: imm}, nil

	case 0x0f: // fence / fence.i
		pred := (inst >> 24) & 0xf
		succ := (inst >> 20) & 0xf
		fm := (inst >> 28) & 0xf
		if funct3 == 0x1 {
			return Instruction{Kind: KindFence, Op: OpFenceI}, nil
		}
		return Instruction{Kind: KindFence, Op: OpFence, Pred: pred, Succ: succ, FM: fm}, nil

	case 0x13: // I-type ALU
		immI := int32(inst&0xfff00000) >> 20
		var op Op
		switch funct3 {
		case 0x0:
			op = OpADDI
		case 0x1:
			op = OpSLLI
			return Instruction{Kind: KindI, Op: op, Rd: rd, Rs1: rs1, Imm: int32(rs2)}, nil
		case 0x2:
			op = OpSLTI
		case 0x3:
			op = OpSLTIU
		case 0x4:
			op = OpXORI
		case 0x5:
			if inst&0x40000000 != 0 {
				return Instruction{Kind: KindI, Op: OpSRAI, Rd: rd, Rs1: rs1, Imm: int32(rs2)}, nil
			}
			return Instruction{Kind: KindI, Op: OpSRLI, Rd: rd, Rs1: rs1, Imm: int32(rs2)}, nil
		case 0x6:
			op = OpORI
		case 0x7:
			op = OpANDI
		default:
			return Instruction{}, fmt.Errorf("decode32: unreachable I-type funct3 %#x", funct3)
		}
		return Instruction{Kind: KindI, Op: op, Rd: rd, Rs1: rs1, Imm: immI}, nil

	case 0x23: // stores
		immU := ((inst >> 20) & 0xfe0) | ((inst >> 7) & 0x1f)
		imm := signExtend(immU, 12)
		var op Op
		switch funct3 {
		case 0x0:
			op = OpSB
		case 0x1:
			op = OpSH
		case 0x2:
			op = OpSW
		default:
			return Instruction{}, fmt.Errorf("decode32: unknown store funct3 %#x", funct3)
		}
		return Instruction{Kind: KindS, Op: op, Rs1: rs1, Rs2: rs2, Imm: imm}, nil

	case 0x2f: // atomics
		funct5 := (inst >> 27) & 0x1f
		aq := cbit(inst, 26) != 0
		rl := cbit(inst, 25) != 0
		var op Op
		switch funct5 {
		case 0x02:
			if rs2 != 0 {
				return Instruction{}, fmt.Errorf("decode32: LR.W requires rs2==0")
			}
			op = OpLRW
		case 0x03:
			op = OpSCW
		case 0x01:
			op = OpAMOSWAPW
		case 0x00:
			op = OpAMOADDW
		case 0x04:
			op = OpAMOXORW
		case 0x0c:
			op = OpAMOANDW
		case 0x08:
			op = OpAMOORW
		case 0x10:
			op = OpAMOMINW
		case 0x14:
			op = OpAMOMAXW
		case 0x18:
			op = OpAMOMINUW
		case 0x1c:
			op = OpAMOMAXUW
		default:
			return Instruction{}, fmt.Errorf("decode32: unknown atomic funct5 %#x", funct5)
		}
		return Instruction{Kind: KindA, Op: op, Rd: rd, Rs1: rs1, Rs2: rs2, Aq: aq, Rl: rl}, nil

	case 0x33: // R-type / M-extension
		funct7 := (inst >> 25) & 0x7f
		if funct7 == 0x01 {
			var op Op
			switch funct3 {
			case 0x0:
				op = OpMUL
			case 0x1:
				op = OpMULH
			case 0x2:
				op = OpMULHSU
			case 0x3:
				op = OpMULHU
			case 0x4:
				op = OpDIV
			case 0x5:
				op = OpDIVU
			case 0x6:
				op = OpREM
			case 0x7:
				op = OpREMU
			default:
				return Instruction{}, fmt.Errorf("decode32: unreachable M funct3 %#x", funct3)
			}
			return Instruction{Kind: KindM, Op: op, Rd: rd, Rs1: rs1, Rs2: rs2}, nil
		}
		var op Op
		switch funct3 {
		case 0x0:
			if funct7 == 0x20 {
				op = OpSUB
			} else {
				op = OpADD
			}
		case 0x1:
			op = OpSLL
		case 0x2:
			op = OpSLT
		case 0x3:
			op = OpSLTU
		case 0x4:
			op = OpXOR
		case 0x5:
			if funct7 == 0x20 {
				op = OpSRA
			} else {
				op = OpSRL
			}
		case 0x6:
			op = OpOR
		case 0x7:
			op = OpAND
		default:
			return Instruction{}, fmt.Errorf("decode32: unreachable R funct3 %#x", funct3)
		}
		return Instruction{Kind: KindR, Op: op, Rd: rd, Rs1: rs1, Rs2: rs2}, nil

	case 0x37: // LUI
		return Instruction{Kind: KindU, Op: OpLUI, Rd: rd, Imm: int32(inst & 0xfffff000)}, nil

	case 0x17: // AUIPC
		return Instruction{Kind: KindU, Op: OpAUIPC, Rd: rd, Imm: int32(inst & 0xfffff000)}, nil

	case 0x63: // branches
		immU := ((inst >> 19) & 0x1000) | ((inst >> 20) & 0x7e0) | ((inst >> 7) & 0x1e) | ((inst << 4) & 0x800)
		imm := signExtend(immU, 13)
		var op Op
		switch funct3 {
		case 0x0:
			op = OpBEQ
		case 0x1:
			op = OpBNE
		case 0x4:
			op = OpBLT
		case 0x5:
			op = OpBGE
		case 0x6:
			op = OpBLTU
		case 0x7:
			op = OpBGEU
		default:
			return Instruction{}, fmt.Errorf("decode32: unknown branch funct3 %#x", funct3)
		}
		return Instruction{Kind: KindB, Op: op, Rs1: rs1, Rs2: rs2, Imm: imm}, nil

	case 0x67: // JALR
		imm := int32(inst&0xfff00000) >> 20
		return Instruction{Kind: KindI, Op: OpJALR, Rd: rd, Rs1: rs1, Imm: imm}, nil

	case 0x07: // float loads
		var op Op
		switch funct3 {
		case 0x1:
			op = OpFLH
		case 0x2:
			op = OpFLW
		case 0x3:
			op = OpFLD
		default:
			return Instruction{}, fmt.Errorf("decode32: unknown float load funct3 %#x", funct3)
		}
		imm := int32(inst) >> 20
		return Instruction{Kind: KindFL, Op: op, Rd: rd, Rs1: rs1, Imm: imm}, nil

	case 0x27: // float stores
		var op Op
		switch funct3 {
		case 0x1:
			op = OpFSH
		case 0x2:
			op = OpFSW
		case 0x3:
			op = OpFSD
		default:
			return Instruction{}, fmt.Errorf("decode32: unknown float store funct3 %#x", funct3)
		}
		immU := ((inst >> 20) & 0xfe0) | ((inst >> 7) & 0x1f)
		imm := signExtend(immU, 12)
		return Instruction{Kind: KindFS, Op: op, Rs1: rs1, Rs2: rs2, Imm: imm}, nil

	case 0x43, 0x47, 0x4b, 0x4f: // R4 FMA family
		rs3 := (inst >> 27) & 0x1f
		fmt_ := (inst >> 25) & 0x3
		if fmt_ != 0 {
			return Instruction{}, fmt.Errorf("decode32: only single-precision fmt supported")
		}
		rm := funct3
		var op Op
		switch opcode {
		case 0x43:
			op = OpFMADDS
		case 0x47:
			op = OpFMSUBS
		case 0x4b:
			op = OpFNMSUBS
		case 0x4f:
			op = OpFNMADDS
		}
		return Instruction{Kind: KindR4, Op: op, Rd: rd, Rs1: rs1, Rs2: rs2, Rs3: rs3, RM: rm}, nil

	case 0x53: // remaining float ops
		funct7 := (inst >> 25) & 0x7f
		rm := funct3
		switch funct7 {
		case 0x00:
			return Instruction{Kind: KindFR, Op: OpFADDS, Rd: rd, Rs1: rs1, Rs2: rs2, RM: rm}, nil
		case 0x04:
			return Instruction{Kind: KindFR, Op: OpFSUBS, Rd: rd, Rs1: rs1, Rs2: rs2, RM: rm}, nil
		case 0x08:
			return Instruction{Kind: KindFR, Op: OpFMULS, Rd: rd, Rs1: rs1, Rs2: rs2, RM: rm}, nil
		case 0x0c:
			return Instruction{Kind: KindFR, Op: OpFDIVS, Rd: rd, Rs1: rs1, Rs2: rs2, RM: rm}, nil
		case 0x10:
			var op Op
			switch rm {
			case 0x0:
				op = OpFSGNJS
			case 0x1:
				op = OpFSGNJNS
			case 0x2:
				op = OpFSGNJXS
			default:
				return Instruction{}, fmt.Errorf("decode32: unknown FSGNJ rm %#x", rm)
			}
			return Instruction{Kind: KindFR, Op: op, Rd: rd, Rs1: rs1, Rs2: rs2}, nil
		case 0x14:
			var op Op
			switch rm {
			case 0x0:
				op = OpFMINS
			case 0x1:
				op = OpFMAXS
			default:
				return Instruction{}, fmt.Errorf("decode32: unknown FMIN/FMAX rm %#x", rm)
			}
			return Instruction{Kind: KindFR, Op: op, Rd: rd, Rs1: rs1, Rs2: rs2}, nil
		case 0x2c:
			if rs2 != 0 {
				return Instruction{}, fmt.Errorf("decode32: FSQRT.S requires rs2==0")
			}
			return Instruction{Kind: KindFI, Op: OpFSQRTS, Rd: rd, Rs1: rs1, RM: rm}, nil
		case 0x50:
			var op Op
			switch rm {
			case 0x0:
				op = OpFLES
			case 0x1:
				op = OpFLTS
			case 0x2:
				op = OpFEQS
			default:
				return Instruction{}, fmt.Errorf("decode32: unknown FEQ/FLT/FLE rm %#x", rm)
			}
			return Instruction{Kind: KindFR, Op: op, Rd: rd, Rs1: rs1, Rs2: rs2}, nil
		case 0x60:
			var op Op
			switch rs2 {
			case 0x0:
				op = OpFCVTWS
			case 0x1:
				op = OpFCVTWUS
			default:
				return Instruction{}, fmt.Errorf("decode32: unknown FCVT.W.S rs2 %#x", rs2)
			}
			return Instruction{Kind: KindFI, Op: op, Rd: rd, Rs1: rs1, RM: rm}, nil
		case 0x68:
			var op Op
			switch rs2 {
			case 0x0:
				op = OpFCVTSW
			case 0x1:
				op = OpFCVTSWU
			default:
				return Instruction{}, fmt.Errorf("decode32: unknown FCVT.S.W rs2 %#x", rs2)
			}
			return Instruction{Kind: KindFI, Op: op, Rd: rd, Rs1: rs1, RM: rm}, nil
		case 0x70:
			var op Op
			switch rm {
			case 0x0:
				op = OpFMVXW
			case 0x1:
				op = OpFCLASSS
			default:
				return Instruction{}, fmt.Errorf("decode32: unknown FMV.X.W/FCLASS.S rm %#x", rm)
			}
			return Instruction{Kind: KindFI, Op: op, Rd: rd, Rs1: rs1}, nil
		case 0x78:
			return Instruction{Kind: KindFI, Op: OpFMVWX, Rd: rd, Rs1: rs1}, nil
		default:
			return Instruction{}, fmt.Errorf("decode32: unknown float funct7 %#x", funct7)
		}

	case 0x6f: // JAL
		immU := ((inst >> 11) & 0x100000) | (inst & 0xff000) | ((inst >> 9) & 0x800) | ((inst >> 20) & 0x7fe)
		imm := signExtend(immU, 21)
		return Instruction{Kind: KindJ, Op: OpJAL, Rd: rd, Imm: imm}, nil

	default:
		return Instruction{}, fmt.Errorf("decode32: unknown opcode %#x (inst %#08x)", opcode, inst)
	}
}
