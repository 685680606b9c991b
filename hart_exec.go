package main

// execute dispatches a decoded instruction. curPC is the instruction's own
// address (pre-advance); advancedPC is curPC plus the instruction's length
// and becomes the next PC unless the instruction redirects control flow.
func (h *Hart) execute(in Instruction, curPC, advancedPC uint32) error {
	nextPC := advancedPC

	switch in.Kind {
	case KindR:
		h.execR(in)
	case KindM:
		if err := h.execM(in); err != nil {
			return err
		}
	case KindI:
		switch in.Op {
		case OpJALR:
			target := (uint32(int32(h.X[in.Rs1])+in.Imm)) &^ 1
			h.X[in.Rd] = advancedPC
			nextPC = target
		default:
			if err := h.execI(in); err != nil {
				return err
			}
		}
	case KindS:
		if err := h.execS(in); err != nil {
			return err
		}
	case KindB:
		if h.evalBranch(in) {
			nextPC = uint32(int32(curPC) + in.Imm)
		}
	case KindU:
		switch in.Op {
		case OpLUI:
			h.X[in.Rd] = uint32(in.Imm)
		case OpAUIPC:
			h.X[in.Rd] = curPC + uint32(in.Imm)
		}
	case KindJ:
		h.X[in.Rd] = advancedPC
		nextPC = uint32(int32(curPC) + in.Imm)
	case KindA:
		if err := h.execAtomic(in); err != nil {
			return err
		}
	case KindR4, KindFR, KindFI, KindFL, KindFS:
		if err := h.execFloat(in); err != nil {
			return err
		}
	case KindFence:
		// FENCE/FENCE.I: no-op for the single-hart in-order interpreter.
	case KindEbreak:
		return ErrBreakpointHit
	}

	h.PC = nextPC
	return nil
}

func (h *Hart) execR(in Instruction) {
	rs1, rs2 := h.X[in.Rs1], h.X[in.Rs2]
	var result uint32
	switch in.Op {
	case OpADD:
		result = rs1 + rs2
	case OpSUB:
		result = rs1 - rs2
	case OpSLL:
		result = rs1 << (rs2 & 0x1f)
	case OpSLT:
		result = boolToWord(int32(rs1) < int32(rs2))
	case OpSLTU:
		result = boolToWord(rs1 < rs2)
	case OpXOR:
		result = rs1 ^ rs2
	case OpSRL:
		result = rs1 >> (rs2 & 0x1f)
	case OpSRA:
		result = uint32(int32(rs1) >> (rs2 & 0x1f))
	case OpOR:
		result = rs1 | rs2
	case OpAND:
		result = rs1 & rs2
	}
	h.X[in.Rd] = result
}

func (h *Hart) execM(in Instruction) error {
	rs1, rs2 := h.X[in.Rs1], h.X[in.Rs2]
	var result uint32
	switch in.Op {
	case OpMUL:
		result = rs1 * rs2
	case OpMULH:
		result = uint32(mulhSigned(int32(rs1), int32(rs2)))
	case OpMULHSU:
		result = uint32(mulhSignedUnsigned(int32(rs1), rs2))
	case OpMULHU:
		result = uint32((uint64(rs1) * uint64(rs2)) >> 32)
	case OpDIV:
		if rs2 == 0 {
			result = 0xFFFFFFFF
		} else if int32(rs1) == -2147483648 && int32(rs2) == -1 {
			result = rs1 // overflow: result wraps to dividend per two's complement
		} else {
			result = uint32(int32(rs1) / int32(rs2))
		}
	case OpDIVU:
		if rs2 == 0 {
			result = 0xFFFFFFFF
		} else {
			result = rs1 / rs2
		}
	case OpREM:
		if rs2 == 0 {
			result = rs1
		} else if int32(rs1) == -2147483648 && int32(rs2) == -1 {
			result = 0
		} else {
			result = uint32(int32(rs1) % int32(rs2))
		}
	case OpREMU:
		if rs2 == 0 {
			result = rs1
		} else {
			result = rs1 % rs2
		}
	}
	h.X[in.Rd] = result
	return nil
}

func mulhSigned(a, b int32) int32 {
	full := int64(a) * int64(b)
	return int32(full >> 32)
}

func mulhSignedUnsigned(a int32, b uint32) int32 {
	full := int64(a) * int64(int64(b))
	return int32(full >> 32)
}

func (h *Hart) execI(in Instruction) error {
	rs1 := h.X[in.Rs1]
	switch in.Op {
	case OpLB:
		v, err := h.bus.Load(rs1+uint32(in.Imm), 1)
		if err != nil {
			return err
		}
		h.X[in.Rd] = uint32(int32(int8(v)))
	case OpLH:
		v, err := h.bus.Load(rs1+uint32(in.Imm), 2)
		if err != nil {
			return err
		}
		h.X[in.Rd] = uint32(int32(int16(v)))
	case OpLW:
		v, err := h.bus.Load(rs1+uint32(in.Imm), 4)
		if err != nil {
			return err
		}
		h.X[in.Rd] = v
	case OpLBU:
		v, err := h.bus.Load(rs1+uint32(in.Imm), 1)
		if err != nil {
			return err
		}
		h.X[in.Rd] = v
	case OpLHU:
		v, err := h.bus.Load(rs1+uint32(in.Imm), 2)
		if err != nil {
			return err
		}
		h.X[in.Rd] = v
	case OpADDI:
		h.X[in.Rd] = uint32(int32(rs1) + in.Imm)
	case OpSLTI:
		h.X[in.Rd] = boolToWord(int32(rs1) < in.Imm)
	case OpSLTIU:
		h.X[in.Rd] = boolToWord(rs1 < uint32(in.Imm))
	case OpXORI:
		h.X[in.Rd] = rs1 ^ uint32(in.Imm)
	case OpORI:
		h.X[in.Rd] = rs1 | uint32(in.Imm)
	case OpANDI:
		h.X[in.Rd] = rs1 & uint32(in.Imm)
	case OpSLLI:
		h.X[in.Rd] = rs1 << (uint32(in.Imm) & 0x1f)
	case OpSRLI:
		h.X[in.Rd] = rs1 >> (uint32(in.Imm) & 0x1f)
	case OpSRAI:
		h.X[in.Rd] = uint32(int32(rs1) >> (uint32(in.Imm) & 0x1f))
	}
	return nil
}

func (h *Hart) execS(in Instruction) error {
	addr := h.X[in.Rs1] + uint32(in.Imm)
	val := h.X[in.Rs2]
	var err error
	switch in.Op {
	case OpSB:
		err = h.bus.Store(addr, 1, val)
	case OpSH:
		err = h.bus.Store(addr, 2, val)
	case OpSW:
		err = h.bus.Store(addr, 4, val)
	}
	h.breakReservation(addr)
	return err
}

func (h *Hart) evalBranch(in Instruction) bool {
	rs1, rs2 := h.X[in.Rs1], h.X[in.Rs2]
	switch in.Op {
	case OpBEQ:
		return rs1 == rs2
	case OpBNE:
		return rs1 != rs2
	case OpBLT:
		return int32(rs1) < int32(rs2)
	case OpBGE:
		return int32(rs1) >= int32(rs2)
	case OpBLTU:
		return rs1 < rs2
	case OpBGEU:
		return rs1 >= rs2
	}
	return false
}

func boolToWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
