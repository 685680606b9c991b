package main

// execAtomic implements RV32A. On a uniprocessor core every AMO is a plain
// load->op->store; LR/SC form a single global reservation per hart (no
// other hart exists to contend for it), cleared by any store to the
// reserved word regardless of source.
func (h *Hart) execAtomic(in Instruction) error {
	addr := h.X[in.Rs1]

	if in.Op == OpLRW {
		v, err := h.bus.Load(addr, 4)
		if err != nil {
			return err
		}
		h.reservationValid = true
		h.reservationAddr = addr
		h.X[in.Rd] = v
		return nil
	}

	if in.Op == OpSCW {
		if h.reservationValid && h.reservationAddr == addr {
			if err := h.bus.Store(addr, 4, h.X[in.Rs2]); err != nil {
				return err
			}
			h.reservationValid = false
			h.X[in.Rd] = 0
			return nil
		}
		h.X[in.Rd] = 1
		return nil
	}

	old, err := h.bus.Load(addr, 4)
	if err != nil {
		return err
	}
	rs2 := h.X[in.Rs2]
	var result uint32
	switch in.Op {
	case OpAMOSWAPW:
		result = rs2
	case OpAMOADDW:
		result = old + rs2
	case OpAMOXORW:
		result = old ^ rs2
	case OpAMOANDW:
		result = old & rs2
	case OpAMOORW:
		result = old | rs2
	case OpAMOMINW:
		if int32(old) < int32(rs2) {
			result = old
		} else {
			result = rs2
		}
	case OpAMOMAXW:
		if int32(old) > int32(rs2) {
			result = old
		} else {
			result = rs2
		}
	case OpAMOMINUW:
		if old < rs2 {
			result = old
		} else {
			result = rs2
		}
	case OpAMOMAXUW:
		if old > rs2 {
			result = old
		} else {
			result = rs2
		}
	}
	if err := h.bus.Store(addr, 4, result); err != nil {
		return err
	}
	h.breakReservation(addr)
	h.X[in.Rd] = old
	return nil
}

// breakReservation clears the hart's LR/SC reservation if addr falls in the
// reserved word. Called after every store (including AMOs, plain SW/SH/SB
// and float stores) so SC.W correctly fails once the reserved word has been
// touched by any source.
func (h *Hart) breakReservation(addr uint32) {
	if h.reservationValid && addr&^3 == h.reservationAddr&^3 {
		h.reservationValid = false
	}
}
