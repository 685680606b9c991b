package main

// Hart is one RV32IMAFC interpreter core: 32 integer registers (x0 hardwired
// to zero), 32 single-precision float registers, a program counter, and a
// reference to the bus it executes against.
type Hart struct {
	X  [32]uint32
	F  [32]float32
	PC uint32

	bus *Bus

	// reservation backs LR.W/SC.W: a single global reservation per hart,
	// cleared by any store to the reserved word (uniprocessor contract).
	reservationValid bool
	reservationAddr  uint32

	Halted       bool
	HaltErr      error
	Breakpointed bool
}

// NewHart creates a hart bound to bus with PC at entry and SP (x2) set to
// DRAM_SIZE-8 so guest code that never sets its own stack pointer still has
// usable headroom.
func NewHart(bus *Bus, entry uint32) *Hart {
	h := &Hart{bus: bus, PC: entry}
	h.X[2] = bus.DramSize() - 8
	return h
}

// Reset clears registers, PC, fault state, and the LR/SC reservation; entry
// becomes the new PC and SP is re-seeded.
func (h *Hart) Reset(entry uint32) {
	h.X = [32]uint32{}
	h.F = [32]float32{}
	h.PC = entry
	h.X[2] = h.bus.DramSize() - 8
	h.reservationValid = false
	h.reservationAddr = 0
	h.Halted = false
	h.HaltErr = nil
	h.Breakpointed = false
}

// Step fetches, decodes, and executes exactly one instruction. x0 is
// rewritten to zero at the start of the step. On error the hart is marked
// halted and the error is returned; the caller decides whether to continue
// other harts.
func (h *Hart) Step() error {
	if h.Halted {
		return h.HaltErr
	}
	h.X[0] = 0

	low, err := h.bus.FetchHalf(h.PC)
	if err != nil {
		h.fail(err)
		return err
	}

	var in Instruction
	var length int
	word := uint32(low)
	if low&0x3 != 0x3 {
		in, err = decodeCompressed(low)
		length = 2
	} else {
		high, herr := h.bus.FetchHalf(h.PC + 2)
		if herr != nil {
			h.fail(herr)
			return herr
		}
		word = uint32(low) | uint32(high)<<16
		in, err = decode32(word)
		length = 4
	}
	if err != nil {
		ierr := &IllegalInstructionError{PC: h.PC, Word: word, Detail: err.Error()}
		h.fail(ierr)
		return ierr
	}

	// advancedPC is the fall-through PC; execute computes branch and jump
	// targets from the pre-advance PC directly, so nothing is subtracted.
	advancedPC := h.PC + uint32(length)
	execErr := h.execute(in, h.PC, advancedPC)
	h.X[0] = 0
	if execErr != nil {
		h.fail(execErr)
		return execErr
	}
	return nil
}

func (h *Hart) fail(err error) {
	h.Halted = true
	h.HaltErr = err
	if err == ErrBreakpointHit {
		h.Breakpointed = true
	}
}
