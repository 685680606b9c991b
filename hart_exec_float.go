package main

import "math"

// execFloat implements RV32F. Only round-to-nearest-even is honoured; the
// decoded RM field is otherwise ignored, matching Go's native float32
// arithmetic and math.Sqrt rounding. Conversions clamp to the i32 range.
func (h *Hart) execFloat(in Instruction) error {
	switch in.Kind {
	case KindFL:
		return h.execFLoad(in)
	case KindFS:
		return h.execFStore(in)
	case KindR4:
		h.execFMA(in)
		return nil
	case KindFR:
		h.execFR(in)
		return nil
	case KindFI:
		h.execFI(in)
		return nil
	}
	return nil
}

func (h *Hart) execFLoad(in Instruction) error {
	addr := h.X[in.Rs1] + uint32(in.Imm)
	switch in.Op {
	case OpFLW:
		v, err := h.bus.Load(addr, 4)
		if err != nil {
			return err
		}
		h.F[in.Rd] = bitsToFloat32(v)
	case OpFLH:
		v, err := h.bus.Load(addr, 2)
		if err != nil {
			return err
		}
		h.F[in.Rd] = bitsToFloat32(v)
	case OpFLD:
		v, err := h.bus.Load(addr, 4)
		if err != nil {
			return err
		}
		h.F[in.Rd] = bitsToFloat32(v)
	}
	return nil
}

func (h *Hart) execFStore(in Instruction) error {
	addr := h.X[in.Rs1] + uint32(in.Imm)
	bits := float32ToBits(h.F[in.Rs2])
	h.breakReservation(addr)
	switch in.Op {
	case OpFSW, OpFSD:
		return h.bus.Store(addr, 4, bits)
	case OpFSH:
		return h.bus.Store(addr, 2, bits)
	}
	return nil
}

func (h *Hart) execFMA(in Instruction) {
	a, b, c := h.F[in.Rs1], h.F[in.Rs2], h.F[in.Rs3]
	var result float32
	switch in.Op {
	case OpFMADDS:
		result = a*b + c
	case OpFMSUBS:
		result = a*b - c
	case OpFNMSUBS:
		result = -(a*b - c)
	case OpFNMADDS:
		result = -(a*b + c)
	}
	h.F[in.Rd] = result
}

func (h *Hart) execFR(in Instruction) {
	a, b := h.F[in.Rs1], h.F[in.Rs2]
	switch in.Op {
	case OpFADDS:
		h.F[in.Rd] = a + b
	case OpFSUBS:
		h.F[in.Rd] = a - b
	case OpFMULS:
		h.F[in.Rd] = a * b
	case OpFDIVS:
		h.F[in.Rd] = a / b
	case OpFSGNJS:
		h.F[in.Rd] = sgnj(a, b, false, false)
	case OpFSGNJNS:
		h.F[in.Rd] = sgnj(a, b, true, false)
	case OpFSGNJXS:
		h.F[in.Rd] = sgnj(a, b, false, true)
	case OpFMINS:
		h.F[in.Rd] = fmin(a, b)
	case OpFMAXS:
		h.F[in.Rd] = fmax(a, b)
	case OpFEQS:
		h.X[in.Rd] = boolToWord(a == b)
	case OpFLTS:
		h.X[in.Rd] = boolToWord(a < b)
	case OpFLES:
		h.X[in.Rd] = boolToWord(a <= b)
	}
}

func (h *Hart) execFI(in Instruction) {
	a := h.F[in.Rs1]
	switch in.Op {
	case OpFSQRTS:
		h.F[in.Rd] = float32(math.Sqrt(float64(a)))
	case OpFCVTWS:
		h.X[in.Rd] = uint32(clampToInt32(a))
	case OpFCVTWUS:
		h.X[in.Rd] = clampToUint32(a)
	case OpFMVXW:
		h.X[in.Rd] = float32ToBits(a)
	case OpFCLASSS:
		h.X[in.Rd] = fclass(a)
	case OpFCVTSW:
		h.F[in.Rd] = float32(int32(h.X[in.Rs1]))
	case OpFCVTSWU:
		h.F[in.Rd] = float32(h.X[in.Rs1])
	case OpFMVWX:
		h.F[in.Rd] = bitsToFloat32(h.X[in.Rs1])
	}
}

func sgnj(a, b float32, negate, xor bool) float32 {
	aBits := float32ToBits(a)
	bBits := float32ToBits(b)
	sign := bBits & 0x80000000
	if negate {
		sign ^= 0x80000000
	}
	if xor {
		sign = (aBits ^ bBits) & 0x80000000
	}
	return bitsToFloat32((aBits &^ 0x80000000) | sign)
}

func fmin(a, b float32) float32 {
	if math.IsNaN(float64(a)) {
		return b
	}
	if math.IsNaN(float64(b)) {
		return a
	}
	if a < b {
		return a
	}
	return b
}

func fmax(a, b float32) float32 {
	if math.IsNaN(float64(a)) {
		return b
	}
	if math.IsNaN(float64(b)) {
		return a
	}
	if a > b {
		return a
	}
	return b
}

func clampToInt32(f float32) int32 {
	if math.IsNaN(float64(f)) {
		return math.MaxInt32
	}
	if f >= math.MaxInt32 {
		return math.MaxInt32
	}
	if f <= math.MinInt32 {
		return math.MinInt32
	}
	return int32(f)
}

func clampToUint32(f float32) uint32 {
	if math.IsNaN(float64(f)) || f < 0 {
		return 0
	}
	if f >= math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(f)
}

func fclass(f float32) uint32 {
	bits := float32ToBits(f)
	sign := bits>>31 != 0
	exp := (bits >> 23) & 0xff
	mantissa := bits & 0x7fffff

	switch {
	case exp == 0xff && mantissa != 0:
		if bits&0x400000 != 0 {
			return 1 << 9 // quiet NaN
		}
		return 1 << 8 // signalling NaN
	case exp == 0xff:
		if sign {
			return 1 << 0 // -inf
		}
		return 1 << 7 // +inf
	case exp == 0 && mantissa == 0:
		if sign {
			return 1 << 3 // -0
		}
		return 1 << 4 // +0
	case exp == 0:
		if sign {
			return 1 << 2 // negative subnormal
		}
		return 1 << 5 // positive subnormal
	default:
		if sign {
			return 1 << 1 // negative normal
		}
		return 1 << 6 // positive normal
	}
}
