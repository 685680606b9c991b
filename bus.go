// bus.go - Memory bus for the kart co-simulation core, generalized from the
// host's page-mapped MemoryBus/IORegion design to a fixed 6-slot MMIO layout.

package main

// Bus routes every load/store from a car's Hart to either its DRAM or one
// of the six fixed MMIO device slots. It never caches; it is a pure demux.
type Bus struct {
	dram    *Dram
	devices map[uint32]Device // keyed by slot base address
}

// NewBus builds a bus over the given dram with no devices attached; use
// AttachDevice to bind a device to one of the six fixed slots.
func NewBus(dram *Dram) *Bus {
	return &Bus{
		dram:    dram,
		devices: make(map[uint32]Device, 6),
	}
}

// AttachDevice binds dev to the given slot base address. Valid slots are
// SlotLog, SlotCarState, SlotCarControls, SlotSplineQuery, SlotTrackRadar,
// SlotCarRadar.
func (b *Bus) AttachDevice(slot uint32, dev Device) {
	b.devices[slot] = dev
}

// Load reads size bytes (1, 2, or 4) at addr, zero-extended to 32 bits.
// Sign extension for LB/LH is the Hart's responsibility, not the bus's.
func (b *Bus) Load(addr uint32, size uint8) (uint32, error) {
	if size != 1 && size != 2 && size != 4 {
		return 0, &BusFaultError{Addr: addr, Size: size, Op: "load"}
	}
	if !IsIOAddress(addr) {
		return b.loadDram(addr, size)
	}
	slot := SlotForAddress(addr)
	dev, ok := b.devices[slot]
	if !ok {
		return 0, &BusFaultError{Addr: addr, Size: size, Op: "load"}
	}
	return dev.Load(addr-slot, size), nil
}

// Store writes size bytes (1, 2, or 4) of value at addr.
func (b *Bus) Store(addr uint32, size uint8, value uint32) error {
	if size != 1 && size != 2 && size != 4 {
		return &BusFaultError{Addr: addr, Size: size, Op: "store"}
	}
	if !IsIOAddress(addr) {
		return b.storeDram(addr, size, value)
	}
	slot := SlotForAddress(addr)
	dev, ok := b.devices[slot]
	if !ok {
		return &BusFaultError{Addr: addr, Size: size, Op: "store"}
	}
	dev.Store(addr-slot, size, value)
	return nil
}

// FetchHalf fetches a 16-bit half-word for instruction fetch. Guest code is
// only ever fetched from DRAM.
func (b *Bus) FetchHalf(addr uint32) (uint16, error) {
	if IsIOAddress(addr) || addr+1 >= b.dram.Size() {
		return 0, &BusFaultError{Addr: addr, Size: 2, Op: "fetch"}
	}
	return uint16(b.dram.Load16(addr)), nil
}

// DramSize returns the capacity of the attached dram, used by the Hart to
// seed the initial stack pointer.
func (b *Bus) DramSize() uint32 { return b.dram.Size() }

func (b *Bus) loadDram(addr uint32, size uint8) (uint32, error) {
	end := addr + uint32(size)
	if end > b.dram.Size() || end < addr {
		return 0, &BusFaultError{Addr: addr, Size: size, Op: "load"}
	}
	switch size {
	case 1:
		return b.dram.Load8(addr), nil
	case 2:
		return b.dram.Load16(addr), nil
	default:
		return b.dram.Load32(addr), nil
	}
}

func (b *Bus) storeDram(addr uint32, size uint8, value uint32) error {
	end := addr + uint32(size)
	if end > b.dram.Size() || end < addr {
		return &BusFaultError{Addr: addr, Size: size, Op: "store"}
	}
	switch size {
	case 1:
		b.dram.Store8(addr, value)
	case 2:
		b.dram.Store16(addr, value)
	default:
		b.dram.Store32(addr, value)
	}
	return nil
}

// Reset zeroes DRAM and every attached device.
func (b *Bus) Reset() {
	b.dram.Reset()
	for _, dev := range b.devices {
		dev.Reset()
	}
}
