package main

import (
	"errors"
	"testing"
)

func TestBusRoutesDramLoadsAndStores(t *testing.T) {
	bus := NewBus(NewDram())
	if err := bus.Store(0x10, 4, 0xCAFEBABE); err != nil {
		t.Fatalf("store: %v", err)
	}
	got, err := bus.Load(0x10, 4)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != 0xCAFEBABE {
		t.Fatalf("got %#x, want %#x", got, 0xCAFEBABE)
	}
}

func TestBusDramStoreOutOfRangeFaults(t *testing.T) {
	bus := NewBus(NewDramSized(16))
	err := bus.Store(14, 4, 1)
	if err == nil {
		t.Fatalf("expected bus fault for out-of-range store")
	}
	if !errors.Is(err, ErrBusFault) {
		t.Fatalf("err = %v, want ErrBusFault", err)
	}
}

func TestBusRoutesToAttachedDevice(t *testing.T) {
	bus := NewBus(NewDram())
	log := NewLogDevice()
	bus.AttachDevice(SlotLog, log)
	if err := bus.Store(SlotLog, 1, 'z'); err != nil {
		t.Fatalf("store to device: %v", err)
	}
	if got := string(log.Drain()); got != "z" {
		t.Fatalf("got %q, want %q", got, "z")
	}
}

func TestBusUnattachedSlotFaults(t *testing.T) {
	bus := NewBus(NewDram())
	_, err := bus.Load(SlotCarState, 4)
	if !errors.Is(err, ErrBusFault) {
		t.Fatalf("err = %v, want ErrBusFault for unattached slot", err)
	}
}

func TestBusFetchHalfRejectsIOAddresses(t *testing.T) {
	bus := NewBus(NewDram())
	_, err := bus.FetchHalf(SlotLog)
	if !errors.Is(err, ErrBusFault) {
		t.Fatalf("err = %v, want ErrBusFault fetching from IO space", err)
	}
}

func TestBusResetClearsDramAndDevices(t *testing.T) {
	bus := NewBus(NewDram())
	log := NewLogDevice()
	bus.AttachDevice(SlotLog, log)
	bus.Store(0, 4, 0x11223344)
	bus.Store(SlotLog, 1, 'a')
	bus.Reset()
	if len(log.Drain()) != 0 {
		t.Fatalf("device not reset")
	}
	got, _ := bus.Load(0, 4)
	if got != 0 {
		t.Fatalf("dram not reset: got %#x", got)
	}
}

func TestDramSizeConfigurable(t *testing.T) {
	d := NewDramSized(128)
	if d.Size() != 128 {
		t.Fatalf("size = %d, want 128", d.Size())
	}
	bus := NewBus(d)
	if bus.DramSize() != 128 {
		t.Fatalf("bus.DramSize() = %d, want 128", bus.DramSize())
	}
}

func TestDramSizeDefaultsTo65536(t *testing.T) {
	d := NewDram()
	if d.Size() != 65536 {
		t.Fatalf("default dram size = %d, want 65536", d.Size())
	}
}

// TestBusRoutesHighDramAddressesPastIOWindow guards against the initial
// stack pointer (DramSize()-8) being misclassified as an IO address: every
// address at or above IOTop must fall through to DRAM.
func TestBusRoutesHighDramAddressesPastIOWindow(t *testing.T) {
	d := NewDramSized(65536)
	bus := NewBus(d)
	sp := d.Size() - 8
	if err := bus.Store(sp, 4, 0xDEADBEEF); err != nil {
		t.Fatalf("store near top of dram: %v", err)
	}
	got, err := bus.Load(sp, 4)
	if err != nil {
		t.Fatalf("load near top of dram: %v", err)
	}
	if got != 0xDEADBEEF {
		t.Fatalf("got %#x, want %#x", got, 0xDEADBEEF)
	}
	if _, err := bus.FetchHalf(IOTop); err != nil {
		t.Fatalf("fetch at IOTop: %v", err)
	}
}

func TestIsIOAddressBoundedAboveIOTop(t *testing.T) {
	if IsIOAddress(IOTop) {
		t.Fatalf("IsIOAddress(IOTop) = true, want false (DRAM resumes at IOTop)")
	}
	if !IsIOAddress(IOBase) {
		t.Fatalf("IsIOAddress(IOBase) = false, want true")
	}
	if IsIOAddress(DRAMSize - 8) {
		t.Fatalf("IsIOAddress(DRAMSize-8) = true, want false")
	}
}
