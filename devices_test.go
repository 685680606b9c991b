package main

import "testing"

func TestLogDeviceAccumulatesAndDrains(t *testing.T) {
	d := NewLogDevice()
	d.Store(0, 1, 'h')
	d.Store(0, 1, 'i')
	if got := string(d.Drain()); got != "hi" {
		t.Fatalf("drain = %q, want %q", got, "hi")
	}
	if got := d.Drain(); len(got) != 0 {
		t.Fatalf("second drain = %q, want empty", got)
	}
}

func TestLogDeviceStoreKeepsLowByteOnWiderWrite(t *testing.T) {
	d := NewLogDevice()
	d.Store(0, 4, 0xDEADBE41) // low byte 'A'
	if got := string(d.Drain()); got != "A" {
		t.Fatalf("drain = %q, want %q", got, "A")
	}
}

func TestLogDeviceLoadIsAlwaysZero(t *testing.T) {
	d := NewLogDevice()
	d.Store(0, 1, 'x')
	if got := d.Load(0, 4); got != 0 {
		t.Fatalf("load = %d, want 0", got)
	}
}

func TestCarStateDeviceRoundTripsFloats(t *testing.T) {
	d := NewCarStateDevice()
	d.Update(12.5, 1.0, -2.0, 1.0, 0.0)
	if got := bitsToFloat32(d.Load(CarStateSpeed, 4)); got != 12.5 {
		t.Fatalf("speed = %v, want 12.5", got)
	}
	if got := bitsToFloat32(d.Load(CarStatePosY, 4)); got != -2.0 {
		t.Fatalf("posY = %v, want -2.0", got)
	}
}

func TestCarStateDeviceTargetDefaultsToZero(t *testing.T) {
	d := NewCarStateDevice()
	d.Update(0, 0, 0, 1, 0)
	if got := bitsToFloat32(d.Load(CarStateTargetX, 4)); got != 0 {
		t.Fatalf("targetX = %v, want 0 before SetTarget", got)
	}
	d.SetTarget(3.5, -1.5)
	if got := bitsToFloat32(d.Load(CarStateTargetX, 4)); got != 3.5 {
		t.Fatalf("targetX = %v, want 3.5", got)
	}
}

func TestCarStateDeviceStoreIsNoOp(t *testing.T) {
	d := NewCarStateDevice()
	d.Update(1, 2, 3, 4, 5)
	d.Store(CarStateSpeed, 4, float32ToBits(99))
	if got := bitsToFloat32(d.Load(CarStateSpeed, 4)); got != 1 {
		t.Fatalf("speed = %v, want unchanged 1 (guest writes ignored)", got)
	}
}

func TestCarControlsDeviceGuestWriteIsReadable(t *testing.T) {
	d := NewCarControlsDevice()
	d.Store(CarControlsAccelerator, 4, float32ToBits(0.75))
	d.Store(CarControlsSteering, 4, float32ToBits(-0.1))
	if got := d.Accelerator(); got != 0.75 {
		t.Fatalf("accelerator = %v, want 0.75", got)
	}
	if got := d.Steering(); got != -0.1 {
		t.Fatalf("steering = %v, want -0.1", got)
	}
}

func TestCarControlsDeviceRejectsNarrowWrites(t *testing.T) {
	d := NewCarControlsDevice()
	d.Store(CarControlsBrake, 4, float32ToBits(0.5))
	d.Store(CarControlsBrake, 1, 0xFF) // narrow write must be dropped
	if got := d.Brake(); got != 0.5 {
		t.Fatalf("brake = %v, want unchanged 0.5 after rejected narrow write", got)
	}
}

func TestCarControlsDeviceReset(t *testing.T) {
	d := NewCarControlsDevice()
	d.Store(CarControlsAccelerator, 4, float32ToBits(1.0))
	d.Reset()
	if got := d.Accelerator(); got != 0 {
		t.Fatalf("accelerator = %v, want 0 after Reset", got)
	}
}
