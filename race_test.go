package main

import (
	"errors"
	"testing"
)

func testTrack() *Track {
	spline := squareSpline()
	return BuildTrack(spline, 4.0, 0.5, 100)
}

func testRaceManager() *RaceManager {
	cfg := DefaultSessionConfig()
	return NewRaceManager(testTrack(), cfg, newRaceLogger())
}

// nopELF is a minimal image holding a single nop word; enough for
// Dram.LoadELF to accept, since Spawn never executes it in these tests.
func nopELF() []byte {
	return buildMinimalELF32([]byte{0x13, 0x00, 0x00, 0x00}, 0, 0) // addi x0, x0, 0
}

func TestRaceManagerStartsInPreRace(t *testing.T) {
	r := testRaceManager()
	if r.State() != PreRace {
		t.Fatalf("state = %v, want PreRace", r.State())
	}
}

func TestRaceManagerStateTransitions(t *testing.T) {
	r := testRaceManager()
	if err := r.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if r.State() != Racing {
		t.Fatalf("state = %v, want Racing", r.State())
	}
	if err := r.Pause(); err != nil {
		t.Fatalf("Pause: %v", err)
	}
	if r.State() != Paused {
		t.Fatalf("state = %v, want Paused", r.State())
	}
	if err := r.Resume(); err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if r.State() != Racing {
		t.Fatalf("state = %v, want Racing", r.State())
	}
}

func TestRaceManagerRejectsInvalidTransitions(t *testing.T) {
	r := testRaceManager()
	if err := r.Pause(); err == nil {
		t.Fatalf("expected error pausing from PreRace")
	}
	if err := r.Resume(); err == nil {
		t.Fatalf("expected error resuming from PreRace")
	}
	r.Start()
	if err := r.Start(); err == nil {
		t.Fatalf("expected error starting an already-Racing race")
	}
}

func TestRaceManagerSpawnOnlyAllowedInPreRace(t *testing.T) {
	r := testRaceManager()
	r.Start()
	if _, err := r.Spawn(nopELF()); err == nil {
		t.Fatalf("expected error spawning outside PreRace")
	}
}

func TestRaceManagerSpawnAssignsSequentialNamesAndGridOffsets(t *testing.T) {
	r := testRaceManager()
	c0, err := r.Spawn(nopELF())
	if err != nil {
		t.Fatalf("spawn 0: %v", err)
	}
	c1, err := r.Spawn(nopELF())
	if err != nil {
		t.Fatalf("spawn 1: %v", err)
	}
	if c0.Name != "car-0" || c1.Name != "car-1" {
		t.Fatalf("names = %q, %q, want car-0, car-1", c0.Name, c1.Name)
	}
	if c0.Car.Pos == c1.Car.Pos {
		t.Fatalf("grid positions must differ: both at %v", c0.Car.Pos)
	}
}

func TestRaceManagerRemoveUnknownCarErrors(t *testing.T) {
	r := testRaceManager()
	if err := r.Remove("car-0"); err == nil {
		t.Fatalf("expected error removing a car that was never spawned")
	}
}

func TestRaceManagerResetDespawnsAndReturnsToPreRace(t *testing.T) {
	r := testRaceManager()
	r.Spawn(nopELF())
	r.Start()
	r.Reset()
	if r.State() != PreRace {
		t.Fatalf("state = %v, want PreRace after Reset", r.State())
	}
	if len(r.Cars()) != 0 {
		t.Fatalf("cars = %d, want 0 after Reset", len(r.Cars()))
	}
}

func TestRaceManagerSpawnRejectsMalformedELF(t *testing.T) {
	r := testRaceManager()
	_, err := r.Spawn([]byte{0x00, 0x01, 0x02})
	if err == nil {
		t.Fatalf("expected error spawning a malformed image")
	}
	if !errors.Is(err, ErrMalformedElf) {
		t.Fatalf("err = %v, want errors.Is(err, ErrMalformedElf)", err)
	}
}
