package main

import (
	"fmt"
	"math"
)

// RaceState is the orchestrator's top-level state machine.
type RaceState int

const (
	PreRace RaceState = iota
	Racing
	Paused
)

func (s RaceState) String() string {
	switch s {
	case PreRace:
		return "PreRace"
	case Racing:
		return "Racing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

const gridLateralSpacing = 2.0

// CarEntry bundles one car's guest CPU, devices, and physics state. An
// entity handle (the slice index at spawn time) plus display name identify
// it for the lifetime of the race.
type CarEntry struct {
	Name string

	Dram *Dram
	Bus  *Bus
	Hart *Hart

	Log        *LogDevice
	State      *CarStateDevice
	Controls   *CarControlsDevice
	Spline     *SplineQueryDevice
	TrackRadar *TrackRadarDevice
	CarRadar   *CarRadarDevice

	Car *Car

	Halted  bool
	HaltErr error
}

// RaceManager owns the ordered list of cars, the shared track geometry,
// and the race state machine. Cars may only be added or removed in
// PreRace.
type RaceManager struct {
	state  RaceState
	cars   []*CarEntry
	nextID int

	track  *Track
	config *SessionConfig
	logger *raceLogger
}

// NewRaceManager creates an orchestrator bound to a track and session
// config, starting in PreRace.
func NewRaceManager(track *Track, cfg *SessionConfig, logger *raceLogger) *RaceManager {
	return &RaceManager{
		state:  PreRace,
		track:  track,
		config: cfg,
		logger: logger,
	}
}

func (r *RaceManager) State() RaceState { return r.state }

// Start transitions PreRace -> Racing.
func (r *RaceManager) Start() error {
	if r.state != PreRace {
		return fmt.Errorf("race: cannot Start from %s", r.state)
	}
	r.transition(Racing)
	return nil
}

// Pause transitions Racing -> Paused.
func (r *RaceManager) Pause() error {
	if r.state != Racing {
		return fmt.Errorf("race: cannot Pause from %s", r.state)
	}
	r.transition(Paused)
	return nil
}

// Resume transitions Paused -> Racing.
func (r *RaceManager) Resume() error {
	if r.state != Paused {
		return fmt.Errorf("race: cannot Resume from %s", r.state)
	}
	r.transition(Racing)
	return nil
}

// Reset returns to PreRace and despawns every car.
func (r *RaceManager) Reset() {
	for _, c := range r.cars {
		r.logger.carDespawned(c.Name)
	}
	r.cars = nil
	r.transition(PreRace)
}

func (r *RaceManager) transition(to RaceState) {
	r.logger.stateTransition(r.state.String(), to.String())
	r.state = to
}

// Spawn loads the given ELF artifact and adds a new car at the track's
// first control point plus a grid offset: each row sits 4 units further
// back along the centreline tangent at t=0, and the column alternates +-2
// lateral units.
func (r *RaceManager) Spawn(elf []byte) (*CarEntry, error) {
	if r.state != PreRace {
		return nil, fmt.Errorf("race: cars may only be spawned in PreRace")
	}

	dramSize := r.config.DRAMSize
	if dramSize <= 0 {
		dramSize = DRAMSize
	}
	dram := NewDramSized(dramSize)
	entry, err := dram.LoadELF(elf)
	if err != nil {
		return nil, fmt.Errorf("race: spawn failed: %w", err)
	}

	bus := NewBus(dram)
	logDev := NewLogDevice()
	stateDev := NewCarStateDevice()
	controlsDev := NewCarControlsDevice()
	splineDev := NewSplineQueryDevice(r.track.Spline)
	trackRadarDev := NewTrackRadarDevice()
	carRadarDev := NewCarRadarDevice()

	bus.AttachDevice(SlotLog, logDev)
	bus.AttachDevice(SlotCarState, stateDev)
	bus.AttachDevice(SlotCarControls, controlsDev)
	bus.AttachDevice(SlotSplineQuery, splineDev)
	bus.AttachDevice(SlotTrackRadar, trackRadarDev)
	bus.AttachDevice(SlotCarRadar, carRadarDev)

	hart := NewHart(bus, entry)

	row := len(r.cars) / 2
	col := 1.0
	if len(r.cars)%2 == 1 {
		col = -1.0
	}

	origin := r.track.Spline.points[0]
	tx, ty := r.track.Spline.Tangent(0)
	tlen := math.Hypot(tx, ty)
	if tlen < 1e-9 {
		tlen = 1
	}
	tx, ty = tx/tlen, ty/tlen
	nx, ny := -ty, tx

	pos := [2]float64{
		origin[0] - tx*float64(row)*4 + nx*col*gridLateralSpacing,
		origin[1] - ty*float64(row)*4 + ny*col*gridLateralSpacing,
	}
	angle := math.Atan2(ty, tx)

	name := fmt.Sprintf("car-%d", r.nextID)
	r.nextID++

	car := &CarEntry{
		Name:       name,
		Dram:       dram,
		Bus:        bus,
		Hart:       hart,
		Log:        logDev,
		State:      stateDev,
		Controls:   controlsDev,
		Spline:     splineDev,
		TrackRadar: trackRadarDev,
		CarRadar:   carRadarDev,
		Car:        NewCar(name, pos, angle),
	}

	r.cars = append(r.cars, car)
	r.logger.carSpawned(name)
	return car, nil
}

// Remove despawns a car by name. Only valid in PreRace.
func (r *RaceManager) Remove(name string) error {
	if r.state != PreRace {
		return fmt.Errorf("race: cars may only be removed in PreRace")
	}
	for i, c := range r.cars {
		if c.Name == name {
			r.cars = append(r.cars[:i], r.cars[i+1:]...)
			r.logger.carDespawned(name)
			return nil
		}
	}
	return fmt.Errorf("race: no car named %q", name)
}

// Cars returns the ordered list of car entries, insertion order preserved.
func (r *RaceManager) Cars() []*CarEntry { return r.cars }

// Track returns the shared track geometry.
func (r *RaceManager) Track() *Track { return r.track }
