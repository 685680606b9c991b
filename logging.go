package main

import (
	"log/slog"
	"os"
)

// raceLogger is a thin wrapper around the standard library's structured
// logger, used for per-car CPU faults, spawn/despawn events, and race
// state transitions.
type raceLogger struct {
	*slog.Logger
}

// newRaceLogger builds a logger that writes timestamped text lines to
// stderr, matching the plain diagnostic style used elsewhere in this host.
func newRaceLogger() *raceLogger {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	return &raceLogger{Logger: slog.New(h)}
}

func (l *raceLogger) carFault(car string, err error) {
	l.Error("car CPU fault", "car", car, "err", err)
}

func (l *raceLogger) carSpawned(car string) {
	l.Info("car spawned", "car", car)
}

func (l *raceLogger) carDespawned(car string) {
	l.Info("car despawned", "car", car)
}

func (l *raceLogger) stateTransition(from, to string) {
	l.Info("race state transition", "from", from, "to", to)
}
