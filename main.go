// main.go - entry point for the kart co-simulation core.

package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	configPath := flag.String("config", "session.yaml", "path to the session YAML config")
	trackPath := flag.String("track", "", "path to a track TOML file (overrides the config's track_path)")
	headlessTicks := flag.Int("headless", 0, "run N ticks non-interactively then exit, used by CI smoke checks")
	interactive := flag.Bool("interactive", false, "drain per-car console output to a terminal each tick")
	showVersion := flag.Bool("version", false, "print version and build info, then exit")
	elfPaths := flagMultiString("elf", "path to a guest ELF artifact to spawn (repeatable)")
	flag.Parse()

	if *showVersion {
		printFeatures()
		return
	}

	cfg := LoadSessionConfig(*configPath)
	if *trackPath != "" {
		cfg.TrackPath = *trackPath
	}

	logger := newRaceLogger()

	tf, err := LoadTrackFile(cfg.TrackPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kartsim: failed to load track: %v\n", err)
		os.Exit(1)
	}
	track := tf.BuildTrack(defaultBorderSamples)

	race := NewRaceManager(track, cfg, logger)

	telemetry := NewTelemetryServer(cfg.ListenAddr)
	telemetry.Run()

	for _, path := range *elfPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "kartsim: failed to read %s: %v\n", path, err)
			os.Exit(1)
		}
		if _, err := race.Spawn(data); err != nil {
			fmt.Fprintf(os.Stderr, "kartsim: failed to spawn %s: %v\n", path, err)
			os.Exit(1)
		}
	}

	if err := race.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "kartsim: %v\n", err)
		os.Exit(1)
	}

	var console *ConsoleHost
	if *interactive {
		console = NewConsoleHost()
	}

	if *headlessTicks > 0 {
		for i := 0; i < *headlessTicks; i++ {
			if err := race.RunTick(); err != nil {
				fmt.Fprintf(os.Stderr, "kartsim: tick error: %v\n", err)
				os.Exit(1)
			}
			if console != nil {
				console.DrainAndPrint(race.Cars())
			}
			telemetry.Broadcast(race)
		}
		printRaceSummary(race)
		return
	}

	for {
		if err := race.RunTick(); err != nil {
			fmt.Fprintf(os.Stderr, "kartsim: tick error: %v\n", err)
			os.Exit(1)
		}
		if console != nil {
			console.DrainAndPrint(race.Cars())
		}
		telemetry.Broadcast(race)
	}
}

func printRaceSummary(r *RaceManager) {
	for _, c := range r.Cars() {
		status := "running"
		if c.Halted {
			status = fmt.Sprintf("halted: %v", c.HaltErr)
		}
		fmt.Printf("%s: pos=(%.2f, %.2f) speed=%.2f m/s rpm=%.0f [%s]\n",
			c.Name, c.Car.Pos[0], c.Car.Pos[1], c.Car.Speed(), c.Car.EngineRPM, status)
	}
}

// multiFlag accumulates repeated -elf flags into a slice.
type multiFlag []string

func (m *multiFlag) String() string { return fmt.Sprint([]string(*m)) }
func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

func flagMultiString(name, usage string) *[]string {
	var vals multiFlag
	flag.Var(&vals, name, usage)
	return (*[]string)(&vals)
}
