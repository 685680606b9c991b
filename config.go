package main

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// SessionConfig holds the settings loaded once at process startup: tick
// rate, default CPU frequency preset, DRAM size, track path, and the
// optional telemetry listen address.
type SessionConfig struct {
	TickHz        int    `yaml:"tick_hz"`
	CPUFreqHz     int    `yaml:"cpu_freq_hz"`
	DRAMSize      int    `yaml:"dram_size"`
	TrackPath     string `yaml:"track_path"`
	ListenAddr    string `yaml:"listen_addr"`
	BaseDir       string `yaml:"base_dir"`

	path string
}

// DefaultSessionConfig returns a config with the defaults named in the
// memory-map and tick-rate sections: 200 Hz tick, 1 kHz CPU preset, 64 KiB
// DRAM per car.
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		TickHz:     200,
		CPUFreqHz:  1000,
		DRAMSize:   65536,
		TrackPath:  "tracks/default.toml",
		ListenAddr: "",
		BaseDir:    ".",
	}
}

// LoadSessionConfig reads config from a YAML file, falling back to
// defaults when the file is missing or unparsable, then applies
// environment-variable overrides for the deployment-sensitive fields.
func LoadSessionConfig(path string) *SessionConfig {
	cfg := DefaultSessionConfig()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[config] no session config at %s, using defaults", path)
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		log.Printf("[config] error parsing %s: %v, using defaults", path, err)
		cfg = DefaultSessionConfig()
		cfg.path = path
	} else {
		log.Printf("[config] loaded session config from %s", path)
	}

	cfg.applyEnvOverrides()
	return cfg
}

// applyEnvOverrides reads a short fixed list of env vars and overrides the
// matching config field: KARTSIM_LISTEN_ADDR, KARTSIM_TRACK_PATH,
// KARTSIM_TICK_HZ, KARTSIM_CPU_FREQ_HZ, KARTSIM_DRAM_SIZE.
func (c *SessionConfig) applyEnvOverrides() {
	if v := os.Getenv("KARTSIM_LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("KARTSIM_TRACK_PATH"); v != "" {
		c.TrackPath = v
	}
	if v := os.Getenv("KARTSIM_TICK_HZ"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.TickHz = n
		}
	}
	if v := os.Getenv("KARTSIM_CPU_FREQ_HZ"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.CPUFreqHz = n
		}
	}
	if v := os.Getenv("KARTSIM_DRAM_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.DRAMSize = n
		}
	}
}

// cpuFreqPresets is the small preset ladder session config values are
// snapped to; instructions-per-tick derives from whichever preset is
// active.
var cpuFreqPresets = []int{1_000, 5_000, 10_000, 20_000, 50_000, 100_000, 200_000, 500_000, 1_000_000, 2_000_000}

// nearestCPUFreqPreset snaps hz to the closest entry in cpuFreqPresets.
// Ties round down to the lower preset.
func nearestCPUFreqPreset(hz int) int {
	best := cpuFreqPresets[0]
	bestDist := abs(hz - best)
	for _, p := range cpuFreqPresets[1:] {
		if d := abs(hz - p); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// InstructionsPerTick returns max(1, preset_hz/tick_hz), where preset_hz is
// CPUFreqHz snapped to the nearest entry in cpuFreqPresets.
func (c *SessionConfig) InstructionsPerTick() int {
	ipt := nearestCPUFreqPreset(c.CPUFreqHz) / c.TickHz
	if ipt < 1 {
		ipt = 1
	}
	return ipt
}

// Save writes the config back out as YAML.
func (c *SessionConfig) Save() error {
	if c.path == "" {
		c.path = "session.yaml"
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0644)
}
