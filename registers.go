// registers.go - MMIO address map for the kart co-simulation bus

// License: GPLv3 or later

/*
registers.go documents the fixed MMIO slot layout shared by every car's bus.

MEMORY MAP OVERVIEW

	[0x00000000, IOBase)     DRAM, little-endian, default 65536 bytes
	0x00000100               Slot 1: Log          (write-only console stream)
	0x00000200..0x0000021B   Slot 2: CarState     (host -> guest sensors)
	0x00000300..0x0000030B   Slot 3: CarControls  (guest -> host actuators)
	0x00000400..0x0000040F   Slot 4: SplineQuery  (request/response)
	0x00000500..0x0000051B   Slot 5: TrackRadar   (host -> guest, 7 rays)
	0x00000600..0x0000061F   Slot 6: CarRadar     (host -> guest, 4 cars)
	[IOTop, DramSize)        DRAM resumes; holds the stack and any data or
	                         code above the IO window

Each slot's width is fixed regardless of how many bytes a device actually
uses; a device ignores writes and returns zero/NaN for offsets within its
window that it does not define.
*/

package main

const (
	IOBase = 0x00000100
	IOTop  = 0x00000700 // one past the last defined slot's window

	SlotLog         = 0x00000100
	SlotCarState    = 0x00000200
	SlotCarControls = 0x00000300
	SlotSplineQuery = 0x00000400
	SlotTrackRadar  = 0x00000500
	SlotCarRadar    = 0x00000600

	WidthLog         = 1
	WidthCarState    = 28
	WidthCarControls = 12
	WidthSplineQuery = 16
	WidthTrackRadar  = 28
	WidthCarRadar    = 32
)

// CarState field offsets.
const (
	CarStateSpeed    = 0x00
	CarStatePosX     = 0x04
	CarStatePosY     = 0x08
	CarStateForwardX = 0x0C
	CarStateForwardY = 0x10
	CarStateTargetX  = 0x14
	CarStateTargetY  = 0x18
)

// CarControls field offsets.
const (
	CarControlsAccelerator = 0x00
	CarControlsBrake       = 0x04
	CarControlsSteering    = 0x08
)

// SplineQuery field offsets.
const (
	SplineQueryT    = 0x00
	SplineQueryX    = 0x04
	SplineQueryY    = 0x08
	SplineQueryTMax = 0x0C
)

// IsIOAddress reports whether addr falls in the fixed MMIO window rather
// than DRAM. DRAM spans both below IOBase and above IOTop.
func IsIOAddress(addr uint32) bool {
	return addr >= IOBase && addr < IOTop
}

// SlotForAddress returns the slot base address that owns addr, or 0 if addr
// is below IOBase (DRAM), in the gap between one slot's width and the next
// slot's base, or past the last defined slot's window.
func SlotForAddress(addr uint32) uint32 {
	switch {
	case addr >= SlotLog && addr < SlotLog+WidthLog:
		return SlotLog
	case addr >= SlotCarState && addr < SlotCarState+WidthCarState:
		return SlotCarState
	case addr >= SlotCarControls && addr < SlotCarControls+WidthCarControls:
		return SlotCarControls
	case addr >= SlotSplineQuery && addr < SlotSplineQuery+WidthSplineQuery:
		return SlotSplineQuery
	case addr >= SlotTrackRadar && addr < SlotTrackRadar+WidthTrackRadar:
		return SlotTrackRadar
	case addr >= SlotCarRadar && addr < SlotCarRadar+WidthCarRadar:
		return SlotCarRadar
	default:
		return 0
	}
}

// DeviceName returns a human-readable name for a slot base address, used in
// fault messages.
func DeviceName(slot uint32) string {
	switch slot {
	case SlotLog:
		return "Log"
	case SlotCarState:
		return "CarState"
	case SlotCarControls:
		return "CarControls"
	case SlotSplineQuery:
		return "SplineQuery"
	case SlotTrackRadar:
		return "TrackRadar"
	case SlotCarRadar:
		return "CarRadar"
	default:
		return "unknown"
	}
}
