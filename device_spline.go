package main

// SplineQueryDevice lets the guest sample the centreline spline at an
// arbitrary parameter t. Writing f32 to offset 0 sets t and immediately
// samples the curve; subsequent reads at 0x04/0x08 return the cached x,y
// and 0x0C returns the domain end t_max.
type SplineQueryDevice struct {
	spline *TrackSpline

	t    float32
	x, y float32
}

func NewSplineQueryDevice(spline *TrackSpline) *SplineQueryDevice {
	return &SplineQueryDevice{spline: spline}
}

func (d *SplineQueryDevice) Load(offset uint32, size uint8) uint32 {
	if size != 4 {
		return 0
	}
	switch offset {
	case SplineQueryX:
		return float32ToBits(d.x)
	case SplineQueryY:
		return float32ToBits(d.y)
	case SplineQueryTMax:
		if d.spline == nil {
			return 0
		}
		return float32ToBits(float32(d.spline.TMax()))
	default:
		return 0
	}
}

func (d *SplineQueryDevice) Store(offset uint32, size uint8, value uint32) {
	if size != 4 || offset != SplineQueryT {
		return
	}
	d.t = bitsToFloat32(value)
	if d.spline == nil {
		d.x, d.y = 0, 0
		return
	}
	x, y := d.spline.Sample(float64(d.t))
	d.x, d.y = float32(x), float32(y)
}

func (d *SplineQueryDevice) Reset() {
	d.t, d.x, d.y = 0, 0, 0
}
