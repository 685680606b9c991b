package main

import "math"

// Car is one racer's physical state: pose, velocity, and powertrain state.
// Longitudinal and lateral force contributions accumulate into it each
// tick and are integrated once per tick by Integrate.
type Car struct {
	DisplayName string

	Pos          [2]float64
	ForwardAngle float64 // radians; forward = (cos, sin)

	LinearVelocity  [2]float64 // world frame, m/s
	AngularVelocity float64    // rad/s

	EngineRPM float64

	Accelerator float64
	Brake       float64
	Steer       float64

	accumAccel        [2]float64
	accumAngularAccel float64

	CPUFaulted bool
}

// NewCar creates a car at the given pose with idle engine RPM.
func NewCar(name string, pos [2]float64, forwardAngle float64) *Car {
	return &Car{
		DisplayName:  name,
		Pos:          pos,
		ForwardAngle: forwardAngle,
		EngineRPM:    idleRPM,
	}
}

// Forward returns the unit forward vector in world space.
func (c *Car) Forward() [2]float64 {
	return [2]float64{math.Cos(c.ForwardAngle), math.Sin(c.ForwardAngle)}
}

// Left returns the unit left vector (perpendicular to forward), consistent
// with Vec2::perp in the original prototype (rotate +90 degrees).
func (c *Car) Left() [2]float64 {
	f := c.Forward()
	return [2]float64{-f[1], f[0]}
}

// Speed returns the magnitude of the linear velocity.
func (c *Car) Speed() float64 {
	return math.Hypot(c.LinearVelocity[0], c.LinearVelocity[1])
}

// ApplyLinearAcceleration accumulates a world-space acceleration to be
// integrated at the end of the tick.
func (c *Car) ApplyLinearAcceleration(a [2]float64) {
	c.accumAccel[0] += a[0]
	c.accumAccel[1] += a[1]
}

// ApplyAccelerationAtPoint accumulates a world-space acceleration applied
// at worldPoint, splitting it into a translational contribution and an
// angular contribution proportional to the lever arm from the car's
// origin (the model intentionally omits a real moment of inertia, matching
// the simplified arcade-style handling this is derived from).
func (c *Car) ApplyAccelerationAtPoint(a, worldPoint [2]float64) {
	c.ApplyLinearAcceleration(a)
	offset := [2]float64{worldPoint[0] - c.Pos[0], worldPoint[1] - c.Pos[1]}
	c.accumAngularAccel += offset[0]*a[1] - offset[1]*a[0]
}

// Integrate advances velocity and pose by dt using the forces accumulated
// since the last call, then clears the accumulators.
func (c *Car) Integrate(dt float64) {
	c.LinearVelocity[0] += c.accumAccel[0] * dt
	c.LinearVelocity[1] += c.accumAccel[1] * dt
	c.AngularVelocity += c.accumAngularAccel * dt

	c.Pos[0] += c.LinearVelocity[0] * dt
	c.Pos[1] += c.LinearVelocity[1] * dt
	c.ForwardAngle += c.AngularVelocity * dt

	c.accumAccel = [2]float64{}
	c.accumAngularAccel = 0
}

// ForwardSpeed projects the world-space linear velocity onto the forward
// axis, used by the longitudinal model.
func (c *Car) ForwardSpeed() float64 {
	f := c.Forward()
	return c.LinearVelocity[0]*f[0] + c.LinearVelocity[1]*f[1]
}
