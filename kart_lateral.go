package main

import "math"

// Chassis dimensions for the four-wheel lateral model, matched to the
// prototype's WHEEL_BASE/WHEEL_TRACK constants.
const (
	wheelBase  = 1.18 // m, front-to-rear wheel separation
	wheelTrack = 0.95 // m, left-to-right wheel separation

	lateralForceGain   = 5.0  // (m/s)^-1 . kg^-1 scale, force per unit wheel speed
	lateralForceCap    = 10.0 // m/s^2 equivalent cap on the per-wheel contribution
	wheelMinSpeedForce = 0.1  // m/s, below this a wheel exerts no lateral force
)

// wheelPose returns a wheel's world offset from the car origin and its
// forward direction. Front wheels are steered; rear wheels follow the
// body's forward direction.
func wheelPose(c *Car, lateralOffset, longitudinalOffset float64, steered bool) (offset, forward [2]float64) {
	f := c.Forward()
	l := c.Left()

	wf := f
	if steered {
		wf = rotateVec(f, -c.Steer)
	}

	offset = [2]float64{
		f[0]*longitudinalOffset + l[0]*lateralOffset,
		f[1]*longitudinalOffset + l[1]*lateralOffset,
	}
	return offset, wf
}

func rotateVec(v [2]float64, angle float64) [2]float64 {
	cos, sin := math.Cos(angle), math.Sin(angle)
	return [2]float64{v[0]*cos - v[1]*sin, v[0]*sin + v[1]*cos}
}

// applyWheelForce computes the lateral tire force at one wheel and applies
// it to the car at the wheel's world position, contributing both a linear
// and an angular acceleration. The force opposes the wheel's lateral
// velocity component and its magnitude is capped, giving self-aligning
// steering behaviour without modelling explicit slip angles.
func applyWheelForce(c *Car, offset, wheelForward [2]float64) {
	wheelLeft := [2]float64{-wheelForward[1], wheelForward[0]}

	// wheel velocity = linear velocity + angular velocity x offset
	wheelVel := [2]float64{
		c.LinearVelocity[0] - c.AngularVelocity*offset[1],
		c.LinearVelocity[1] + c.AngularVelocity*offset[0],
	}

	speed := math.Hypot(wheelVel[0], wheelVel[1])
	if speed <= wheelMinSpeedForce {
		return
	}

	dirX, dirY := wheelVel[0]/speed, wheelVel[1]/speed
	lateralComponent := dirX*wheelLeft[0] + dirY*wheelLeft[1]
	magnitude := math.Min(lateralForceCap, speed*lateralForceGain)

	force := [2]float64{
		-lateralComponent * wheelLeft[0] * magnitude,
		-lateralComponent * wheelLeft[1] * magnitude,
	}

	worldPoint := [2]float64{c.Pos[0] + offset[0], c.Pos[1] + offset[1]}
	c.ApplyAccelerationAtPoint(force, worldPoint)
}

// StepLateral applies the four-wheel lateral tire model for one tick. Must
// run in the same tick as StepLongitudinal, before Integrate.
func StepLateral(c *Car) {
	half := wheelTrack / 2

	flOffset, flForward := wheelPose(c, -half, wheelBase, true)
	frOffset, frForward := wheelPose(c, half, wheelBase, true)
	rlOffset, rlForward := wheelPose(c, -half, 0, false)
	rrOffset, rrForward := wheelPose(c, half, 0, false)

	applyWheelForce(c, flOffset, flForward)
	applyWheelForce(c, frOffset, frForward)
	applyWheelForce(c, rlOffset, rlForward)
	applyWheelForce(c, rrOffset, rrForward)
}
