package main

import (
	"math"
	"testing"
)

func TestLateralForceOpposesSidewaysDrift(t *testing.T) {
	c := NewCar("car-0", [2]float64{0, 0}, 0) // facing +x
	c.LinearVelocity = [2]float64{0, 2}       // pure sideways drift
	StepLateral(c)
	c.Integrate(1.0 / 200)
	if c.LinearVelocity[1] >= 2 {
		t.Fatalf("lateral velocity = %v, want reduced from 2 by opposing tire force", c.LinearVelocity[1])
	}
}

func TestLateralForceIsZeroBelowMinSpeed(t *testing.T) {
	c := NewCar("car-0", [2]float64{0, 0}, 0)
	c.LinearVelocity = [2]float64{0, 0.01} // below wheelMinSpeedForce
	before := c.LinearVelocity
	StepLateral(c)
	c.Integrate(1.0 / 200)
	if c.LinearVelocity != before {
		t.Fatalf("velocity changed (%v -> %v) below the wheel force threshold", before, c.LinearVelocity)
	}
}

func TestSteeredFrontWheelsRotateWithSteerAngle(t *testing.T) {
	c := NewCar("car-0", [2]float64{0, 0}, 0)
	c.Steer = math.Pi / 4
	_, forward := wheelPose(c, -wheelTrack/2, wheelBase, true)
	if math.Abs(forward[1]-math.Sin(-c.Steer)) > 1e-9 {
		t.Fatalf("front wheel forward = %v, want rotated by -steer", forward)
	}
}

func TestRearWheelsIgnoreSteerAngle(t *testing.T) {
	c := NewCar("car-0", [2]float64{0, 0}, 0)
	c.Steer = math.Pi / 6
	_, forward := wheelPose(c, -wheelTrack/2, 0, false)
	if forward != c.Forward() {
		t.Fatalf("rear wheel forward = %v, want unsteered %v", forward, c.Forward())
	}
}
