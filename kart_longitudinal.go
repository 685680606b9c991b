package main

import "math"

// Longitudinal powertrain constants. No original implementation to ground
// these on; values are taken directly from the tuned defaults this model
// targets.
const (
	carMass           = 165.0 // kg
	wheelRadius       = 0.13  // m
	gearRatio         = 5.0
	drivetrainEff     = 0.9
	tireFrictionMu    = 1.0
	rollingResistance = 0.015
	airDensity        = 1.225
	dragArea          = 0.75 // m^2, Cd*A
	gravity           = 9.81

	torquePeak         = 22.0 // N*m, at peakTorqueRPM
	peakTorqueRPM      = 2800.0
	redlineFraction    = 0.6 // torque fraction retained at redline
	idleRPM            = 1800.0
	clutchEngageLow    = 2100.0
	clutchEngageHigh   = 2600.0
	redlineRPM         = 6200.0
	governorCeilingRPM = redlineRPM + 500
	engineBrakeTorque  = 3.0   // N*m, applied when off-throttle above idle
	brakeAxleTorque    = 400.0 // N*m, full brake pedal
	clutchLockRate     = 40.0  // 1/s, engine RPM sync rate once locked
	freeRevRate        = 10.0  // 1/s, engine RPM rate when clutch is open

	nearStopSpeed = 0.05 // m/s, below this rolling resistance is zeroed
)

// engineTorque returns the naturally-aspirated torque curve: below peak the
// value at peak is used; from peak to redline it falls parabolically to
// redlineFraction*peak.
func engineTorque(rpm float64) float64 {
	if rpm <= peakTorqueRPM {
		return torquePeak
	}
	frac := (rpm - peakTorqueRPM) / (redlineRPM - peakTorqueRPM)
	if frac > 1 {
		frac = 1
	}
	fall := 1 - frac*frac*(1-redlineFraction)
	return torquePeak * fall
}

// governor drops linearly from 1 at redline to 0 at redline+500, capping
// engine speed without a hard cutoff.
func governor(rpm float64) float64 {
	if rpm <= redlineRPM {
		return 1
	}
	if rpm >= governorCeilingRPM {
		return 0
	}
	return 1 - (rpm-redlineRPM)/(governorCeilingRPM-redlineRPM)
}

// smoothstep is the classic Hermite blend used for the clutch engagement
// band between clutchEngageLow and clutchEngageHigh.
func smoothstep(lo, hi, x float64) float64 {
	if x <= lo {
		return 0
	}
	if x >= hi {
		return 1
	}
	t := (x - lo) / (hi - lo)
	return t * t * (3 - 2*t)
}

// StepLongitudinal advances the engine RPM and applies the forward-axis
// acceleration for one tick, following the engine-torque / clutch-blend /
// governor / traction-clamp pipeline.
func StepLongitudinal(c *Car, dt float64) {
	v := c.ForwardSpeed()
	wheelOmega := v / wheelRadius

	engNet := c.Accelerator*engineTorque(c.EngineRPM) - (1-c.Accelerator)*engineBrakeTorque
	engNet *= governor(c.EngineRPM)

	s := smoothstep(clutchEngageLow, clutchEngageHigh, c.EngineRPM)

	driveTorque := 0.0
	if engNet > 0 {
		driveTorque = engNet
	}
	axleDrive := drivetrainEff * gearRatio * s * driveTorque
	axleBrake := c.Brake * brakeAxleTorque

	forwardForce := axleDrive / wheelRadius

	sign := 1.0
	if v < 0 {
		sign = -1.0
	}
	if v != 0 {
		forwardForce -= sign * axleBrake / wheelRadius
	}
	if math.Abs(v) >= nearStopSpeed {
		forwardForce -= sign * rollingResistance * carMass * gravity
	}
	forwardForce -= sign * 0.5 * airDensity * dragArea * v * v

	maxForce := tireFrictionMu * carMass * gravity
	if forwardForce > maxForce {
		forwardForce = maxForce
	}
	if forwardForce < -maxForce {
		forwardForce = -maxForce
	}
	if math.Abs(v) < nearStopSpeed && forwardForce < 0 {
		forwardForce = 0
	}

	f := c.Forward()
	accel := forwardForce / carMass
	c.ApplyLinearAcceleration([2]float64{f[0] * accel, f[1] * accel})

	lockTarget := gearRatio * wheelOmega * (60 / (2 * math.Pi))
	freeTarget := idleRPM + c.Accelerator*(redlineRPM-idleRPM)
	target := s*lockTarget + (1-s)*freeTarget

	rate := freeRevRate
	if s >= 0.5 {
		rate = clutchLockRate
	}
	c.EngineRPM += (target - c.EngineRPM) * math.Min(1, rate*dt)

	if c.EngineRPM < idleRPM {
		c.EngineRPM = idleRPM
	}
	if c.EngineRPM > governorCeilingRPM {
		c.EngineRPM = governorCeilingRPM
	}
}
