package main

import (
	"math"

	"golang.org/x/sync/errgroup"
)

// splineTargetLookahead is the distance, in spline parameter units, the
// navigation target is projected ahead of each car's closest point on the
// centreline.
const splineTargetLookahead = 2.0

// RunTick advances the race by one fixed step: pre-CPU sensor refresh,
// bounded guest CPU burst, post-CPU actuator readback, then physics
// integration. Each phase fans out one goroutine per car and joins before
// the next phase starts, so no car observes another's partial state from
// the phase in progress. A no-op outside Racing.
func (r *RaceManager) RunTick() error {
	if r.state != Racing {
		return nil
	}

	dt := 1.0 / float64(r.config.TickHz)
	ipt := r.config.InstructionsPerTick()
	cars := r.cars

	var sense errgroup.Group
	for _, c := range cars {
		sense.Go(func() error {
			r.refreshSensors(c)
			return nil
		})
	}
	if err := sense.Wait(); err != nil {
		return err
	}

	var burst errgroup.Group
	for _, c := range cars {
		burst.Go(func() error {
			r.runCPUBurst(c, ipt)
			return nil
		})
	}
	if err := burst.Wait(); err != nil {
		return err
	}

	var readback errgroup.Group
	for _, c := range cars {
		readback.Go(func() error {
			r.readActuators(c)
			return nil
		})
	}
	if err := readback.Wait(); err != nil {
		return err
	}

	var physics errgroup.Group
	for _, c := range cars {
		physics.Go(func() error {
			r.stepPhysics(c, dt)
			return nil
		})
	}
	return physics.Wait()
}

// refreshSensors repopulates CarState, TrackRadar, and CarRadar from the
// previous tick's settled positions. SplineQuery's cache is left as-is.
func (r *RaceManager) refreshSensors(c *CarEntry) {
	car := c.Car
	forward := car.Forward()

	distances := r.track.TrackRadarDistances(car.Pos, forward)
	c.TrackRadar.Update(distances)

	others := make([][2]float64, 0, len(r.cars)-1)
	for _, other := range r.cars {
		if other == c {
			continue
		}
		others = append(others, other.Car.Pos)
	}
	c.CarRadar.Update(CarRadarPositions(car.Pos, others))

	c.State.Update(float32(car.Speed()), float32(car.Pos[0]), float32(car.Pos[1]), float32(forward[0]), float32(forward[1]))

	closestT := r.track.Spline.ClosestParam(car.Pos, 4)
	tx, ty := r.track.Spline.Sample(closestT + splineTargetLookahead)
	c.State.SetTarget(float32(tx), float32(ty))
}

// runCPUBurst executes up to instructionsPerTick decoded instructions. A
// faulting step halts this car's Hart for the remainder of the race; other
// cars are unaffected.
func (r *RaceManager) runCPUBurst(c *CarEntry, instructionsPerTick int) {
	if c.Halted {
		return
	}
	for i := 0; i < instructionsPerTick; i++ {
		if err := c.Hart.Step(); err != nil {
			c.Halted = true
			c.HaltErr = err
			r.logger.carFault(c.Name, err)
			return
		}
	}
}

// readActuators samples CarControls and clamps the values the physics
// phase will consume.
func (r *RaceManager) readActuators(c *CarEntry) {
	car := c.Car
	car.Accelerator = clamp64(float64(c.Controls.Accelerator()), 0, 1)
	car.Brake = clamp64(float64(c.Controls.Brake()), 0, 1)
	car.Steer = clamp64(float64(c.Controls.Steering()), -math.Pi/6, math.Pi/6)
}

// stepPhysics runs the longitudinal and lateral models and integrates the
// resulting pose. Physics continues even for a halted car so it coasts to
// a stop under its last-known controls rather than freezing mid-track.
func (r *RaceManager) stepPhysics(c *CarEntry, dt float64) {
	StepLongitudinal(c.Car, dt)
	StepLateral(c.Car)
	c.Car.Integrate(dt)
}

func clamp64(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
