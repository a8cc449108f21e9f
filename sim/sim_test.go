package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkirchou/vendeeglobe-bot/bot"
	"github.com/gkirchou/vendeeglobe-bot/course"
	"github.com/gkirchou/vendeeglobe-bot/latlon"
	"github.com/gkirchou/vendeeglobe-bot/polar"
)

func TestRunCompletesCourse(t *testing.T) {
	c := &course.Course{
		Name:  "equator sprint",
		Start: latlon.LatLon{Lat: 0, Lon: 0},
		Checkpoints: []course.Checkpoint{
			{Name: "one", Latitude: 0, Longitude: 2, Radius: 50},
			{Name: "two", Latitude: 0, Longitude: 4, Radius: 50},
			{Name: "finish", Latitude: 0, Longitude: 6, Radius: 50},
		},
	}
	b := bot.New(c, nil)
	sim := New(b, c.Start, FixedSpeed(20))

	elapsed := sim.Run(200, 1)

	assert.Equal(t, 0, c.Remaining())
	// ~670 km at 20 km/h
	assert.Less(t, elapsed, 100.0)
}

func TestStepBrakesOnSmallCheckpoint(t *testing.T) {
	c := &course.Course{
		Name: "braking",
		Checkpoints: []course.Checkpoint{
			// ~55.6 km from the start, radius 5 km
			{Name: "mark", Latitude: 0, Longitude: 0.5, Radius: 5},
		},
	}
	b := bot.New(c, nil)
	sim := New(b, latlon.LatLon{Lat: 0, Lon: 0}, FixedSpeed(50))

	instructions := sim.Step(0, 1)

	require.NotNil(t, instructions.Location)
	assert.InDelta(t, 0.1, instructions.Sail, 1e-9)
	// the ship only moved a tenth of a jump
	assert.InDelta(t, 0.045, sim.Longitude, 0.005)
}

func TestStepStopsOnCompletedCourse(t *testing.T) {
	c := &course.Course{
		Name: "done",
		Checkpoints: []course.Checkpoint{
			{Name: "mark", Latitude: 0, Longitude: 0, Radius: 50, Reached: true},
		},
	}
	b := bot.New(c, nil)
	sim := New(b, latlon.LatLon{Lat: 0, Lon: 1}, FixedSpeed(20))

	instructions := sim.Step(0, 1)

	assert.Nil(t, instructions.Location)
	assert.Equal(t, 1.0, sim.Longitude)
}

func TestPolarSpeed(t *testing.T) {
	boat := polar.Default()
	// steady 10 m/s northerly
	forecast := func(latitude, longitude, hours float64) (float64, float64) {
		return 0, -10
	}

	speed := PolarSpeed(boat, forecast)

	// beam reach heading east
	got := speed(90, 0, 0, 0)
	assert.InDelta(t, boat.BoatSpeed(90, 10), got, 1e-9)
	assert.Greater(t, got, 0.0)
}

func TestPolarSpeedCalm(t *testing.T) {
	boat := polar.Default()
	forecast := func(latitude, longitude, hours float64) (float64, float64) {
		return 0, 0
	}

	speed := PolarSpeed(boat, forecast)

	assert.Equal(t, 0.0, speed(90, 0, 0, 0))
}
