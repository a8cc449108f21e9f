package sim

import (
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/gkirchou/vendeeglobe-bot/bot"
	"github.com/gkirchou/vendeeglobe-bot/latlon"
	"github.com/gkirchou/vendeeglobe-bot/polar"
	"github.com/gkirchou/vendeeglobe-bot/wind"
)

// SpeedFunc gives the ship speed in km/h for a heading at a position.
type SpeedFunc func(heading, latitude, longitude, t float64) float64

// FixedSpeed drives the ship at a constant speed whatever the heading.
func FixedSpeed(kmh float64) SpeedFunc {
	return func(heading, latitude, longitude, t float64) float64 {
		return kmh
	}
}

// PolarSpeed drives the ship at the polar speed for the wind the forecast
// reports at the ship position.
func PolarSpeed(boat polar.Boat, forecast bot.Forecast) SpeedFunc {
	return func(heading, latitude, longitude, t float64) float64 {
		u, v := forecast(latitude, longitude, t)
		ws := math.Sqrt(u*u + v*v)
		if ws == 0 {
			return 0
		}
		dir := math.Atan2(u/ws, v/ws)*180/math.Pi + 180
		return boat.BoatSpeed(wind.Twa(heading, dir), ws)
	}
}

// Simulator is a crude offline harness : every step it asks the bot for
// instructions and moves the ship straight at the instructed location, at the
// sail-scaled speed. It is no substitute for the host physics but it is
// enough to sail a course end to end.
type Simulator struct {
	Bot      *bot.Bot
	Speed    SpeedFunc
	Forecast bot.Forecast
	WorldMap bot.WorldMap

	Latitude  float64
	Longitude float64
	Heading   float64

	s latlon.LatLonInterface
}

func New(b *bot.Bot, start latlon.LatLon, speed SpeedFunc) *Simulator {
	return &Simulator{
		Bot:       b,
		Speed:     speed,
		Latitude:  start.Lat,
		Longitude: start.Lon,
		s:         latlon.LatLonHaversine{},
	}
}

// Step runs one tick of dt hours and returns the instructions the bot gave.
func (sim *Simulator) Step(t, dt float64) bot.Instructions {
	speed := sim.Speed(sim.Heading, sim.Latitude, sim.Longitude, t)

	instructions := sim.Bot.Run(t, dt, sim.Longitude, sim.Latitude, sim.Heading, speed, bot.Vector{}, sim.Forecast, sim.WorldMap)

	if instructions.Location == nil {
		return instructions
	}

	here := latlon.LatLon{Lat: sim.Latitude, Lon: sim.Longitude}
	target := latlon.LatLon{Lat: instructions.Location.Latitude, Lon: instructions.Location.Longitude}

	dist, bearing := sim.s.DistanceAndBearingTo(here, target)
	sim.Heading = bearing

	step := instructions.Sail * speed * dt * 1000.0
	if step > dist {
		// no overshoot past the target
		step = dist
	}

	next := sim.s.Destination(here, bearing, step)
	sim.Latitude = next.Lat
	sim.Longitude = next.Lon

	return instructions
}

// Run steps the simulation until the course is complete or maxHours have
// passed. It returns the elapsed time in hours.
func (sim *Simulator) Run(maxHours, dt float64) float64 {
	t := 0.0
	for t < maxHours {
		sim.Step(t, dt)
		t += dt
		if sim.Bot.Course().Remaining() == 0 {
			log.WithFields(log.Fields{"t": t}).Info("Course complete")
			return t
		}
	}
	log.WithFields(log.Fields{"remaining": sim.Bot.Course().Remaining()}).Warn("Course not complete")
	return t
}
