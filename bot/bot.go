package bot

import (
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/gkirchou/vendeeglobe-bot/course"
	"github.com/gkirchou/vendeeglobe-bot/latlon"
)

// Forecast queries the weather model : u/v wind components in m/s at a
// position, hours ahead of now.
type Forecast func(latitude, longitude, hours float64) (float64, float64)

// WorldMap queries the terrain model : 1 for sea, 0 for land.
type WorldMap func(latitude, longitude float64) int

// Notifier is told once when a checkpoint is first reached.
type Notifier interface {
	CheckpointReached(name string, t float64)
}

// Bot is the ship-controlling bot. It owns its course for the lifetime of a
// run and advances it greedily : the first unreached checkpoint is the
// current target.
type Bot struct {
	Team     string
	course   *course.Course
	s        latlon.LatLonInterface
	notifier Notifier
}

func New(c *course.Course, notifier Notifier) *Bot {
	return &Bot{
		Team:     "gkirchou",
		course:   c,
		s:        latlon.LatLonHaversine{},
		notifier: notifier,
	}
}

func (b *Bot) Course() *course.Course {
	return b.course
}

// Reset rearms the course for a new run.
func (b *Bot) Reset() {
	b.course.Reset()
}

// Run is called by the simulator at every time step. t and dt are in hours,
// speed in km/h, heading in degrees. forecast and worldMap are query
// capabilities handed in by the simulator ; the greedy controller does not
// use them but strategy code plugged in here can.
//
// The throttle is recomputed on every checkpoint scanned, so once the whole
// course is reached the emitted sail value is the last checkpoint's. With a
// zero radius finish that holds the ship stopped on the line.
func (b *Bot) Run(t, dt, longitude, latitude, heading, speed float64, vector Vector, forecast Forecast, worldMap WorldMap) Instructions {
	instructions := Instructions{Sail: 1.0}

	here := latlon.LatLon{Lat: latitude, Lon: longitude}

	for i := range b.course.Checkpoints {
		ch := &b.course.Checkpoints[i]

		dist := b.s.DistanceTo(here, ch.LatLon()) / 1000.0

		// distance covered in one step at current speed
		jump := dt * speed

		if dist < 2.0*ch.Radius+jump {
			if jump > 0 {
				instructions.Sail = math.Min(ch.Radius/jump, 1.0)
			} else {
				// stationary ship, keep full throttle so it can get going
				instructions.Sail = 1.0
			}
		} else {
			instructions.Sail = 1.0
		}

		if dist < ch.Radius && !ch.Reached {
			ch.Reached = true
			log.WithFields(log.Fields{"checkpoint": ch.Name, "t": t}).Info("Checkpoint reached")
			if b.notifier != nil {
				b.notifier.CheckpointReached(ch.Name, t)
			}
		}

		if !ch.Reached {
			instructions.Location = &Location{Latitude: ch.Latitude, Longitude: ch.Longitude}
			break
		}
	}

	return instructions
}
