package course

import (
	"encoding/json"
	"os"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"

	"github.com/gkirchou/vendeeglobe-bot/latlon"
)

// Checkpoint is a course mark with an arrival radius in kilometers. Reached
// flips to true once the ship has come within Radius and never reverts.
type Checkpoint struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius" validate:"gte=0"`
	Reached   bool    `json:"reached"`
}

func (ch Checkpoint) LatLon() latlon.LatLon {
	return latlon.LatLon{Lat: ch.Latitude, Lon: ch.Longitude}
}

// Course is the ordered list of checkpoints the ship has to pass, in order.
// Longitudes are not validated on purpose : courses use continuous longitudes
// past the antimeridian.
type Course struct {
	Name        string        `json:"name"`
	Start       latlon.LatLon `json:"start"`
	Checkpoints []Checkpoint  `json:"checkpoints" validate:"required,min=1,dive"`
}

var validate = validator.New()

// Load reads a course from a json file.
func Load(file string) (*Course, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		log.WithError(err).Errorf("Error reading course file '%s'", file)
		return nil, err
	}

	var c Course
	if err := json.Unmarshal(content, &c); err != nil {
		log.WithError(err).Errorf("Error parsing course file '%s'", file)
		return nil, err
	}

	if err := validate.Struct(&c); err != nil {
		log.WithError(err).Errorf("Invalid course '%s'", c.Name)
		return nil, err
	}

	return &c, nil
}

// Reset rearms every checkpoint for a new run.
func (c *Course) Reset() {
	for i := range c.Checkpoints {
		c.Checkpoints[i].Reached = false
	}
}

// Remaining returns the number of checkpoints not reached yet.
func (c *Course) Remaining() int {
	n := 0
	for _, ch := range c.Checkpoints {
		if !ch.Reached {
			n++
		}
	}
	return n
}

// Default returns the built-in round-the-world course : out of the Bay of
// Biscay, through the Panama canal, across the Pacific gate, around New
// Zealand, through the Indian ocean gate, around the Cape of Good Hope and
// back to the start line.
func Default() *Course {
	start := latlon.LatLon{Lat: 46.494917, Lon: -1.806891}
	return &Course{
		Name:  "vendeeglobe",
		Start: start,
		Checkpoints: []Checkpoint{
			{Name: "Finisterre", Latitude: 43.797109, Longitude: -11.264905, Radius: 50},
			{Name: "Hispaniola North", Latitude: 20.3477869, Longitude: -70.4968647, Radius: 50},
			{Name: "Hispaniola West", Latitude: 20.3477869, Longitude: -73.4968647, Radius: 50},
			{Name: "Jamaica Channel", Latitude: 18, Longitude: -75, Radius: 50},
			{Name: "Colon", Latitude: 9.36, Longitude: -80.013, Radius: 50},
			{Name: "Canal", Latitude: 9.11595, Longitude: -79.70804, Radius: 50},
			{Name: "Balboa", Latitude: 8.8, Longitude: -79.5, Radius: 50},
			{Name: "Gulf of Panama", Latitude: 3, Longitude: -79.5, Radius: 50},
			{Name: "Pacific Gate", Latitude: 2.806318, Longitude: -168.943864, Radius: 1990},
			{Name: "North of New Zealand", Latitude: -31.3536, Longitude: -195.8203, Radius: 50},
			{Name: "South of New Zealand", Latitude: -48.8068, Longitude: -210.5859375, Radius: 50},
			{Name: "Indian Gate", Latitude: -15.668984, Longitude: 77.674694, Radius: 1190},
			{Name: "South of Africa", Latitude: -39.438937, Longitude: 19.836265, Radius: 50},
			{Name: "West of Africa", Latitude: 14.881699, Longitude: -21.024326, Radius: 50},
			{Name: "West of Spain", Latitude: 44.076538, Longitude: -18.292936, Radius: 50},
			// zero radius : the host simulator detects the finish line itself,
			// the bot only stops the ship on it
			{Name: "Finish", Latitude: start.Lat, Longitude: start.Lon, Radius: 0},
		},
	}
}
