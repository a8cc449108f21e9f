package polar

import (
	"encoding/json"
	"os"

	log "github.com/sirupsen/logrus"
)

const msToKts = 1.9438444924406
const ktsToKmh = 1.852

// Boat is a speed polar : boat speed in knots indexed by true wind angle and
// true wind speed.
type Boat struct {
	Label    string      `json:"label"`
	MaxSpeed float64     `json:"maxSpeed"`
	Tws      []float64   `json:"tws"`
	Twa      []float64   `json:"twa"`
	Speed    [][]float64 `json:"speed"`
}

// Load reads a polar from a json file.
func Load(file string) (Boat, error) {
	var boat Boat

	data, err := os.ReadFile(file)
	if err != nil {
		log.WithError(err).Errorf("Error reading polar file '%s'", file)
		return boat, err
	}

	if err := json.Unmarshal(data, &boat); err != nil {
		log.WithError(err).Errorf("Error parsing polar file '%s'", file)
		return boat, err
	}

	return boat, nil
}

func interpolationIndex(values []float64, value float64) (int, int, float64) {

	i := 0
	for values[i] < value {
		i++
		if i == len(values) {
			if values[i-1] < value {
				return i - 1, 0, 1
			}
			return i - 1, i, (values[i] - value) / (values[i] - values[i-1])
		}
	}

	if i > 0 {
		return i - 1, i, (values[i] - value) / (values[i] - values[i-1])
	}

	return 0, 0, 0
}

// BoatSpeed returns the boat speed in km/h for a true wind angle in degrees
// and a true wind speed in m/s.
func (boat Boat) BoatSpeed(twa float64, ws float64) float64 {
	// convert m/s to kts
	ws = ws * msToKts

	t := twa
	if t < 0 {
		t = -1 * t
	}
	if t > 180 {
		t = 360 - t
	}

	twsIndex0, twsIndex1, twsFactor := interpolationIndex(boat.Tws, ws)
	twaIndex0, twaIndex1, twaFactor := interpolationIndex(boat.Twa, t)

	ti0 := boat.Speed[twaIndex0]
	ti1 := boat.Speed[twaIndex1]
	bs := (ti0[twsIndex0]*twsFactor+ti0[twsIndex1]*(1-twsFactor))*twaFactor + (ti1[twsIndex0]*twsFactor+ti1[twsIndex1]*(1-twsFactor))*(1-twaFactor)

	if boat.MaxSpeed > 0 && bs > boat.MaxSpeed {
		bs = boat.MaxSpeed
	}

	return bs * ktsToKmh
}

// Default returns a rough monohull polar, good enough to drive the offline
// simulator when no polar file is given.
func Default() Boat {
	return Boat{
		Label: "default",
		Tws:   []float64{0, 5, 10, 15, 20, 25, 30},
		Twa:   []float64{0, 30, 60, 90, 120, 150, 180},
		Speed: [][]float64{
			{0, 0, 0, 0, 0, 0, 0},
			{0, 2, 4, 5, 6, 6, 6},
			{0, 5, 9, 12, 14, 15, 15},
			{0, 6, 11, 15, 17, 18, 18},
			{0, 6, 12, 16, 19, 20, 20},
			{0, 4, 9, 13, 16, 18, 18},
			{0, 3, 7, 10, 13, 15, 15},
		},
	}
}
