package model

// State is the ship state the simulator posts at every tick. t and dt are in
// hours, speed in km/h, heading in degrees, vector is the heading expressed
// as u/v components.
type State struct {
	T         float64   `json:"t"`
	Dt        float64   `json:"dt"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Heading   float64   `json:"heading"`
	Speed     float64   `json:"speed"`
	Vector    []float64 `json:"vector"`
}
