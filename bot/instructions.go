package bot

// Location is a target the simulator will steer the ship towards.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Vector is a direction to follow, expressed as its u/v components.
type Vector struct {
	U float64 `json:"u"`
	V float64 `json:"v"`
}

// Instructions is what the bot hands back to the simulator every tick. All
// steering fields are optional ; this bot only ever fills Location and Sail.
type Instructions struct {
	Location *Location `json:"location,omitempty"`
	Heading  *float64  `json:"heading,omitempty"`
	Vector   *Vector   `json:"vector,omitempty"`
	Left     *float64  `json:"left,omitempty"`
	Right    *float64  `json:"right,omitempty"`
	Sail     float64   `json:"sail"`
}
