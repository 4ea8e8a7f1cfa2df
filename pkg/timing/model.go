package timing

// DriverResult is one row of the race classification, in the order the
// timing gateway reports it.
type DriverResult struct {
	Position     int    `json:"position"`
	Driver       string `json:"driver"`
	FullName     string `json:"full_name"`
	Team         string `json:"team"`
	Number       int    `json:"number"`
	GridPosition *int   `json:"grid_position"`
	Status       string `json:"status"`
}

type TrackStatusEvent struct {
	Time       string `json:"time"`
	Status     string `json:"status"`
	StatusCode string `json:"status_code"`
}

type LapRecord struct {
	Driver         string  `json:"driver"`
	Team           string  `json:"team"`
	LapNumber      int     `json:"lap_number"`
	LapTime        string  `json:"lap_time"`
	LapTimeSeconds float64 `json:"lap_time_seconds"`
}

// PitDuration is nil when the pit-out time was not available for the lap.
type PitStopRecord struct {
	Driver      string  `json:"driver"`
	Team        string  `json:"team"`
	LapNumber   int     `json:"lap_number"`
	PitDuration *string `json:"pit_duration"`
}

type RaceControlMessage struct {
	Time     string `json:"time"`
	Message  string `json:"message"`
	Category string `json:"category"`
}

// Snapshot is the derived view served by every read endpoint. A snapshot is
// never mutated after it is published; updates build a fresh one and swap it
// in under the store lock.
type Snapshot struct {
	Positions           []DriverResult       `json:"positions"`
	TrackStatus         []TrackStatusEvent   `json:"track_status"`
	FastestLaps         []LapRecord          `json:"fastest_laps"`
	PitStops            []PitStopRecord      `json:"pit_stops"`
	RaceControlMessages []RaceControlMessage `json:"race_control_messages"`
	LastUpdate          *string              `json:"last_update"`
	IsLive              bool                 `json:"is_live"`
}

func NewSnapshot() Snapshot {
	return Snapshot{
		Positions:           []DriverResult{},
		TrackStatus:         []TrackStatusEvent{},
		FastestLaps:         []LapRecord{},
		PitStops:            []PitStopRecord{},
		RaceControlMessages: []RaceControlMessage{},
	}
}

// SessionLoaded is published on the session-loaded pubsub topic after every
// successful load.
type SessionLoaded struct {
	Year    int    `json:"year"`
	Event   string `json:"event"`
	Kind    string `json:"kind"`
	Drivers int    `json:"drivers"`
}
