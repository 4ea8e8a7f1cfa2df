package fastf1

import "context"

// Session is a handle to one timed event as served by the timing gateway.
// GetSession returns it unloaded; Load populates the tables. TrackStatus and
// RaceControl are optional feeds and stay nil when the gateway has nothing
// for them.
type Session struct {
	Year  int
	Event string
	Kind  string

	Results     []ResultRow
	Laps        []LapRow
	TrackStatus []TrackStatusRow
	RaceControl []RaceControlRow

	loader func(ctx context.Context, s *Session) error
}

func (s *Session) Load(ctx context.Context) error {
	if s.loader == nil {
		return nil
	}
	return s.loader(ctx, s)
}

type ResultRow struct {
	Position     int    `json:"position"`
	Abbreviation string `json:"abbreviation"`
	FullName     string `json:"full_name"`
	TeamName     string `json:"team_name"`
	DriverNumber int    `json:"driver_number"`
	GridPosition *int   `json:"grid_position,omitempty"`
	Status       string `json:"status"`
}

// LapRow times are seconds. LapTime is absent for in/out laps and deleted
// laps; PitInTime/PitOutTime are session-relative and absent when the car
// did not pit on that lap.
type LapRow struct {
	Driver     string   `json:"driver"`
	Team       string   `json:"team"`
	LapNumber  int      `json:"lap_number"`
	LapTime    *float64 `json:"lap_time,omitempty"`
	PitInTime  *float64 `json:"pit_in_time,omitempty"`
	PitOutTime *float64 `json:"pit_out_time,omitempty"`
}

type TrackStatusRow struct {
	Time   string `json:"time"`
	Status string `json:"status"`
}

type RaceControlRow struct {
	Time     string `json:"time"`
	Message  string `json:"message"`
	Category string `json:"category,omitempty"`
}
