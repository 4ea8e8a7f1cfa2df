package timing

import (
	"f1timingapi/pkg/fastf1"
	"f1timingapi/pkg/helper"
	"sort"
	"time"

	"github.com/pkg/errors"
)

const maxFastestLaps = 10

const greenFlagCode = "1"

// statusNames maps the timing system's track status codes to labels. The
// mapping is total: anything unlisted renders as "Unknown".
var statusNames = map[string]string{
	"1": "Green Flag",
	"2": "Yellow Flag",
	"4": "Safety Car",
	"5": "Red Flag",
	"6": "Virtual Safety Car",
	"7": "VSC Ending",
}

func statusLabel(code string) string {
	if name, ok := statusNames[code]; ok {
		return name
	}
	return "Unknown"
}

// buildSnapshot derives a fresh snapshot from a loaded session. Optional
// feeds (track status, race control, laps) degrade per category: a missing
// table keeps the previous value instead of blocking the other categories.
// A session without a results table aborts the whole pass.
func buildSnapshot(sess *fastf1.Session, prev Snapshot, now time.Time) (Snapshot, error) {
	if sess.Results == nil {
		return prev, errors.New("session has no results table")
	}

	snap := prev

	positions := make([]DriverResult, 0, len(sess.Results))
	for _, row := range sess.Results {
		positions = append(positions, DriverResult{
			Position:     row.Position,
			Driver:       row.Abbreviation,
			FullName:     row.FullName,
			Team:         row.TeamName,
			Number:       row.DriverNumber,
			GridPosition: row.GridPosition,
			Status:       row.Status,
		})
	}
	snap.Positions = positions

	if sess.TrackStatus != nil {
		snap.TrackStatus = extractTrackStatus(sess.TrackStatus)
	}

	if sess.Laps != nil {
		snap.FastestLaps = extractFastestLaps(sess.Laps)
		snap.PitStops = extractPitStops(sess.Laps)
	}

	if sess.RaceControl != nil {
		snap.RaceControlMessages = extractRaceControl(sess.RaceControl)
	}

	ts := now.Format(time.RFC3339)
	snap.LastUpdate = &ts

	return snap, nil
}

// extractTrackStatus keeps only the rows that deviate from the green flag
// baseline.
func extractTrackStatus(rows []fastf1.TrackStatusRow) []TrackStatusEvent {
	events := []TrackStatusEvent{}
	for _, row := range rows {
		if row.Status == greenFlagCode {
			continue
		}
		events = append(events, TrackStatusEvent{
			Time:       row.Time,
			Status:     statusLabel(row.Status),
			StatusCode: row.Status,
		})
	}
	return events
}

func extractFastestLaps(rows []fastf1.LapRow) []LapRecord {
	timed := []fastf1.LapRow{}
	for _, row := range rows {
		if row.LapTime != nil {
			timed = append(timed, row)
		}
	}
	sort.SliceStable(timed, func(i, j int) bool {
		return *timed[i].LapTime < *timed[j].LapTime
	})
	if len(timed) > maxFastestLaps {
		timed = timed[:maxFastestLaps]
	}

	laps := []LapRecord{}
	for _, row := range timed {
		laps = append(laps, LapRecord{
			Driver:         row.Driver,
			Team:           row.Team,
			LapNumber:      row.LapNumber,
			LapTime:        helper.SecondsToMinutes(*row.LapTime),
			LapTimeSeconds: *row.LapTime,
		})
	}
	return laps
}

func extractPitStops(rows []fastf1.LapRow) []PitStopRecord {
	stops := []PitStopRecord{}
	for _, row := range rows {
		if row.PitInTime == nil {
			continue
		}
		var duration *string
		if row.PitOutTime != nil {
			d := helper.SecondsToDuration(*row.PitOutTime - *row.PitInTime)
			duration = &d
		}
		stops = append(stops, PitStopRecord{
			Driver:      row.Driver,
			Team:        row.Team,
			LapNumber:   row.LapNumber,
			PitDuration: duration,
		})
	}
	return stops
}

func extractRaceControl(rows []fastf1.RaceControlRow) []RaceControlMessage {
	messages := []RaceControlMessage{}
	for _, row := range rows {
		category := row.Category
		if category == "" {
			category = "Other"
		}
		messages = append(messages, RaceControlMessage{
			Time:     row.Time,
			Message:  row.Message,
			Category: category,
		})
	}
	return messages
}
