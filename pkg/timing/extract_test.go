package timing

import (
	"f1timingapi/pkg/fastf1"
	"testing"
	"time"
)

func f(v float64) *float64 { return &v }

func TestStatusLabelIsTotal(t *testing.T) {
	known := map[string]string{
		"1": "Green Flag",
		"2": "Yellow Flag",
		"4": "Safety Car",
		"5": "Red Flag",
		"6": "Virtual Safety Car",
		"7": "VSC Ending",
	}
	for code, want := range known {
		if got := statusLabel(code); got != want {
			t.Errorf("statusLabel(%q) = %q, want %q", code, got, want)
		}
	}
	for _, code := range []string{"3", "8", "99", "", "x"} {
		if got := statusLabel(code); got != "Unknown" {
			t.Errorf("statusLabel(%q) = %q, want Unknown", code, got)
		}
	}
}

func TestExtractTrackStatusDropsGreenFlag(t *testing.T) {
	rows := []fastf1.TrackStatusRow{
		{Time: "0:00:00", Status: "1"},
		{Time: "0:12:03", Status: "2"},
		{Time: "0:14:10", Status: "1"},
		{Time: "0:55:41", Status: "4"},
		{Time: "1:02:00", Status: "9"},
	}
	events := extractTrackStatus(rows)
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].Status != "Yellow Flag" || events[0].StatusCode != "2" {
		t.Errorf("unexpected first event: %+v", events[0])
	}
	if events[2].Status != "Unknown" {
		t.Errorf("expected Unknown label for code 9, got %q", events[2].Status)
	}
}

func TestExtractFastestLapsSortedAndCapped(t *testing.T) {
	rows := []fastf1.LapRow{}
	for i := 0; i < 15; i++ {
		rows = append(rows, fastf1.LapRow{
			Driver:    "VER",
			Team:      "Red Bull Racing",
			LapNumber: i + 1,
			LapTime:   f(100.0 - float64(i)),
		})
	}
	// laps without a time are ignored
	rows = append(rows, fastf1.LapRow{Driver: "HAM", LapNumber: 16})

	laps := extractFastestLaps(rows)
	if len(laps) != 10 {
		t.Fatalf("expected 10 laps, got %d", len(laps))
	}
	for i := 1; i < len(laps); i++ {
		if laps[i].LapTimeSeconds < laps[i-1].LapTimeSeconds {
			t.Fatalf("laps not sorted ascending at index %d", i)
		}
	}
	if laps[0].LapTimeSeconds != 86.0 {
		t.Errorf("expected fastest lap 86.0, got %f", laps[0].LapTimeSeconds)
	}
	if laps[0].LapTime != "01:26.000" {
		t.Errorf("unexpected formatted lap time %q", laps[0].LapTime)
	}
}

func TestExtractPitStops(t *testing.T) {
	rows := []fastf1.LapRow{
		{Driver: "VER", Team: "Red Bull Racing", LapNumber: 1, LapTime: f(90)},
		{Driver: "VER", Team: "Red Bull Racing", LapNumber: 18, PitInTime: f(1620.5), PitOutTime: f(1643.7)},
		{Driver: "LEC", Team: "Ferrari", LapNumber: 20, PitInTime: f(1800.0)},
	}
	stops := extractPitStops(rows)
	if len(stops) != 2 {
		t.Fatalf("expected 2 pit stops, got %d", len(stops))
	}
	if stops[0].PitDuration == nil || *stops[0].PitDuration != "23.200s" {
		t.Errorf("unexpected pit duration: %+v", stops[0].PitDuration)
	}
	if stops[1].PitDuration != nil {
		t.Errorf("expected nil duration without pit-out time, got %q", *stops[1].PitDuration)
	}
}

func TestExtractRaceControlDefaultsCategory(t *testing.T) {
	rows := []fastf1.RaceControlRow{
		{Time: "0:10:00", Message: "YELLOW IN SECTOR 7", Category: "Flag"},
		{Time: "0:11:00", Message: "CAR 4 UNDER INVESTIGATION"},
	}
	messages := extractRaceControl(rows)
	if messages[0].Category != "Flag" {
		t.Errorf("unexpected category %q", messages[0].Category)
	}
	if messages[1].Category != "Other" {
		t.Errorf("expected Other as default category, got %q", messages[1].Category)
	}
}

func TestBuildSnapshotWithoutResultsAborts(t *testing.T) {
	prev := NewSnapshot()
	prev.Positions = []DriverResult{{Position: 1, Driver: "VER"}}

	_, err := buildSnapshot(&fastf1.Session{}, prev, time.Now())
	if err == nil {
		t.Fatal("expected error for session without results")
	}
}

func TestBuildSnapshotRetainsOptionalCategories(t *testing.T) {
	prev := NewSnapshot()
	prev.TrackStatus = []TrackStatusEvent{{Time: "0:05:00", Status: "Red Flag", StatusCode: "5"}}
	prev.RaceControlMessages = []RaceControlMessage{{Time: "0:05:00", Message: "RED FLAG", Category: "Flag"}}

	sess := &fastf1.Session{
		Results: []fastf1.ResultRow{
			{Position: 1, Abbreviation: "VER", FullName: "Max Verstappen", TeamName: "Red Bull Racing", DriverNumber: 1, Status: "Finished"},
			{Position: 2, Abbreviation: "NOR", FullName: "Lando Norris", TeamName: "McLaren", DriverNumber: 4, Status: "Finished"},
		},
	}

	snap, err := buildSnapshot(sess, prev, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Positions) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(snap.Positions))
	}
	if len(snap.TrackStatus) != 1 || snap.TrackStatus[0].StatusCode != "5" {
		t.Errorf("track status not retained: %+v", snap.TrackStatus)
	}
	if len(snap.RaceControlMessages) != 1 {
		t.Errorf("race control messages not retained: %+v", snap.RaceControlMessages)
	}
	if snap.LastUpdate == nil {
		t.Error("expected last update to be set")
	}
}
