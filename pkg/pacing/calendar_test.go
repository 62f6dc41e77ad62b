package pacing

import (
	"testing"
	"time"

	"github.com/inkpace/inkpace/pkg/goal"
)

var allDays = [7]bool{true, true, true, true, true, true, true}
var weekdaysOnly = [7]bool{true, true, true, true, true, false, false}

func TestIsWritingDay(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		g    goal.Goal
		want bool
	}{
		{
			name: "Monday with all days enabled",
			date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), // Monday
			g:    goal.Goal{WritingDays: allDays},
			want: true,
		},
		{
			name: "Saturday excluded by weekday pattern",
			date: time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC), // Saturday
			g:    goal.Goal{WritingDays: weekdaysOnly},
			want: false,
		},
		{
			name: "Sunday maps to the last slot of the Monday-first pattern",
			date: time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), // Sunday
			g:    goal.Goal{WritingDays: [7]bool{false, false, false, false, false, false, true}},
			want: true,
		},
		{
			name: "Day off wins over an enabled weekday",
			date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			g: goal.Goal{
				WritingDays: allDays,
				DaysOff:     []string{"2026-03-02"},
			},
			want: false,
		},
		{
			name: "Day off on an already disabled weekday stays excluded",
			date: time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
			g: goal.Goal{
				WritingDays: weekdaysOnly,
				DaysOff:     []string{"2026-03-07"},
			},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWritingDay(tt.date, tt.g); got != tt.want {
				t.Errorf("IsWritingDay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCountWritingDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		g     goal.Goal
		want  int
	}{
		{
			name:  "Inclusive range with all days enabled",
			start: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
			g:     goal.Goal{WritingDays: allDays},
			want:  30,
		},
		{
			name:  "Single day range",
			start: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			g:     goal.Goal{WritingDays: allDays},
			want:  1,
		},
		{
			name:  "Start after end returns zero",
			start: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			g:     goal.Goal{WritingDays: allDays},
			want:  0,
		},
		{
			name:  "Weekends excluded from a full week",
			start: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), // Monday
			end:   time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), // Sunday
			g:     goal.Goal{WritingDays: weekdaysOnly},
			want:  5,
		},
		{
			name:  "Days off removed from the count",
			start: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
			g: goal.Goal{
				WritingDays: allDays,
				DaysOff:     []string{"2026-03-04", "2026-03-05"},
			},
			want: 5,
		},
		{
			name:  "No weekdays enabled yields zero",
			start: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
			g:     goal.Goal{},
			want:  0,
		},
		{
			name:  "Time of day is ignored",
			start: time.Date(2026, 3, 2, 23, 59, 0, 0, time.UTC),
			end:   time.Date(2026, 3, 4, 0, 1, 0, 0, time.UTC),
			g:     goal.Goal{WritingDays: allDays},
			want:  3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountWritingDays(tt.start, tt.end, tt.g); got != tt.want {
				t.Errorf("CountWritingDays() = %v, want %v", got, tt.want)
			}
		})
	}
}
