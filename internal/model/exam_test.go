package model

import (
	"testing"
	"time"
)

func TestExamWindow(t *testing.T) {
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	exam := &Exam{
		StartTime:       start,
		DurationMinutes: 30,
	}

	if got, want := exam.EndTime(), start.Add(30*time.Minute); !got.Equal(want) {
		t.Fatalf("EndTime() = %v, want %v", got, want)
	}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before start", start.Add(-time.Second), false},
		{"exactly at start", start, true},
		{"mid window", start.Add(15 * time.Minute), true},
		{"one second before end", start.Add(30*time.Minute - time.Second), true},
		{"exactly at end", start.Add(30 * time.Minute), false},
		{"after end", start.Add(31 * time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exam.IsCurrentlyActive(tt.now); got != tt.want {
				t.Errorf("IsCurrentlyActive(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}
