package dates

import (
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		want string
	}{
		{
			name: "plain date",
			time: time.Date(2024, 6, 15, 13, 45, 0, 0, time.Local),
			want: "2024-06-15",
		},
		{
			name: "zero-padded month and day",
			time: time.Date(2024, 1, 2, 0, 0, 0, 0, time.Local),
			want: "2024-01-02",
		},
		{
			name: "time of day is ignored",
			time: time.Date(2024, 12, 31, 23, 59, 59, 0, time.Local),
			want: "2024-12-31",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.time); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCalendarDayStep(t *testing.T) {
	// Yesterday is a calendar-day step, so stepping back from these dates
	// must cross month, year, and leap-day boundaries correctly.
	tests := []struct {
		name string
		from time.Time
		want string
	}{
		{
			name: "leap day",
			from: time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local),
			want: "2024-02-29",
		},
		{
			name: "non-leap february",
			from: time.Date(2023, 3, 1, 12, 0, 0, 0, time.Local),
			want: "2023-02-28",
		},
		{
			name: "year boundary",
			from: time.Date(2025, 1, 1, 12, 0, 0, 0, time.Local),
			want: "2024-12-31",
		},
		{
			name: "month boundary",
			from: time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local),
			want: "2024-04-30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.from.AddDate(0, 0, -1)); got != tt.want {
				t.Errorf("day before %s = %q, want %q", Format(tt.from), got, tt.want)
			}
		})
	}
}

func TestTodayAndYesterday(t *testing.T) {
	today := Today()
	yesterday := Yesterday()

	if want := Format(time.Now()); today != want {
		t.Errorf("Today() = %q, want %q", today, want)
	}
	if want := Format(time.Now().AddDate(0, 0, -1)); yesterday != want {
		t.Errorf("Yesterday() = %q, want %q", yesterday, want)
	}
	if today == yesterday {
		t.Errorf("Today() and Yesterday() both returned %q", today)
	}
}

func TestIsToday(t *testing.T) {
	tests := []struct {
		name string
		date string
		want bool
	}{
		{name: "empty means never", date: "", want: false},
		{name: "today", date: Today(), want: true},
		{name: "yesterday", date: Yesterday(), want: false},
		{name: "unrelated date", date: "1999-01-01", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsToday(tt.date); got != tt.want {
				t.Errorf("IsToday(%q) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestIsYesterday(t *testing.T) {
	tests := []struct {
		name string
		date string
		want bool
	}{
		{name: "empty means never", date: "", want: false},
		{name: "yesterday", date: Yesterday(), want: true},
		{name: "today", date: Today(), want: false},
		{name: "unrelated date", date: "1999-01-01", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsYesterday(tt.date); got != tt.want {
				t.Errorf("IsYesterday(%q) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}
