package timeslot

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      string
		wantError bool
	}{
		{name: "opening time", input: "08:00", want: "08:00"},
		{name: "half hour", input: "14:30", want: "14:30"},
		{name: "missing leading zero", input: "9:00", want: "09:00"},
		{name: "surrounding whitespace", input: " 10:30 ", want: "10:30"},
		{name: "hour out of range", input: "24:00", wantError: true},
		{name: "minute out of range", input: "10:60", wantError: true},
		{name: "no colon", input: "1000", wantError: true},
		{name: "empty", input: "", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, err := Parse(tt.input)
			if tt.wantError {
				if err == nil {
					t.Fatalf("Parse(%q): expected error, got %v", tt.input, slot)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): unexpected error: %v", tt.input, err)
			}
			if slot.String() != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, slot, tt.want)
			}
		})
	}
}

func TestAdd(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		minutes int
		want    string
	}{
		{name: "within the hour", start: "10:00", minutes: 30, want: "10:30"},
		{name: "rolls over the hour", start: "10:30", minutes: 30, want: "11:00"},
		{name: "two slots across the hour", start: "09:30", minutes: 60, want: "10:30"},
		{name: "past closing is not clipped", start: "21:30", minutes: 60, want: "22:30"},
		{name: "past midnight hour keeps counting", start: "23:30", minutes: 60, want: "24:30"},
		{name: "zero minutes", start: "12:00", minutes: 0, want: "12:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, err := Parse(tt.start)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.start, err)
			}
			if got := slot.Add(tt.minutes).String(); got != tt.want {
				t.Errorf("%s + %dmin = %s, want %s", tt.start, tt.minutes, got, tt.want)
			}
		})
	}
}

func TestBeforeAfter(t *testing.T) {
	earlier, _ := Parse("08:00")
	later, _ := Parse("08:30")

	if !earlier.Before(later) {
		t.Error("08:00 should be before 08:30")
	}
	if later.Before(earlier) {
		t.Error("08:30 should not be before 08:00")
	}
	if !later.After(earlier) {
		t.Error("08:30 should be after 08:00")
	}
	if earlier.Before(earlier) {
		t.Error("a slot is not before itself")
	}
}
