package utils

import (
	"testing"
	"time"
)

func TestMonotonicClockAdvances(t *testing.T) {
	c := NewMonotonicClock()
	a := c.NowMillis()
	time.Sleep(2 * time.Millisecond)
	b := c.NowMillis()

	if a < 0 {
		t.Errorf("clock should start near zero, got %f", a)
	}
	if b <= a {
		t.Errorf("clock should advance: %f -> %f", a, b)
	}
}

func TestManualClock(t *testing.T) {
	tests := []struct {
		name string
		ops  func(c *ManualClock)
		want float64
	}{
		{"start", func(c *ManualClock) {}, 100},
		{"advance", func(c *ManualClock) { c.Advance(16.5) }, 116.5},
		{"negative advance ignored", func(c *ManualClock) { c.Advance(-50) }, 100},
		{"set forward", func(c *ManualClock) { c.Set(2100) }, 2100},
		{"set backward ignored", func(c *ManualClock) { c.Set(10) }, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewManualClock(100)
			tt.ops(c)
			if got := c.NowMillis(); got != tt.want {
				t.Errorf("NowMillis() = %f, want %f", got, tt.want)
			}
		})
	}
}
