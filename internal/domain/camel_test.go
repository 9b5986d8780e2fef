package domain

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func TestCamelStep(t *testing.T) {
	t.Run("Rested", func(t *testing.T) {
		c := NewCamel(0, "Desert Storm", 80, 2.5, "#8B4513", "👳")
		c.Stamina = 60
		c.Step(0.1)
		if math.Abs(c.Speed-2.6) > epsilon {
			t.Errorf("expected speed %f but found %f", 2.6, c.Speed)
		}
		if math.Abs(c.Stamina-59.9) > epsilon {
			t.Errorf("expected stamina %f but found %f", 59.9, c.Stamina)
		}
		if math.Abs(c.X-(StartLine+2.6)) > epsilon {
			t.Errorf("expected x %f but found %f", StartLine+2.6, c.X)
		}
	})
	t.Run("Tired", func(t *testing.T) {
		c := NewCamel(0, "Desert Storm", 80, 2.5, "#8B4513", "👳")
		c.Stamina = 40
		c.Step(0.1)
		want := 2.6 * FatiguePenalty
		if math.Abs(c.Speed-want) > epsilon {
			t.Errorf("expected speed %f but found %f", want, c.Speed)
		}
		if math.Abs(c.X-(StartLine+want)) > epsilon {
			t.Errorf("expected x %f but found %f", StartLine+want, c.X)
		}
	})
	t.Run("PenaltyDoesNotCompound", func(t *testing.T) {
		c := NewCamel(0, "Desert Storm", 80, 2.5, "#8B4513", "👳")
		c.Stamina = 40
		c.Step(0)
		c.Step(0)
		c.Step(0)
		want := 2.5 * FatiguePenalty
		if math.Abs(c.Speed-want) > epsilon {
			t.Errorf("expected speed %f but found %f", want, c.Speed)
		}
	})
	t.Run("StaminaClampedAtZero", func(t *testing.T) {
		c := NewCamel(0, "Desert Storm", 80, 2.5, "#8B4513", "👳")
		c.Stamina = 0.05
		c.Step(0)
		c.Step(0)
		if c.Stamina != 0 {
			t.Errorf("expected stamina %f but found %f", 0.0, c.Stamina)
		}
	})
}

func TestCamelReset(t *testing.T) {
	c := NewCamel(2, "Golden Wind", 320, 2.7, "#DAA520", "👨")
	c.X = 612
	c.Speed = 1.2
	c.Stamina = 12
	c.Stats = Stats{Wins: 1, Races: 3}
	c.Reset()

	if c.X != StartLine {
		t.Errorf("expected x %f but found %f", StartLine, c.X)
	}
	if c.Speed != c.BaseSpeed {
		t.Errorf("expected speed %f but found %f", c.BaseSpeed, c.Speed)
	}
	if c.Stamina != MaxStamina {
		t.Errorf("expected stamina %f but found %f", MaxStamina, c.Stamina)
	}
	if c.Stats != (Stats{Wins: 1, Races: 3}) {
		t.Errorf("expected stats to survive a reset but found %+v", c.Stats)
	}
}

func TestVariation(t *testing.T) {
	tests := []struct {
		r    float64
		want float64
	}{
		{0, -0.25},
		{0.5, 0},
		{0.75, 0.125},
	}
	for _, tt := range tests {
		if got := Variation(tt.r); math.Abs(got-tt.want) > epsilon {
			t.Errorf("expected variation %f for %f but found %f", tt.want, tt.r, got)
		}
	}
	if Variation(0.999999) >= 0.25 {
		t.Errorf("expected variation to stay below 0.25")
	}
}

func TestDefaultRoster(t *testing.T) {
	roster := DefaultRoster()
	if len(roster) != 4 {
		t.Fatalf("expected %d camels but found %d", 4, len(roster))
	}
	for i, c := range roster {
		if c.ID != i {
			t.Errorf("expected id %d at roster index %d but found %d", i, i, c.ID)
		}
		if c.X != StartLine || c.Stamina != MaxStamina {
			t.Errorf("expected %s to start rested on the start line", c.Name)
		}
	}
	if roster[2].Name != "Golden Wind" || roster[2].BaseSpeed != 2.7 {
		t.Errorf("expected Golden Wind with base speed 2.7 but found %s with %f", roster[2].Name, roster[2].BaseSpeed)
	}
}

func TestFinishedAndSpeedBar(t *testing.T) {
	c := NewCamel(1, "Sand Runner", 200, 2.3, "#D2691E", "🧔")
	c.X = 649.9
	if c.Finished(800) {
		t.Errorf("expected camel at %f not to have finished", c.X)
	}
	c.X = 650
	if !c.Finished(800) {
		t.Errorf("expected camel at %f to have finished", c.X)
	}
	c.Speed = 2.5
	if got := c.SpeedBar(); math.Abs(got-25) > epsilon {
		t.Errorf("expected speed bar %f but found %f", 25.0, got)
	}
}

func TestSummaryAndWinRate(t *testing.T) {
	c := NewCamel(3, "Oasis King", 440, 2.4, "#CD853F", "🧑")
	c.Stats = Stats{Wins: 1, Races: 4}
	s := c.Summary()
	if s.ID != 3 || s.Name != "Oasis King" || s.Jockey != "🧑" || s.BaseSpeed != 2.4 {
		t.Errorf("unexpected summary %+v", s)
	}
	if s.Stats.WinRate() != 0.25 {
		t.Errorf("expected win rate %f but found %f", 0.25, s.Stats.WinRate())
	}
	if (Stats{}).WinRate() != 0 {
		t.Errorf("expected win rate 0 before any race")
	}
}
