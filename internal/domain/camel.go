package domain

const (
	StartLine         = 50.0  // x position every camel returns to at the start of a race
	MaxStamina        = 100.0 // stamina at the start of a race
	StaminaStep       = 0.1   // stamina spent per tick
	FatigueThreshold  = 50.0  // below this stamina a camel is tired
	FatiguePenalty    = 0.95  // speed multiplier applied on a tick while tired
	SpeedVariation    = 0.5   // width of the uniform speed variation band, centred on zero
	FinishMargin      = 150.0 // the finish threshold sits this far from the right edge of the surface
	MaxReferenceSpeed = 5.0   // speed that fills the whole speed bar
	SpeedBarWidth     = 50.0  // width of a full speed bar in pixels
)

// NewCamel returns a camel standing on the start line, rested and without any race history.
func NewCamel(id int, name string, y, baseSpeed float64, color, jockey string) *Camel {
	return &Camel{
		ID:        id,
		Name:      name,
		X:         StartLine,
		Y:         y,
		BaseSpeed: baseSpeed,
		Stamina:   MaxStamina,
		Color:     color,
		Jockey:    jockey,
	}
}

// DefaultRoster returns the four racers of the camel derby ordered by ID. The order matters: ties
// on the finish line are broken in favour of the camel that comes first in the roster.
func DefaultRoster() []*Camel {
	return []*Camel{
		NewCamel(0, "Desert Storm", 80, 2.5, "#8B4513", "👳"),
		NewCamel(1, "Sand Runner", 200, 2.3, "#D2691E", "🧔"),
		NewCamel(2, "Golden Wind", 320, 2.7, "#DAA520", "👨"),
		NewCamel(3, "Oasis King", 440, 2.4, "#CD853F", "🧑"),
	}
}

// Camel domain model represents a single racer: intrinsic data fixed for the lifetime of the roster,
// kinematic state that is only meaningful during a race, and the cumulative race history.
type Camel struct {
	// Intrinsic Data
	ID        int     // ID is stable and unique within the roster
	Name      string  // Name is displayed above the camel and on the result panel
	Y         float64 // Y is the fixed vertical position of the camel's lane
	BaseSpeed float64 // BaseSpeed is the camel's average speed in pixels per tick
	Color     string  // Color is the hex colour of the camel's body
	Jockey    string  // Jockey is the glyph drawn on the camel's back
	// Live race data
	X       float64 // X is the horizontal position; it only grows during a race
	Speed   float64 // Speed is the distance covered on the last tick
	Stamina float64 // Stamina depletes every tick and never grows during a race
	// History
	Stats Stats
}

// Stats is the cumulative race history of a camel.
type Stats struct {
	Wins  int // Wins is the number of races the camel has won
	Races int // Races is the number of completed races the camel has taken part in
}

// WinRate returns the share of completed races that were won, or 0 before the first race.
func (s Stats) WinRate() float64 {
	if s.Races == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Races)
}

// Summary is the read-only view of a camel handed out to callers. It deliberately carries no live
// race data (position, speed or stamina).
type Summary struct {
	ID        int
	Name      string
	Stats     Stats
	BaseSpeed float64
	Jockey    string
}

// Reset puts the camel back on the start line with full stamina, ready for a new race.
func (c *Camel) Reset() {
	c.X = StartLine
	c.Speed = c.BaseSpeed
	c.Stamina = MaxStamina
}

// Step advances the camel by one tick. The variation is added to the base speed, so the fatigue
// penalty never compounds from one tick to the next.
func (c *Camel) Step(variation float64) {
	c.Speed = c.BaseSpeed + variation
	c.Stamina -= StaminaStep
	if c.Stamina < 0 {
		c.Stamina = 0
	}
	if c.Stamina < FatigueThreshold {
		c.Speed *= FatiguePenalty
	}
	c.X += c.Speed
}

// Finished reports whether the camel has reached the finish threshold of a surface of the given
// width.
func (c *Camel) Finished(surfaceWidth float64) bool {
	return c.X >= surfaceWidth-FinishMargin
}

// SpeedBar returns the length in pixels of the speed indicator drawn under the camel.
func (c *Camel) SpeedBar() float64 {
	return c.Speed / MaxReferenceSpeed * SpeedBarWidth
}

// Summary returns the read-only view of the camel.
func (c *Camel) Summary() Summary {
	return Summary{
		ID:        c.ID,
		Name:      c.Name,
		Stats:     c.Stats,
		BaseSpeed: c.BaseSpeed,
		Jockey:    c.Jockey,
	}
}

// Variation maps a value drawn uniformly from [0,1) onto the speed variation band [-0.25, +0.25).
func Variation(r float64) float64 {
	return (r - 0.5) * SpeedVariation
}
