package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// LocationKey uniquely identifies a block position across worlds and dimensions.
type LocationKey string

// Location is a block coordinate in a world dimension.
type Location struct {
	World     string
	Dimension int
	X         int
	Y         int
	Z         int
}

// NewLocation creates a Location.
func NewLocation(world string, dimension, x, y, z int) Location {
	return Location{World: world, Dimension: dimension, X: x, Y: y, Z: z}
}

// Key returns the registry key for the location, formatted as world:dimension:x:y:z.
func (l Location) Key() LocationKey {
	var b strings.Builder
	b.Grow(len(l.World) + 24)
	b.WriteString(l.World)
	for _, n := range [...]int{l.Dimension, l.X, l.Y, l.Z} {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(n))
	}
	return LocationKey(b.String())
}

// String returns a human-readable representation of the location.
func (l Location) String() string {
	return fmt.Sprintf("%s at %d, %d, %d", l.World, l.X, l.Y, l.Z)
}

// ParseLocationKey converts a key produced by Location.Key back into a Location.
// World names may themselves contain colons; the last four fields are numeric.
func ParseLocationKey(key LocationKey) (Location, error) {
	parts := strings.Split(string(key), ":")
	if len(parts) < 5 {
		return Location{}, fmt.Errorf("invalid location key %q", key)
	}

	n := len(parts)
	nums := make([]int, 4)
	for i, p := range parts[n-4:] {
		v, err := strconv.Atoi(p)
		if err != nil {
			return Location{}, fmt.Errorf("invalid location key %q: %w", key, err)
		}
		nums[i] = v
	}

	return Location{
		World:     strings.Join(parts[:n-4], ":"),
		Dimension: nums[0],
		X:         nums[1],
		Y:         nums[2],
		Z:         nums[3],
	}, nil
}
