// Package light implements the directional/point/spot light descriptors
// and the ordered registry the shader pipeline reads from while shading.
// The registry is read-only during a draw call; scene logic mutates
// lights only between frames.
package light

import (
	"github.com/chewxy/math32"

	"github.com/swrast-go/swrast/vmath"
)

// Kind distinguishes the three light shapes.
type Kind uint8

const (
	Directional Kind = iota
	Point
	Spot
)

// Light is a single light descriptor. Only the fields relevant to Kind
// are read by the corresponding methods; the rest are ignored.
type Light struct {
	Kind Kind

	// Color is the light's intensity.
	Color vmath.V3

	// Position is used by Point and Spot lights.
	Position vmath.V3

	// Direction is the axis a Directional or Spot light shines along
	// (from the light, not to it).
	Direction vmath.V3

	// Constant, Linear, Quadratic are the point/spot attenuation
	// coefficients: attenuation = 1/(c + l*d + q*d^2).
	Constant, Linear, Quadratic float32

	// InnerCutoff, OuterCutoff are cosines of the spot cone's inner and
	// outer half-angles.
	InnerCutoff, OuterCutoff float32
}

// Intensity returns the light's color/intensity, independent of position.
func (l *Light) Intensity() vmath.V3 { return l.Color }

// DirectionFrom returns the unit vector from fragPos to the light.
func (l *Light) DirectionFrom(fragPos vmath.V3) vmath.V3 {
	switch l.Kind {
	case Point, Spot:
		var d vmath.V3
		d.Sub(l.Position, fragPos)
		var n vmath.V3
		n.Norm(d)
		return n
	default: // Directional
		var n vmath.V3
		neg := vmath.V3{-l.Direction[0], -l.Direction[1], -l.Direction[2]}
		n.Norm(neg)
		return n
	}
}

// Attenuation returns the distance falloff factor at fragPos: 1 for
// Directional lights, 1/(c + l*d + q*d^2) for Point and Spot.
func (l *Light) Attenuation(fragPos vmath.V3) float32 {
	if l.Kind == Directional {
		return 1
	}
	var d vmath.V3
	d.Sub(l.Position, fragPos)
	dist := d.Len()
	denom := l.Constant + l.Linear*dist + l.Quadratic*dist*dist
	if denom <= 0 {
		return 1
	}
	return 1 / denom
}

// Cutoff returns the spotlight cone falloff in [0, 1] for the given
// direction-to-light vector; 1 for Point and Directional lights.
func (l *Light) Cutoff(lightDir vmath.V3) float32 {
	if l.Kind != Spot {
		return 1
	}
	var axis vmath.V3
	neg := vmath.V3{-l.Direction[0], -l.Direction[1], -l.Direction[2]}
	axis.Norm(neg)
	cosTheta := lightDir.Dot(axis)
	denom := l.InnerCutoff - l.OuterCutoff
	if denom <= 0 {
		if cosTheta >= l.OuterCutoff {
			return 1
		}
		return 0
	}
	t := (cosTheta - l.OuterCutoff) / denom
	return math32.Max(0, math32.Min(1, t))
}

// Registry is the ordered set of lights a draw call shades against.
type Registry struct {
	lights []Light
}

// NewRegistry returns an empty light registry.
func NewRegistry() *Registry { return &Registry{} }

// Add appends a light and returns its index.
func (r *Registry) Add(l Light) int {
	r.lights = append(r.lights, l)
	return len(r.lights) - 1
}

// Set replaces the light at index i. Scene logic calls this between
// frames to animate a light (e.g. a rotating point light); callers must
// not call Set while a draw call is in flight.
func (r *Registry) Set(i int, l Light) { r.lights[i] = l }

// Len returns the number of registered lights.
func (r *Registry) Len() int { return len(r.lights) }

// At returns the light at index i.
func (r *Registry) At(i int) *Light { return &r.lights[i] }

// All returns the registry's lights in registration order. The returned
// slice aliases internal storage and must be treated as read-only.
func (r *Registry) All() []Light { return r.lights }
