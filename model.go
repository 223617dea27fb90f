package swrast

import (
	"github.com/swrast-go/swrast/raster"
	"github.com/swrast-go/swrast/scheduler"
	"github.com/swrast-go/swrast/shader"
	"github.com/swrast-go/swrast/vmath"
)

// Submesh is one draw call's worth of geometry within a Model: a mesh
// reference plus the shader program, material, and per-submesh render
// state it draws with.
type Submesh struct {
	MeshID   int
	Program  shader.Program
	Material shader.Material
	Cull     raster.CullMode
	Blend    scheduler.BlendMode
}

// Model is a world-space transform plus the submeshes drawn under it.
// renderModel snapshots Transform into the shader uniforms for every
// submesh before invoking the scheduler.
type Model struct {
	Transform vmath.M4
	Submeshes []Submesh
}

// NewModel returns a Model with the given world transform and no
// submeshes.
func NewModel(transform vmath.M4) *Model {
	return &Model{Transform: transform}
}

// AddSubmesh appends a submesh to the model and returns its index.
func (m *Model) AddSubmesh(s Submesh) int {
	m.Submeshes = append(m.Submeshes, s)
	return len(m.Submeshes) - 1
}
