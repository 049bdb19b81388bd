package primitive

import (
	"github.com/meshcut/meshcut/pkg/geometry"
	"github.com/meshcut/meshcut/pkg/mesh"
)

// CylinderGenerator produces cutter cylinders from its current parameters
type CylinderGenerator struct {
	params CylinderParams
}

// NewCylinderGenerator creates a generator for p
func NewCylinderGenerator(p CylinderParams) *CylinderGenerator {
	return &CylinderGenerator{params: p}
}

// Params returns the current parameters
func (g *CylinderGenerator) Params() CylinderParams {
	return g.params
}

// SetParams replaces the parameters used by later calls
func (g *CylinderGenerator) SetParams(p CylinderParams) {
	g.params = p
}

// Generate builds the cylinder at the origin along +Z
func (g *CylinderGenerator) Generate() mesh.Mesh {
	return GenerateCylinder(g.params)
}

// GenerateAt builds the cylinder centered at position with its axis along direction
func (g *CylinderGenerator) GenerateAt(position, direction geometry.Vector3) mesh.Mesh {
	return AlignAndPlace(g.Generate(), position, direction)
}
