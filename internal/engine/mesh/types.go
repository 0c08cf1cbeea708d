// Package mesh builds the indexed triangle meshes used by the bridge fixtures.
package mesh

// Vertex is a mesh vertex with position and normal.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// Mesh holds mesh data ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

func (m *Mesh) addVertex(position, normal [3]float32) uint32 {
	m.Vertices = append(m.Vertices, Vertex{Position: position, Normal: normal})
	return uint32(len(m.Vertices) - 1)
}

// addQuad adds two counter-clockwise triangles a-b-d and b-c-d.
func (m *Mesh) addQuad(a, b, c, d uint32) {
	m.Indices = append(m.Indices, a, b, d, b, c, d)
}

// computeBounds recomputes Bounds from the vertices.
func (m *Mesh) computeBounds() {
	if len(m.Vertices) == 0 {
		m.Bounds = Bounds{}
		return
	}
	b := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
	for _, v := range m.Vertices {
		for i := 0; i < 3; i++ {
			if v.Position[i] < b.Min[i] {
				b.Min[i] = v.Position[i]
			}
			if v.Position[i] > b.Max[i] {
				b.Max[i] = v.Position[i]
			}
		}
	}
	m.Bounds = b
}
