package models

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/wirecube/pkg/math3d"
)

// ErrNoGeometry is returned when a document holds no drawable primitives.
var ErrNoGeometry = errors.New("no drawable geometry")

// GLTFLoader loads GLTF/GLB files into edge meshes.
type GLTFLoader struct {
	// FitSize, when positive, centers the result on the origin and scales
	// its largest dimension to FitSize.
	FitSize float32
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{FitSize: 2}
}

// LoadGLB loads a binary GLTF (.glb) file with default options.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file and returns its edges as a Mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return l.FromDocument(doc, filepath.Base(path))
}

// FromDocument extracts the edges of every mesh in an already decoded
// document. Triangle primitives contribute their three edges, line
// primitives their segments; point primitives are skipped.
func (l *GLTFLoader) FromDocument(doc *gltf.Document, name string) (*Mesh, error) {
	mesh := NewMesh(name)

	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	if mesh.EdgeCount() == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNoGeometry)
	}

	if l.FitSize > 0 {
		mesh.Fit(l.FitSize)
	} else {
		mesh.CalculateBounds()
	}

	return mesh, nil
}

// processMesh extracts geometry from a GLTF mesh.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode == gltf.PrimitivePoints {
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		baseVertex := len(mesh.Vertices)
		for _, p := range positions {
			mesh.AddVertex(p)
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, vertices are used in order
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}
		for i := range indices {
			if indices[i] < 0 || indices[i] >= len(positions) {
				return fmt.Errorf("index %d out of range (%d vertices)", indices[i], len(positions))
			}
			indices[i] += baseVertex
		}

		addPrimitiveEdges(mesh, prim.Mode, indices)
	}

	return nil
}

// addPrimitiveEdges walks indices according to the primitive topology.
func addPrimitiveEdges(mesh *Mesh, mode gltf.PrimitiveMode, idx []int) {
	switch mode {
	case gltf.PrimitiveTriangles:
		for i := 0; i+2 < len(idx); i += 3 {
			mesh.AddTriangle(idx[i], idx[i+1], idx[i+2])
		}
	case gltf.PrimitiveTriangleStrip:
		for i := 0; i+2 < len(idx); i++ {
			mesh.AddTriangle(idx[i], idx[i+1], idx[i+2])
		}
	case gltf.PrimitiveTriangleFan:
		for i := 1; i+1 < len(idx); i++ {
			mesh.AddTriangle(idx[0], idx[i], idx[i+1])
		}
	case gltf.PrimitiveLines:
		for i := 0; i+1 < len(idx); i += 2 {
			mesh.AddEdge(idx[i], idx[i+1])
		}
	case gltf.PrimitiveLineStrip, gltf.PrimitiveLineLoop:
		for i := 0; i+1 < len(idx); i++ {
			mesh.AddEdge(idx[i], idx[i+1])
		}
		if mode == gltf.PrimitiveLineLoop && len(idx) > 2 {
			mesh.AddEdge(idx[len(idx)-1], idx[0])
		}
	}
}

// accessor returns the accessor at idx. Sparse substitutions are checked
// against the accessor's element count before any data is read.
func accessor(doc *gltf.Document, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	acr := doc.Accessors[idx]
	if acr.Sparse != nil {
		sparse, err := modeler.ReadIndices(doc, &gltf.Accessor{
			ComponentType: acr.Sparse.Indices.ComponentType,
			Count:         acr.Sparse.Count,
			Type:          gltf.AccessorScalar,
			BufferView:    gltf.Index(acr.Sparse.Indices.BufferView),
			ByteOffset:    acr.Sparse.Indices.ByteOffset,
		}, nil)
		if err != nil {
			return nil, fmt.Errorf("read sparse indices: %w", err)
		}
		for _, i := range sparse {
			if int(i) >= acr.Count {
				return nil, fmt.Errorf("sparse index %d out of range (%d elements)", i, acr.Count)
			}
		}
	}
	return acr, nil
}

// readVec3Accessor reads float VEC3 data from a GLTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	acr, err := accessor(doc, accessorIdx)
	if err != nil {
		return nil, err
	}
	data, err := modeler.ReadPosition(doc, acr, nil)
	if err != nil {
		return nil, err
	}

	result := make([]math3d.Vec3, len(data))
	for i, p := range data {
		result[i] = math3d.V3(p[0], p[1], p[2])
	}
	return result, nil
}

// readIndices reads scalar index data from a GLTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	acr, err := accessor(doc, accessorIdx)
	if err != nil {
		return nil, err
	}
	data, err := modeler.ReadIndices(doc, acr, nil)
	if err != nil {
		return nil, err
	}

	result := make([]int, len(data))
	for i, x := range data {
		result[i] = int(x)
	}
	return result, nil
}
