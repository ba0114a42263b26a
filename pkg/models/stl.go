package models

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/taigrr/facepull/pkg/math3d"
)

// STLLoader loads STL (stereolithography) files in both ASCII and binary formats.
type STLLoader struct {
	// Options
	SmoothNormals bool // If true, average normals per-vertex for smooth shading
	// KeepSeams keeps one vertex per facet corner instead of merging
	// coincident corners. Extruded boxes need this to keep their
	// per-face vertex copies after a save/load round trip.
	KeepSeams bool
	// MergeTolerance is the grid used to merge coincident corners.
	// Zero merges only exactly equal positions.
	MergeTolerance float64
}

// NewSTLLoader creates a new STL loader with default settings.
func NewSTLLoader() *STLLoader {
	return &STLLoader{}
}

// LoadFile loads an STL file from disk.
func (l *STLLoader) LoadFile(path string) (*Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stl file: %w", err)
	}

	return l.LoadBytes(data, path)
}

// LoadBytes parses STL from a byte slice.
func (l *STLLoader) LoadBytes(data []byte, name string) (*Mesh, error) {
	if isBinarySTL(data) {
		return l.loadBinary(data, name)
	}
	return l.loadASCII(data, name)
}

// Load parses STL from a reader.
// Note: This reads the entire content into memory to detect format.
func (l *STLLoader) Load(r io.Reader, name string) (*Mesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read stl data: %w", err)
	}
	return l.LoadBytes(data, name)
}

// isBinarySTL detects if the data is binary STL format.
// Binary STL starts with 80-byte header, then 4-byte triangle count.
// ASCII STL starts with "solid".
func isBinarySTL(data []byte) bool {
	if len(data) < 84 {
		return false
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if bytes.HasPrefix(trimmed, []byte("solid")) {
		// "solid" may also open a binary header; trust the size check
		triCount := binary.LittleEndian.Uint32(data[80:84])
		return uint64(len(data)) == 84+uint64(triCount)*50
	}

	return true
}

// vertexIndexer adds facet corners to a mesh, merging coincident ones
// unless seams are kept.
type vertexIndexer struct {
	mesh      *Mesh
	seen      map[math3d.GridKey]int
	tolerance float64
	keepSeams bool
}

func (l *STLLoader) newIndexer(mesh *Mesh) *vertexIndexer {
	return &vertexIndexer{
		mesh:      mesh,
		seen:      make(map[math3d.GridKey]int),
		tolerance: l.MergeTolerance,
		keepSeams: l.KeepSeams,
	}
}

func (vi *vertexIndexer) add(pos, normal math3d.Vec3) int {
	if !vi.keepSeams {
		key := math3d.Quantize(pos, vi.tolerance)
		if idx, ok := vi.seen[key]; ok {
			return idx
		}
		vi.seen[key] = len(vi.mesh.Vertices)
	}
	vi.mesh.Vertices = append(vi.mesh.Vertices, MeshVertex{Position: pos, Normal: normal})
	return len(vi.mesh.Vertices) - 1
}

// loadBinary parses binary STL format.
func (l *STLLoader) loadBinary(data []byte, name string) (*Mesh, error) {
	if len(data) < 84 {
		return nil, fmt.Errorf("binary stl too short: %d bytes", len(data))
	}

	// Skip 80-byte header
	triCount := binary.LittleEndian.Uint32(data[80:84])

	expectedSize := 84 + uint64(triCount)*50
	if uint64(len(data)) < expectedSize {
		return nil, fmt.Errorf("binary stl truncated: expected %d bytes, got %d", expectedSize, len(data))
	}

	mesh := NewMesh(name)
	vi := l.newIndexer(mesh)

	offset := 84
	for i := uint32(0); i < triCount; i++ {
		normal := readVec3LE(data[offset:])
		offset += 12

		var faceVerts [3]int
		for v := 0; v < 3; v++ {
			faceVerts[v] = vi.add(readVec3LE(data[offset:]), normal)
			offset += 12
		}

		// Skip 2-byte attribute byte count
		offset += 2

		mesh.Faces = append(mesh.Faces, Face{V: faceVerts})
	}

	l.finish(mesh)
	return mesh, nil
}

func readVec3LE(data []byte) math3d.Vec3 {
	return math3d.V3(
		float64(readFloat32LE(data)),
		float64(readFloat32LE(data[4:])),
		float64(readFloat32LE(data[8:])),
	)
}

// readFloat32LE reads a little-endian float32 from a byte slice.
func readFloat32LE(data []byte) float32 {
	bits := binary.LittleEndian.Uint32(data)
	return math.Float32frombits(bits)
}

func parseVec3(fields []string, lineNum int, what string) (math3d.Vec3, error) {
	var c [3]float64
	for i := range c {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return math3d.Vec3{}, fmt.Errorf("line %d: invalid %s %c: %w", lineNum, what, "xyz"[i], err)
		}
		c[i] = f
	}
	return math3d.V3(c[0], c[1], c[2]), nil
}

// loadASCII parses ASCII STL format.
func (l *STLLoader) loadASCII(data []byte, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	vi := l.newIndexer(mesh)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNum := 0

	var currentNormal math3d.Vec3
	var faceVerts []int
	inFacet := false
	inLoop := false

	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "solid":
			if len(fields) > 1 {
				mesh.Name = fields[1]
			}

		case "facet":
			if len(fields) >= 5 && strings.ToLower(fields[1]) == "normal" {
				n, err := parseVec3(fields[2:5], lineNum, "normal")
				if err != nil {
					return nil, err
				}
				currentNormal = n.Normalize()
			}
			inFacet = true
			faceVerts = nil

		case "outer":
			if len(fields) >= 2 && strings.ToLower(fields[1]) == "loop" {
				inLoop = true
			}

		case "vertex":
			if !inFacet || !inLoop {
				return nil, fmt.Errorf("line %d: vertex outside facet/loop", lineNum)
			}
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs x y z", lineNum)
			}
			pos, err := parseVec3(fields[1:4], lineNum, "vertex")
			if err != nil {
				return nil, err
			}
			faceVerts = append(faceVerts, vi.add(pos, currentNormal))

		case "endloop":
			inLoop = false

		case "endfacet":
			if len(faceVerts) >= 3 {
				mesh.Faces = append(mesh.Faces, Face{
					V: [3]int{faceVerts[0], faceVerts[1], faceVerts[2]},
				})
			}
			inFacet = false
			faceVerts = nil
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ascii stl: %w", err)
	}

	l.finish(mesh)
	return mesh, nil
}

func (l *STLLoader) finish(mesh *Mesh) {
	mesh.CalculateBounds()
	if l.SmoothNormals {
		mesh.CalculateSmoothNormals()
	}
}

// LoadSTL is a convenience function to load an STL file with default settings.
func LoadSTL(path string) (*Mesh, error) {
	return NewSTLLoader().LoadFile(path)
}

// WriteSTL encodes the mesh as binary STL. Facet normals are recomputed from
// the current positions.
func WriteSTL(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)

	header := make([]byte, 80)
	copy(header, "facepull "+m.Name)
	if _, err := bw.Write(header); err != nil {
		return fmt.Errorf("write stl header: %w", err)
	}

	var rec [50]byte
	binary.LittleEndian.PutUint32(rec[:4], uint32(len(m.Faces)))
	if _, err := bw.Write(rec[:4]); err != nil {
		return fmt.Errorf("write stl header: %w", err)
	}

	for i, f := range m.Faces {
		putVec3LE(rec[0:], m.FacetNormal(i))
		for v := 0; v < 3; v++ {
			putVec3LE(rec[12+v*12:], m.Vertices[f.V[v]].Position)
		}
		rec[48], rec[49] = 0, 0
		if _, err := bw.Write(rec[:]); err != nil {
			return fmt.Errorf("write stl facet %d: %w", i, err)
		}
	}
	return bw.Flush()
}

func putVec3LE(dst []byte, v math3d.Vec3) {
	binary.LittleEndian.PutUint32(dst[0:], math.Float32bits(float32(v.X)))
	binary.LittleEndian.PutUint32(dst[4:], math.Float32bits(float32(v.Y)))
	binary.LittleEndian.PutUint32(dst[8:], math.Float32bits(float32(v.Z)))
}

// SaveSTL writes the mesh to path as binary STL.
func SaveSTL(path string, m *Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create stl file: %w", err)
	}
	if err := WriteSTL(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
