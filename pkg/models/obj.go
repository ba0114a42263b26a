package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/taigrr/facepull/pkg/math3d"
)

// OBJLoader loads Wavefront OBJ files.
type OBJLoader struct {
	// Options
	CalculateNormals bool // If true, calculate normals if not provided
	SmoothNormals    bool // If true, use smooth shading (averaged normals)
}

// NewOBJLoader creates a new OBJ loader with default settings.
func NewOBJLoader() *OBJLoader {
	return &OBJLoader{
		CalculateNormals: true,
	}
}

// LoadFile loads an OBJ file from disk.
func (l *OBJLoader) LoadFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj file: %w", err)
	}
	defer f.Close()

	return l.Load(f, path)
}

// Load parses an OBJ from a reader. Texture coordinates are skipped.
func (l *OBJLoader) Load(r io.Reader, name string) (*Mesh, error) {
	mesh := NewMesh(name)

	// OBJ data is 1-indexed
	var positions []math3d.Vec3
	var normals []math3d.Vec3

	// OBJ indexes positions and normals separately; a mesh vertex is one pair
	type vertexKey struct {
		pos, normal int
	}
	vertexMap := make(map[vertexKey]int)

	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: invalid vertex (need x y z)", lineNum)
			}
			p, err := parseVec3(fields[1:4], lineNum, "coordinate")
			if err != nil {
				return nil, err
			}
			positions = append(positions, p)

		case "vn":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: invalid normal (need x y z)", lineNum)
			}
			n, err := parseVec3(fields[1:4], lineNum, "normal")
			if err != nil {
				return nil, err
			}
			normals = append(normals, n.Normalize())

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNum)
			}

			var faceVerts []int
			for i := 1; i < len(fields); i++ {
				posIdx, normalIdx, err := parseFaceVertex(fields[i])
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNum, err)
				}

				posIdx = resolveIndex(posIdx, len(positions))
				normalIdx = resolveIndex(normalIdx, len(normals))

				if posIdx < 0 || posIdx >= len(positions) {
					return nil, fmt.Errorf("line %d: position index %d out of range", lineNum, posIdx+1)
				}

				key := vertexKey{posIdx, normalIdx}
				vertIdx, exists := vertexMap[key]
				if !exists {
					vert := MeshVertex{Position: positions[posIdx]}
					if normalIdx >= 0 && normalIdx < len(normals) {
						vert.Normal = normals[normalIdx]
					}
					vertIdx = len(mesh.Vertices)
					mesh.Vertices = append(mesh.Vertices, vert)
					vertexMap[key] = vertIdx
				}
				faceVerts = append(faceVerts, vertIdx)
			}

			// Fan triangulation for convex polygons
			for i := 1; i < len(faceVerts)-1; i++ {
				mesh.Faces = append(mesh.Faces, Face{
					V: [3]int{faceVerts[0], faceVerts[i], faceVerts[i+1]},
				})
			}

		case "o", "g":
			if len(fields) > 1 {
				mesh.Name = fields[1]
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	mesh.CalculateBounds()

	if l.CalculateNormals && len(normals) == 0 {
		if l.SmoothNormals {
			mesh.CalculateSmoothNormals()
		} else {
			mesh.CalculateNormals()
		}
	}

	return mesh, nil
}

// parseFaceVertex parses a face vertex in format: v, v/vt, v/vt/vn, or v//vn
// Returns 1-indexed values (0 means not specified)
func parseFaceVertex(s string) (pos, normal int, err error) {
	parts := strings.Split(s, "/")

	pos, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid vertex index: %s", parts[0])
	}

	if len(parts) > 1 && parts[1] != "" {
		if _, err := strconv.Atoi(parts[1]); err != nil {
			return 0, 0, fmt.Errorf("invalid texture index: %s", parts[1])
		}
	}

	if len(parts) > 2 && parts[2] != "" {
		normal, err = strconv.Atoi(parts[2])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid normal index: %s", parts[2])
		}
	}

	return pos, normal, nil
}

// resolveIndex converts OBJ 1-indexed (or negative) index to 0-indexed.
// Returns -1 if index was 0 (not specified).
func resolveIndex(idx, count int) int {
	if idx == 0 {
		return -1
	}
	if idx < 0 {
		return count + idx // Negative indices count from end
	}
	return idx - 1
}

// LoadOBJ is a convenience function to load an OBJ file with default settings.
func LoadOBJ(path string) (*Mesh, error) {
	return NewOBJLoader().LoadFile(path)
}

// WriteOBJ encodes the mesh as Wavefront OBJ with one v line per vertex, in
// vertex order, and one triangle per f line. Coordinates are written with
// full float64 precision.
func WriteOBJ(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)
	ff := func(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

	fmt.Fprintf(bw, "# facepull\no %s\n", objName(m.Name))
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %s %s %s\n", ff(v.Position.X), ff(v.Position.Y), ff(v.Position.Z))
	}
	for _, f := range m.Faces {
		fmt.Fprintf(bw, "f %d %d %d\n", f.V[0]+1, f.V[1]+1, f.V[2]+1)
	}
	return bw.Flush()
}

func objName(name string) string {
	name = strings.Join(strings.Fields(name), "_")
	if name == "" {
		return "mesh"
	}
	return name
}

// SaveOBJ writes the mesh to path as Wavefront OBJ.
func SaveOBJ(path string, m *Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create obj file: %w", err)
	}
	if err := WriteOBJ(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
