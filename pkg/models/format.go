package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// LoadFile loads a mesh, picking the format from the file extension
// (.stl, .obj, .glb or .gltf). Coincident corners are kept apart so face
// layouts survive a round trip.
func LoadFile(path string) (*Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		l := NewSTLLoader()
		l.KeepSeams = true
		return l.LoadFile(path)
	case ".obj":
		return LoadOBJ(path)
	case ".glb", ".gltf":
		return LoadGLB(path)
	default:
		return nil, fmt.Errorf("unsupported mesh format %q", ext)
	}
}

// SaveFile writes a mesh, picking the format from the file extension
// (.stl, .obj or .glb).
func SaveFile(path string, m *Mesh) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		return SaveSTL(path, m)
	case ".obj":
		return SaveOBJ(path, m)
	case ".glb":
		return SaveGLB(path, m)
	default:
		return fmt.Errorf("unsupported mesh format %q", ext)
	}
}
