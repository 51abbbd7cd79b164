// Package formats provides mesh file parsers.
// STL (stereolithography) is the only format wireview loads; both the
// binary and ASCII encodings are supported.
package formats

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
)

// STL format errors.
var (
	ErrTruncatedSTLData = errors.New("truncated STL data")
	ErrMalformedSTL     = errors.New("malformed STL data")
	ErrEmptySTLMesh     = errors.New("STL mesh contains no triangles")
)

const (
	stlHeaderSize   = 80
	stlTriangleSize = 50 // normal (12) + 3 vertices (36) + attribute (2)
)

// Mesh is a parsed triangle mesh. Vertices shared between triangles are
// merged, so Faces index into a deduplicated vertex list. Every face holds
// exactly three valid vertex indices.
type Mesh struct {
	Vertices [][3]float32
	Faces    [][3]int
}

// ParseSTL parses STL data, auto-detecting the binary and ASCII encodings.
func ParseSTL(data []byte) (*Mesh, error) {
	if looksASCII(data) {
		return parseASCIISTL(data)
	}
	return parseBinarySTL(data)
}

// LoadSTL reads and parses an STL file.
func LoadSTL(path string) (*Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading STL file: %w", err)
	}
	mesh, err := ParseSTL(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return mesh, nil
}

// looksASCII reports whether the data is an ASCII STL. The "solid" prefix
// alone is not enough: some binary exporters write it into the 80-byte
// header, so require a "facet" keyword too.
func looksASCII(data []byte) bool {
	head := bytes.TrimLeft(data, " \t\r\n")
	if !bytes.HasPrefix(head, []byte("solid")) {
		return false
	}
	probe := head
	if len(probe) > 512 {
		probe = probe[:512]
	}
	return bytes.Contains(probe, []byte("facet")) || bytes.Contains(probe, []byte("endsolid"))
}

func parseBinarySTL(data []byte) (*Mesh, error) {
	if len(data) < stlHeaderSize+4 {
		return nil, ErrTruncatedSTLData
	}

	count := binary.LittleEndian.Uint32(data[stlHeaderSize:])
	if count == 0 {
		return nil, ErrEmptySTLMesh
	}

	body := data[stlHeaderSize+4:]
	if uint64(len(body)) < uint64(count)*stlTriangleSize {
		return nil, fmt.Errorf("%w: %d triangles declared, %d bytes of data", ErrTruncatedSTLData, count, len(body))
	}

	b := newMeshBuilder()
	for i := uint32(0); i < count; i++ {
		tri := body[i*stlTriangleSize : (i+1)*stlTriangleSize]
		var verts [3][3]float32
		for v := 0; v < 3; v++ {
			// Skip the 12-byte facet normal; wireview recomputes
			// orientation from winding when it needs it
			off := 12 + v*12
			for c := 0; c < 3; c++ {
				bits := binary.LittleEndian.Uint32(tri[off+c*4:])
				verts[v][c] = math32.Float32frombits(bits)
			}
		}
		if err := b.addTriangle(verts); err != nil {
			return nil, fmt.Errorf("triangle %d: %w", i, err)
		}
	}
	return b.mesh(), nil
}

func parseASCIISTL(data []byte) (*Mesh, error) {
	b := newMeshBuilder()

	var (
		verts   [3][3]float32
		nVerts  int
		inLoop  bool
		scanner = bufio.NewScanner(bytes.NewReader(data))
	)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "outer":
			inLoop = true
			nVerts = 0
		case "vertex":
			if !inLoop {
				return nil, fmt.Errorf("%w: vertex outside loop at line %d", ErrMalformedSTL, line)
			}
			if nVerts >= 3 {
				return nil, fmt.Errorf("%w: more than 3 vertices in facet at line %d", ErrMalformedSTL, line)
			}
			if len(fields) != 4 {
				return nil, fmt.Errorf("%w: bad vertex at line %d", ErrMalformedSTL, line)
			}
			for c := 0; c < 3; c++ {
				f, err := strconv.ParseFloat(fields[c+1], 32)
				if err != nil {
					return nil, fmt.Errorf("%w: bad coordinate at line %d: %v", ErrMalformedSTL, line, err)
				}
				verts[nVerts][c] = float32(f)
			}
			nVerts++
		case "endloop":
			if nVerts != 3 {
				return nil, fmt.Errorf("%w: facet with %d vertices at line %d", ErrMalformedSTL, nVerts, line)
			}
			inLoop = false
			if err := b.addTriangle(verts); err != nil {
				return nil, fmt.Errorf("facet ending at line %d: %w", line, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning STL: %w", err)
	}
	if inLoop {
		return nil, fmt.Errorf("%w: unterminated loop", ErrMalformedSTL)
	}
	if len(b.faces) == 0 {
		return nil, ErrEmptySTLMesh
	}
	return b.mesh(), nil
}

// meshBuilder accumulates triangles, merging identical vertices.
type meshBuilder struct {
	verts []([3]float32)
	index map[[3]float32]int
	faces [][3]int
}

func newMeshBuilder() *meshBuilder {
	return &meshBuilder{index: make(map[[3]float32]int)}
}

func (b *meshBuilder) addTriangle(verts [3][3]float32) error {
	var face [3]int
	for i, v := range verts {
		for _, c := range v {
			if math32.IsNaN(c) || math32.IsInf(c, 0) {
				return fmt.Errorf("%w: non-finite vertex coordinate", ErrMalformedSTL)
			}
		}
		idx, ok := b.index[v]
		if !ok {
			idx = len(b.verts)
			b.verts = append(b.verts, v)
			b.index[v] = idx
		}
		face[i] = idx
	}
	b.faces = append(b.faces, face)
	return nil
}

func (b *meshBuilder) mesh() *Mesh {
	return &Mesh{Vertices: b.verts, Faces: b.faces}
}
