package datastructure

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/hhroute/pkg"
)

const (
	distanceTableMagic   = "HHDTABLE"
	distanceTableVersion = uint32(1)
	maxTableSize         = 100_000
)

var ErrInvalidDistanceTable = errors.New("invalid distance table")

type distanceTableHeader struct {
	Magic   [8]byte
	Version uint32
	Size    uint32
}

// WriteDistanceTable bzip2 compressed: header, id remap table, row major matrix.
func (dt *DistanceTable) WriteDistanceTable(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}

	w := bufio.NewWriter(bz)

	hdr := distanceTableHeader{Version: distanceTableVersion, Size: uint32(len(dt.ids))}
	copy(hdr.Magic[:], distanceTableMagic)
	if err := binary.Write(w, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	ids := make([]uint32, len(dt.ids))
	for i, v := range dt.ids {
		ids[i] = uint32(v)
	}
	if err := binary.Write(w, binary.LittleEndian, ids); err != nil {
		return fmt.Errorf("write ids: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, dt.dist); err != nil {
		return fmt.Errorf("write matrix: %w", err)
	}

	if err := w.Flush(); err != nil {
		return err
	}
	if err := bz.Close(); err != nil {
		return err
	}
	return f.Close()
}

// ReadDistanceTable reads a table written for g. every table vertex must be a distinct vertex of the top level
// core of g, the matrix is read row by row so a truncated file fails before the full matrix is allocated.
func ReadDistanceTable(filename string, g Graph) (*DistanceTable, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	r := bufio.NewReader(bz)

	var hdr distanceTableHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrInvalidDistanceTable, err)
	}
	if string(hdr.Magic[:]) != distanceTableMagic {
		return nil, fmt.Errorf("%w: invalid magic bytes: %q", ErrInvalidDistanceTable, hdr.Magic)
	}
	if hdr.Version != distanceTableVersion {
		return nil, fmt.Errorf("%w: unsupported version: %d", ErrInvalidDistanceTable, hdr.Version)
	}
	if hdr.Size > maxTableSize || int(hdr.Size) > g.NumberOfVertices() {
		return nil, fmt.Errorf("%w: table size %d exceeds limit %d or the graph's %d vertices",
			ErrInvalidDistanceTable, hdr.Size, maxTableSize, g.NumberOfVertices())
	}

	n := int(hdr.Size)
	ids := make([]uint32, n)
	if err := binary.Read(r, binary.LittleEndian, ids); err != nil {
		return nil, fmt.Errorf("%w: read ids: %v", ErrInvalidDistanceTable, err)
	}

	dt := &DistanceTable{
		ids:   make([]Index, n),
		remap: make(map[Index]int32, n),
	}
	top := uint8(g.NumLevels() - 1)
	for i, id := range ids {
		v := Index(id)
		if int(id) >= g.NumberOfVertices() {
			return nil, fmt.Errorf("%w: vertex %d out of range", ErrInvalidDistanceTable, id)
		}
		if _, ok := dt.remap[v]; ok {
			return nil, fmt.Errorf("%w: duplicate vertex %d", ErrInvalidDistanceTable, id)
		}
		vertex, err := g.GetVertex(v)
		if err != nil {
			return nil, err
		}
		if vertex.GetLevel() != top || vertex.GetNeighborhood(top) != pkg.INFINITY_2 {
			return nil, fmt.Errorf("%w: vertex %d is not in the top level core", ErrInvalidDistanceTable, id)
		}
		dt.ids[i] = v
		dt.remap[v] = int32(i)
	}

	dt.dist = make([]int32, 0, n)
	row := make([]int32, n)
	for i := 0; i < n; i++ {
		if err := binary.Read(r, binary.LittleEndian, row); err != nil {
			return nil, fmt.Errorf("%w: read row %d: %v", ErrInvalidDistanceTable, i, err)
		}
		dt.dist = append(dt.dist, row...)
	}
	return dt, nil
}
