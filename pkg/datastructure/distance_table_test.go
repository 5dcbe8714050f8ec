package datastructure

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/hhroute/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceTable(t *testing.T) {
	dt := NewDistanceTable([]Index{10, 4, 7})
	assert.Equal(t, 3, dt.Size())
	assert.True(t, dt.Contains(4))
	assert.False(t, dt.Contains(5))

	// unset pairs are unreachable
	assert.Equal(t, pkg.UNREACHABLE, dt.Get(10, 7))

	dt.Set(10, 7, 12)
	dt.SetRow(1, []int32{3, 0, pkg.UNREACHABLE})
	assert.Equal(t, 12, dt.Get(10, 7))
	assert.Equal(t, pkg.UNREACHABLE, dt.Get(7, 10))
	assert.Equal(t, 3, dt.Get(4, 10))
	assert.Equal(t, 0, dt.Get(4, 4))
	assert.Equal(t, pkg.UNREACHABLE, dt.Get(4, 7))

	// non members
	assert.Equal(t, pkg.UNREACHABLE, dt.Get(5, 10))
	assert.Equal(t, pkg.UNREACHABLE, dt.Get(10, 5))
	dt.Set(5, 10, 1)

	i, ok := dt.IndexOf(7)
	assert.True(t, ok)
	assert.Equal(t, 2, i)
}

// coreGraph n isolated vertices on two levels, the given ones in the top level core.
func coreGraph(t *testing.T, n int, core ...Index) *StaticGraph {
	t.Helper()
	inCore := make(map[Index]bool, len(core))
	for _, v := range core {
		inCore[v] = true
	}
	b := NewGraphBuilder()
	for v := Index(0); int(v) < n; v++ {
		if inCore[v] {
			b.AddVertex([]int{1, pkg.INFINITY_2}, 0, 0)
			continue
		}
		b.AddVertex([]int{1, pkg.INFINITY_1}, 0, 0)
	}
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

// writeRawDistanceTable bzip2 stream of the header, ids and the first rows of a table.
func writeRawDistanceTable(t *testing.T, path string, size uint32, ids []uint32, rows [][]int32) {
	t.Helper()
	var buf bytes.Buffer
	bz, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{})
	require.NoError(t, err)

	hdr := distanceTableHeader{Version: distanceTableVersion, Size: size}
	copy(hdr.Magic[:], distanceTableMagic)
	require.NoError(t, binary.Write(bz, binary.LittleEndian, &hdr))
	if len(ids) > 0 {
		require.NoError(t, binary.Write(bz, binary.LittleEndian, ids))
	}
	for _, row := range rows {
		require.NoError(t, binary.Write(bz, binary.LittleEndian, row))
	}
	require.NoError(t, bz.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestWriteReadDistanceTable(t *testing.T) {
	ids := []Index{3, 9, 27, 81}
	dt := NewDistanceTable(ids)
	for i, a := range ids {
		for j, b := range ids {
			if (i+j)%3 == 0 {
				continue
			}
			dt.Set(a, b, i*100+j)
		}
	}

	path := filepath.Join(t.TempDir(), "hh.dtable")
	require.NoError(t, dt.WriteDistanceTable(path))

	read, err := ReadDistanceTable(path, coreGraph(t, 90, ids...))
	require.NoError(t, err)
	assert.Equal(t, dt.GetIds(), read.GetIds())
	for _, a := range ids {
		for _, b := range ids {
			assert.Equal(t, dt.Get(a, b), read.Get(a, b), "%d -> %d", a, b)
		}
	}
}

func TestReadDistanceTableRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.dtable")
	require.NoError(t, os.WriteFile(path, []byte("definitely not bzip2"), 0o644))

	_, err := ReadDistanceTable(path, coreGraph(t, 4, 1))
	assert.Error(t, err)
}

func TestReadDistanceTableChecksGraph(t *testing.T) {
	g := coreGraph(t, 10, 1, 4, 7)
	dir := t.TempDir()

	tests := []struct {
		name string
		size uint32
		ids  []uint32
		rows [][]int32
	}{
		{"larger than the graph", 1 << 16, nil, nil},
		{"above the size limit", 0xFFFFFFFF, nil, nil},
		{"vertex out of range", 2, []uint32{1, 10}, nil},
		{"duplicate vertex", 2, []uint32{4, 4}, nil},
		{"vertex not in core", 2, []uint32{1, 2}, nil},
		{"truncated ids", 3, []uint32{1, 4}, nil},
		{"truncated matrix", 3, []uint32{1, 4, 7}, [][]int32{{0, 1, 2}, {3, 0, 4}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".dtable")
			writeRawDistanceTable(t, path, tt.size, tt.ids, tt.rows)

			_, err := ReadDistanceTable(path, g)
			assert.ErrorIs(t, err, ErrInvalidDistanceTable)
		})
	}

	path := filepath.Join(dir, "complete.dtable")
	writeRawDistanceTable(t, path, 3, []uint32{1, 4, 7}, [][]int32{{0, 1, 2}, {3, 0, 4}, {5, 6, 0}})
	dt, err := ReadDistanceTable(path, g)
	require.NoError(t, err)
	assert.Equal(t, 4, dt.Get(4, 7))
	assert.Equal(t, 5, dt.Get(7, 1))
}
