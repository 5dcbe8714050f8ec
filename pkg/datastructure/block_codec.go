package datastructure

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/lintang-b-s/hhroute/pkg/util"
)

const (
	blockMagic = uint32(0x48484231) // "HHB1"

	// smallest edge record: one byte target, one byte weight, flags, min level, level.
	minEdgeRecordSize = 5
)

var ErrCorruptBlock = errors.New("corrupt graph block")

type blockHeader struct {
	Magic       uint32
	FirstVertex uint32
	NumVertices uint32
	PayloadLen  uint32
	Checksum    uint32
}

var blockHeaderSize = binary.Size(blockHeader{})

// graphBlock decoded block: vertices [firstVertex, firstVertex+len(vertices)) and their adjacency.
type graphBlock struct {
	firstVertex Index
	vertices    []*Vertex
	firstEdge   []Index
	edges       []Edge
}

func (b *graphBlock) vertex(v Index) *Vertex {
	return b.vertices[v-b.firstVertex]
}

func (b *graphBlock) adjacentEdges(v Index) []Edge {
	i := v - b.firstVertex
	return b.edges[b.firstEdge[i]:b.firstEdge[i+1]]
}

// encodeBlock. vertex record: top level, neighborhood per level, lat, lon, degree, edge records.
// edge record: target, weight, flags, min level, level. the edge source is implicit.
func encodeBlock(g *StaticGraph, firstVertex, lastVertex Index) []byte {
	payload := make([]byte, 0, 64*int(lastVertex-firstVertex))
	for v := firstVertex; v < lastVertex; v++ {
		vertex := g.vertices[v]
		payload = binary.AppendUvarint(payload, uint64(vertex.level))
		for l := 0; l <= int(vertex.level); l++ {
			payload = binary.AppendUvarint(payload, uint64(vertex.neighborhood[l]))
		}
		payload = binary.AppendVarint(payload, int64(vertex.lat))
		payload = binary.AppendVarint(payload, int64(vertex.lon))

		edges := g.edges[g.firstEdge[v]:g.firstEdge[v+1]]
		payload = binary.AppendUvarint(payload, uint64(len(edges)))
		for _, e := range edges {
			payload = binary.AppendUvarint(payload, uint64(e.target))
			payload = binary.AppendUvarint(payload, uint64(e.weight))
			payload = append(payload, e.flags, e.minLevel, e.level)
		}
	}

	hdr := blockHeader{
		Magic:       blockMagic,
		FirstVertex: uint32(firstVertex),
		NumVertices: uint32(lastVertex - firstVertex),
		PayloadLen:  uint32(len(payload)),
		Checksum:    crc32.ChecksumIEEE(payload),
	}

	buf := make([]byte, blockHeaderSize, blockHeaderSize+len(payload))
	binary.LittleEndian.PutUint32(buf[0:], hdr.Magic)
	binary.LittleEndian.PutUint32(buf[4:], hdr.FirstVertex)
	binary.LittleEndian.PutUint32(buf[8:], hdr.NumVertices)
	binary.LittleEndian.PutUint32(buf[12:], hdr.PayloadLen)
	binary.LittleEndian.PutUint32(buf[16:], hdr.Checksum)
	return append(buf, payload...)
}

type payloadReader struct {
	data []byte
	off  int
	err  error
}

func (r *payloadReader) uvarint() uint64 {
	if r.err != nil {
		return 0
	}
	v, n := binary.Uvarint(r.data[r.off:])
	if n <= 0 {
		r.err = errors.New("bad uvarint")
		return 0
	}
	r.off += n
	return v
}

func (r *payloadReader) varint() int64 {
	if r.err != nil {
		return 0
	}
	v, n := binary.Varint(r.data[r.off:])
	if n <= 0 {
		r.err = errors.New("bad varint")
		return 0
	}
	r.off += n
	return v
}

func (r *payloadReader) readByte() uint8 {
	if r.err != nil {
		return 0
	}
	if r.off >= len(r.data) {
		r.err = errors.New("unexpected end of block")
		return 0
	}
	b := r.data[r.off]
	r.off++
	return b
}

// decodeBlock decode one block, [expectedFirst, expectedLast) is the vertex range the block index promises.
// the header is checked against it before anything is allocated.
func decodeBlock(data []byte, expectedFirst, expectedLast Index, numLevels int) (*graphBlock, error) {
	if len(data) < blockHeaderSize {
		return nil, fmt.Errorf("%w: block of vertex %d truncated", ErrCorruptBlock, expectedFirst)
	}
	hdr := blockHeader{
		Magic:       binary.LittleEndian.Uint32(data[0:]),
		FirstVertex: binary.LittleEndian.Uint32(data[4:]),
		NumVertices: binary.LittleEndian.Uint32(data[8:]),
		PayloadLen:  binary.LittleEndian.Uint32(data[12:]),
		Checksum:    binary.LittleEndian.Uint32(data[16:]),
	}
	if hdr.Magic != blockMagic {
		return nil, fmt.Errorf("%w: block of vertex %d has bad magic %#x", ErrCorruptBlock, expectedFirst, hdr.Magic)
	}
	if Index(hdr.FirstVertex) != expectedFirst {
		return nil, fmt.Errorf("%w: block starts at vertex %d, expected %d", ErrCorruptBlock, hdr.FirstVertex,
			expectedFirst)
	}
	if hdr.NumVertices != uint32(expectedLast-expectedFirst) {
		return nil, fmt.Errorf("%w: block of vertex %d has %d vertices, expected %d", ErrCorruptBlock, expectedFirst,
			hdr.NumVertices, expectedLast-expectedFirst)
	}
	payload := data[blockHeaderSize:]
	if uint32(len(payload)) != hdr.PayloadLen {
		return nil, fmt.Errorf("%w: block of vertex %d payload length %d, expected %d", ErrCorruptBlock,
			expectedFirst, len(payload), hdr.PayloadLen)
	}
	if crc32.ChecksumIEEE(payload) != hdr.Checksum {
		return nil, fmt.Errorf("%w: block of vertex %d checksum mismatch", ErrCorruptBlock, expectedFirst)
	}

	numVertices := int(hdr.NumVertices)
	block := &graphBlock{
		firstVertex: expectedFirst,
		vertices:    make([]*Vertex, numVertices),
		firstEdge:   make([]Index, numVertices+1),
		edges:       make([]Edge, 0, util.MinInt(4*numVertices, len(payload)/minEdgeRecordSize)),
	}

	r := &payloadReader{data: payload}
	for i := 0; i < numVertices; i++ {
		id := expectedFirst + Index(i)
		level := r.uvarint()
		if r.err == nil && int(level) >= numLevels {
			return nil, fmt.Errorf("%w: vertex %d level %d out of range", ErrCorruptBlock, id, level)
		}
		neighborhood := make([]int32, 0, level+1)
		for l := uint64(0); l <= level && r.err == nil; l++ {
			neighborhood = append(neighborhood, int32(r.uvarint()))
		}
		lat := int32(r.varint())
		lon := int32(r.varint())
		block.vertices[i] = newVertexE6(id, uint8(level), neighborhood, lat, lon)

		block.firstEdge[i] = Index(len(block.edges))
		degree := r.uvarint()
		for j := uint64(0); j < degree && r.err == nil; j++ {
			target := Index(r.uvarint())
			weight := uint32(r.uvarint())
			flags := r.readByte()
			minLevel := r.readByte()
			edgeLevel := r.readByte()
			block.edges = append(block.edges, newEdgeWithFlags(id, target, weight, flags, minLevel, edgeLevel))
		}
		if r.err != nil {
			return nil, fmt.Errorf("%w: vertex %d: %v", ErrCorruptBlock, id, r.err)
		}
	}
	block.firstEdge[numVertices] = Index(len(block.edges))
	if r.off != len(payload) {
		return nil, fmt.Errorf("%w: block of vertex %d has %d trailing bytes", ErrCorruptBlock, expectedFirst,
			len(payload)-r.off)
	}
	return block, nil
}
