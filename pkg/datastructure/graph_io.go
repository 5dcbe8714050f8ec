package datastructure

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"
)

const (
	graphMagicBytes = "HHGRAPH1"
	graphVersion    = uint32(1)

	maxVertices = 50_000_000
	maxLevels   = 32

	flagDowngradedEdges = uint32(1)

	DefaultVerticesPerBlock = 256
)

var ErrInvalidGraphFile = errors.New("invalid graph file")

// graphFileHeader. followed by NumBlocks blockIndexEntry, the crc32 of header and index, and the blocks.
type graphFileHeader struct {
	Magic            [8]byte
	Version          uint32
	NumVertices      uint32
	NumEdges         uint32
	NumLevels        uint32
	VerticesPerBlock uint32
	NumBlocks        uint32
	Flags            uint32
}

type blockIndexEntry struct {
	Offset uint64
	Length uint32
}

type graphFile struct {
	header graphFileHeader
	index  []blockIndexEntry
}

func (gf *graphFile) blockRange(b uint32) (Index, Index) {
	first := Index(b * gf.header.VerticesPerBlock)
	last := first + Index(gf.header.VerticesPerBlock)
	if last > Index(gf.header.NumVertices) {
		last = Index(gf.header.NumVertices)
	}
	return first, last
}

func (gf *graphFile) properties() GraphProperties {
	return GraphProperties{DowngradedEdges: gf.header.Flags&flagDowngradedEdges != 0}
}

type crc32Writer struct {
	w    io.Writer
	hash hashWriter
}

type hashWriter interface {
	io.Writer
	Sum32() uint32
}

func (cw *crc32Writer) Write(p []byte) (int, error) {
	cw.hash.Write(p)
	return cw.w.Write(p)
}

// WriteGraph writes g in the block paged format, verticesPerBlock consecutive vertex ids per block.
// the file is written to a temporary path and renamed when complete.
func (g *StaticGraph) WriteGraph(path string, verticesPerBlock int) error {
	if verticesPerBlock <= 0 {
		verticesPerBlock = DefaultVerticesPerBlock
	}
	numVertices := len(g.vertices)
	numBlocks := (numVertices + verticesPerBlock - 1) / verticesPerBlock

	blocks := make([][]byte, numBlocks)
	for b := 0; b < numBlocks; b++ {
		first := b * verticesPerBlock
		last := first + verticesPerBlock
		if last > numVertices {
			last = numVertices
		}
		blocks[b] = encodeBlock(g, Index(first), Index(last))
	}

	hdr := graphFileHeader{
		Version:          graphVersion,
		NumVertices:      uint32(numVertices),
		NumEdges:         uint32(len(g.edges)),
		NumLevels:        uint32(g.numLevels),
		VerticesPerBlock: uint32(verticesPerBlock),
		NumBlocks:        uint32(numBlocks),
	}
	copy(hdr.Magic[:], graphMagicBytes)
	if g.properties.DowngradedEdges {
		hdr.Flags |= flagDowngradedEdges
	}

	offset := uint64(binary.Size(hdr) + numBlocks*binary.Size(blockIndexEntry{}) + 4)
	index := make([]blockIndexEntry, numBlocks)
	for b, data := range blocks {
		index[b] = blockIndexEntry{Offset: offset, Length: uint32(len(data))}
		offset += uint64(len(data))
	}

	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(tmpPath)
	}()

	bw := bufio.NewWriter(f)
	cw := &crc32Writer{w: bw, hash: crc32.NewIEEE()}

	if err := binary.Write(cw, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := binary.Write(cw, binary.LittleEndian, index); err != nil {
		return fmt.Errorf("write block index: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, cw.hash.Sum32()); err != nil {
		return fmt.Errorf("write header CRC32: %w", err)
	}
	for b, data := range blocks {
		if _, err := bw.Write(data); err != nil {
			return fmt.Errorf("write block %d: %w", b, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// readGraphFileHeader reads and validates the header and block index.
func readGraphFileHeader(r io.Reader) (*graphFile, error) {
	cr := &crc32Reader{r: r, hash: crc32.NewIEEE()}

	var hdr graphFileHeader
	if err := binary.Read(cr, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrInvalidGraphFile, err)
	}
	if string(hdr.Magic[:]) != graphMagicBytes {
		return nil, fmt.Errorf("%w: invalid magic bytes: %q", ErrInvalidGraphFile, hdr.Magic)
	}
	if hdr.Version != graphVersion {
		return nil, fmt.Errorf("%w: unsupported version: %d", ErrInvalidGraphFile, hdr.Version)
	}
	if hdr.NumVertices > maxVertices {
		return nil, fmt.Errorf("%w: NumVertices %d exceeds limit %d", ErrInvalidGraphFile, hdr.NumVertices, maxVertices)
	}
	if hdr.NumLevels == 0 || hdr.NumLevels > maxLevels {
		return nil, fmt.Errorf("%w: NumLevels %d out of range", ErrInvalidGraphFile, hdr.NumLevels)
	}
	if hdr.VerticesPerBlock == 0 {
		return nil, fmt.Errorf("%w: zero vertices per block", ErrInvalidGraphFile)
	}
	expectedBlocks := (hdr.NumVertices + hdr.VerticesPerBlock - 1) / hdr.VerticesPerBlock
	if hdr.NumBlocks != expectedBlocks {
		return nil, fmt.Errorf("%w: %d blocks, expected %d", ErrInvalidGraphFile, hdr.NumBlocks, expectedBlocks)
	}

	index := make([]blockIndexEntry, hdr.NumBlocks)
	if err := binary.Read(cr, binary.LittleEndian, index); err != nil {
		return nil, fmt.Errorf("%w: read block index: %v", ErrInvalidGraphFile, err)
	}

	computed := cr.hash.Sum32()
	var stored uint32
	if err := binary.Read(r, binary.LittleEndian, &stored); err != nil {
		return nil, fmt.Errorf("%w: read header CRC32: %v", ErrInvalidGraphFile, err)
	}
	if stored != computed {
		return nil, fmt.Errorf("%w: header checksum mismatch", ErrInvalidGraphFile)
	}

	return &graphFile{header: hdr, index: index}, nil
}

type crc32Reader struct {
	r    io.Reader
	hash hashWriter
}

func (cr *crc32Reader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		cr.hash.Write(p[:n])
	}
	return n, err
}

// ReadGraph decodes every block of the graph file into a StaticGraph.
func ReadGraph(path string) (*StaticGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	gf, err := readGraphFileHeader(br)
	if err != nil {
		return nil, err
	}

	numVertices := int(gf.header.NumVertices)
	vertices := make([]*Vertex, 0, numVertices)
	firstEdge := make([]Index, 0, numVertices+1)
	edges := make([]Edge, 0, gf.header.NumEdges)

	for b := uint32(0); b < gf.header.NumBlocks; b++ {
		entry := gf.index[b]
		data := make([]byte, entry.Length)
		if _, err := io.ReadFull(br, data); err != nil {
			return nil, fmt.Errorf("%w: read block %d: %v", ErrCorruptBlock, b, err)
		}
		first, last := gf.blockRange(b)
		block, err := decodeBlock(data, first, last, int(gf.header.NumLevels))
		if err != nil {
			return nil, err
		}
		for i := range block.vertices {
			firstEdge = append(firstEdge, Index(len(edges))+block.firstEdge[i])
		}
		vertices = append(vertices, block.vertices...)
		edges = append(edges, block.edges...)
	}
	firstEdge = append(firstEdge, Index(len(edges)))

	if len(edges) != int(gf.header.NumEdges) {
		return nil, fmt.Errorf("%w: %d edges, expected %d", ErrInvalidGraphFile, len(edges), gf.header.NumEdges)
	}
	for _, e := range edges {
		if int(e.target) >= numVertices {
			return nil, fmt.Errorf("%w: edge %d->%d target out of range", ErrCorruptBlock, e.source, e.target)
		}
	}

	return NewStaticGraph(vertices, firstEdge, edges, int(gf.header.NumLevels), gf.properties()), nil
}
