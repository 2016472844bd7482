// Package trajectory writes simulation snapshots in LAMMPS custom dump
// format, readable by OVITO and similar tools.
package trajectory

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/san-kum/langevin/internal/md"
)

// Compression names accepted by NewWriter.
const (
	CompressNone = ""
	CompressGzip = "gzip"
	CompressZstd = "zstd"
)

// Writer appends one frame per snapshot to a dump file. It implements
// md.SnapshotSink.
type Writer struct {
	f      *os.File
	comp   io.WriteCloser // nil when writing plain text
	w      *bufio.Writer
	radius float64
}

// NewWriter creates (truncating) the dump file. radius is carried into the
// per-atom columns for visualization only.
func NewWriter(filename string, radius float64, compression string) (*Writer, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, err
	}

	wr := &Writer{f: f, radius: radius}
	switch compression {
	case CompressNone:
		wr.w = bufio.NewWriter(f)
	case CompressGzip:
		gz := gzip.NewWriter(f)
		wr.comp = gz
		wr.w = bufio.NewWriter(gz)
	case CompressZstd:
		zw, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		wr.comp = zw
		wr.w = bufio.NewWriter(zw)
	default:
		f.Close()
		return nil, fmt.Errorf("%w: unknown compression %q", md.ErrInvalidParameter, compression)
	}
	return wr, nil
}

// WriteSnapshot appends one frame.
func (wr *Writer) WriteSnapshot(snap md.Snapshot) error {
	fmt.Fprintf(wr.w, "ITEM: TIMESTEP\n%d\n", snap.Step)
	fmt.Fprintf(wr.w, "ITEM: NUMBER OF ATOMS\n%d\n", len(snap.Positions))
	fmt.Fprintf(wr.w, "ITEM: BOX BOUNDS pp pp pp\n")
	for a := 0; a < 3; a++ {
		fmt.Fprintf(wr.w, "%g %g\n", snap.Box.Lo[a], snap.Box.Hi[a])
	}
	fmt.Fprintf(wr.w, "ITEM: ATOMS id radius x y z v_x v_y v_z\n")
	for i, p := range snap.Positions {
		v := snap.Velocities[i]
		fmt.Fprintf(wr.w, "%d %e %e %e %e %e %e %e\n",
			i+1, wr.radius, p[0], p[1], p[2], v[0], v[1], v[2])
	}
	return wr.w.Flush()
}

// Close flushes and closes the writer chain.
func (wr *Writer) Close() error {
	if err := wr.w.Flush(); err != nil {
		wr.f.Close()
		return err
	}
	if wr.comp != nil {
		if err := wr.comp.Close(); err != nil {
			wr.f.Close()
			return err
		}
	}
	return wr.f.Close()
}
