package chunk

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/df-mc/voxel/server/block"
	"github.com/df-mc/voxel/server/block/cube"
	"github.com/klauspost/compress/zstd"
)

// ErrCorruptSnapshot is returned when decoding a snapshot that was truncated,
// tampered with or written in an unknown format.
var ErrCorruptSnapshot = errors.New("chunk: corrupt snapshot")

const snapshotVersion = 1

var snapshotMagic = [4]byte{'v', 'x', 'c', 'h'}

var (
	encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	decoder, _ = zstd.NewReader(nil)
)

// Digest returns a 64-bit hash of the shape and contents of a block buffer.
// Equal buffers always have equal digests.
func Digest(b *Buffer[block.Block]) uint64 {
	h := xxhash.New()
	var scratch [4096]byte
	buf := scratch[:0]
	s := b.Shape()
	buf = binary.LittleEndian.AppendUint32(buf, uint32(s.X))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(s.Y))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(s.Z))
	for _, v := range b.Raw() {
		if len(buf)+8 > len(scratch) {
			_, _ = h.Write(buf)
			buf = scratch[:0]
		}
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v))
	}
	_, _ = h.Write(buf)
	return h.Sum64()
}

// EncodeSnapshot serialises a block buffer together with the key of its chunk.
// Runs of equal blocks are collapsed before the result is compressed with
// zstd, so sparse or layered chunks encode to a few hundred bytes.
func EncodeSnapshot(key cube.Pos, b *Buffer[block.Block]) []byte {
	var tmp [binary.MaxVarintLen64]byte
	payload := make([]byte, 0, 1024)
	raw := b.Raw()
	for i := 0; i < len(raw); {
		v, run := raw[i], 1
		for i+run < len(raw) && raw[i+run] == v {
			run++
		}
		payload = append(payload, tmp[:binary.PutUvarint(tmp[:], uint64(v))]...)
		payload = append(payload, tmp[:binary.PutUvarint(tmp[:], uint64(run))]...)
		i += run
	}

	out := bytes.NewBuffer(make([]byte, 0, 64+len(payload)/4))
	out.Write(snapshotMagic[:])
	out.WriteByte(snapshotVersion)
	s := b.Shape()
	for _, v := range []int{key[0], key[1], key[2]} {
		out.Write(tmp[:binary.PutVarint(tmp[:], int64(v))])
	}
	for _, v := range []int{s.X, s.Y, s.Z} {
		out.Write(tmp[:binary.PutUvarint(tmp[:], uint64(v))])
	}
	out.Write(binary.LittleEndian.AppendUint64(nil, Digest(b)))
	return encoder.EncodeAll(payload, out.Bytes())
}

// DecodeSnapshot is the inverse of EncodeSnapshot. An error wrapping
// ErrCorruptSnapshot is returned if data is not a valid snapshot or if the
// decoded blocks do not match the stored digest.
func DecodeSnapshot(data []byte) (cube.Pos, *Buffer[block.Block], error) {
	r := bytes.NewReader(data)
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil || magic != snapshotMagic {
		return cube.Pos{}, nil, fmt.Errorf("%w: bad magic", ErrCorruptSnapshot)
	}
	if v, err := r.ReadByte(); err != nil || v != snapshotVersion {
		return cube.Pos{}, nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptSnapshot, v)
	}
	var key cube.Pos
	for i := range key {
		v, err := binary.ReadVarint(r)
		if err != nil {
			return cube.Pos{}, nil, fmt.Errorf("%w: key: %v", ErrCorruptSnapshot, err)
		}
		key[i] = int(v)
	}
	var dims [3]int
	for i := range dims {
		v, err := binary.ReadUvarint(r)
		if err != nil || v == 0 || v > 1<<12 {
			return cube.Pos{}, nil, fmt.Errorf("%w: shape", ErrCorruptSnapshot)
		}
		dims[i] = int(v)
	}
	var sum [8]byte
	if _, err := io.ReadFull(r, sum[:]); err != nil {
		return cube.Pos{}, nil, fmt.Errorf("%w: digest: %v", ErrCorruptSnapshot, err)
	}
	payload, err := decoder.DecodeAll(data[len(data)-r.Len():], nil)
	if err != nil {
		return cube.Pos{}, nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	buf := New(Shape{dims[0], dims[1], dims[2]}, block.Air)
	raw, n := buf.Raw(), 0
	for i := 0; i < len(payload); {
		v, vn := binary.Uvarint(payload[i:])
		if vn <= 0 {
			return cube.Pos{}, nil, fmt.Errorf("%w: bad block at %d", ErrCorruptSnapshot, i)
		}
		i += vn
		run, rn := binary.Uvarint(payload[i:])
		if rn <= 0 || run > uint64(len(raw)-n) {
			return cube.Pos{}, nil, fmt.Errorf("%w: bad run at %d", ErrCorruptSnapshot, i)
		}
		i += rn
		for end := n + int(run); n < end; n++ {
			raw[n] = block.Block(v)
		}
	}
	if n != len(raw) {
		return cube.Pos{}, nil, fmt.Errorf("%w: %d of %d blocks", ErrCorruptSnapshot, n, len(raw))
	}
	if Digest(buf) != binary.LittleEndian.Uint64(sum[:]) {
		return cube.Pos{}, nil, fmt.Errorf("%w: digest mismatch", ErrCorruptSnapshot)
	}
	return key, buf, nil
}
