package parser

import "encoding/binary"

// byteBuilder accumulates an encoded HPROF byte sequence the way the real
// format lays it out: big-endian, with 4- or 8-byte identifiers depending
// on the dump's declared identifier size.
type byteBuilder struct {
	idSize int
	buf    []byte
}

func newByteBuilder(idSize int) *byteBuilder {
	return &byteBuilder{idSize: idSize}
}

func (b *byteBuilder) u1(v uint8) *byteBuilder {
	b.buf = append(b.buf, v)
	return b
}

func (b *byteBuilder) u2(v uint16) *byteBuilder {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
	return b
}

func (b *byteBuilder) u4(v uint32) *byteBuilder {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
	return b
}

func (b *byteBuilder) u8(v uint64) *byteBuilder {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
	return b
}

func (b *byteBuilder) id(v uint64) *byteBuilder {
	if b.idSize == 4 {
		return b.u4(uint32(v))
	}
	return b.u8(v)
}

func (b *byteBuilder) bytes(v []byte) *byteBuilder {
	b.buf = append(b.buf, v...)
	return b
}

func (b *byteBuilder) cstring(s string) *byteBuilder {
	b.buf = append(b.buf, s...)
	b.buf = append(b.buf, 0)
	return b
}

// header builds a full HPROF file header: format string, identifier size,
// and a zero timestamp.
func header(format string, idSize int) []byte {
	b := newByteBuilder(idSize).cstring(format).u4(uint32(idSize)).u4(0).u4(0)
	return b.buf
}
