package types

import (
	"bytes"
	"encoding/binary"
)

// BinaryWriter writes big-endian binary data into an in-memory buffer.
// Writes to a bytes.Buffer cannot fail, so the only error binary.Write can
// report is a value that is not fixed-size, which is a programming error and
// panics.
type BinaryWriter struct {
	buf *bytes.Buffer
}

// NewBufferWriter creates a writer over a buffer presized to sizeHint bytes.
func NewBufferWriter(sizeHint int) (*BinaryWriter, *bytes.Buffer) {
	buf := bytes.NewBuffer(make([]byte, 0, sizeHint))
	return &BinaryWriter{buf: buf}, buf
}

// Write writes the binary representation of data. Data must be a fixed-size
// value or a slice of fixed-size values, or a pointer to such data.
func (bw *BinaryWriter) Write(data interface{}) {
	if err := binary.Write(bw.buf, binary.BigEndian, data); err != nil {
		panic("types: " + err.Error())
	}
}

// WriteUint8 writes a uint8
func (bw *BinaryWriter) WriteUint8(val uint8) {
	bw.buf.WriteByte(val)
}

// WriteUint16 writes a uint16
func (bw *BinaryWriter) WriteUint16(val uint16) {
	bw.buf.Write(binary.BigEndian.AppendUint16(nil, val))
}

// WriteInt16 writes an int16
func (bw *BinaryWriter) WriteInt16(val int16) {
	bw.WriteUint16(uint16(val))
}

// WriteUint24 writes the low 24 bits of val.
func (bw *BinaryWriter) WriteUint24(val uint32) {
	bw.buf.Write([]byte{byte(val >> 16), byte(val >> 8), byte(val)})
}

// WriteUint32 writes a uint32
func (bw *BinaryWriter) WriteUint32(val uint32) {
	bw.buf.Write(binary.BigEndian.AppendUint32(nil, val))
}

// WriteFourCharCode writes the four raw bytes of a code.
func (bw *BinaryWriter) WriteFourCharCode(c FourCharCode) {
	bw.buf.Write(c[:])
}

// WriteBytes writes a slice of bytes
func (bw *BinaryWriter) WriteBytes(data []byte) {
	bw.buf.Write(data)
}

// WriteZeros writes n zero bytes.
func (bw *BinaryWriter) WriteZeros(n int) {
	if n > 0 {
		bw.buf.Write(make([]byte, n))
	}
}

// WritePascalString writes a length byte followed by s. Callers keep s
// within 255 bytes.
func (bw *BinaryWriter) WritePascalString(s []byte) {
	bw.WriteUint8(uint8(len(s)))
	bw.WriteBytes(s)
}
