package mqttcodec

import "encoding/binary"

// reader is a mark/rewind byte cursor over the decoder's accumulation
// buffer. Before each phase attempt the decoder marks the position; a read
// past the buffered input returns errNeedMoreData and the decoder rewinds,
// so a suspended phase is retried from scratch once more bytes arrive.
type reader struct {
	buf  []byte
	pos  int
	mark int
}

// setMark records the current position as the rewind point.
func (r *reader) setMark() {
	r.mark = r.pos
}

// rewind restores the position recorded by setMark.
func (r *reader) rewind() {
	r.pos = r.mark
}

// buffered returns the number of unconsumed bytes.
func (r *reader) buffered() int {
	return len(r.buf) - r.pos
}

// release drops the buffer once it is fully consumed. The underlying array
// is abandoned rather than resliced so that zero-copy spans handed out to
// emitted messages stay intact.
func (r *reader) release() {
	if r.pos == len(r.buf) {
		r.buf = nil
		r.pos = 0
		r.mark = 0
	}
}

func (r *reader) readByte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, errNeedMoreData
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

// readBytes consumes n bytes and returns them as a capacity-capped subslice
// of the buffer, without copying.
func (r *reader) readBytes(n int) ([]byte, error) {
	if r.buffered() < n {
		return nil, errNeedMoreData
	}
	b := r.buf[r.pos : r.pos+n : r.pos+n]
	r.pos += n
	return b, nil
}

// readUint16 consumes a two byte big-endian unsigned integer.
func (r *reader) readUint16() (uint16, error) {
	b, err := r.readBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}
