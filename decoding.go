package mqttcodec

import "fmt"

const (
	maxVarint       = 268435455 // 0x0FFFFFFF
	maxUint16       = 65535
	maxWillTopicLen = 32767
)

// decodeVariableByteInteger reads a base-128 variable byte integer, used
// for property lengths and identifiers. A value requiring a fifth
// continuation digit is malformed. Returns the value and the number of
// bytes consumed.
func decodeVariableByteInteger(r *reader) (int, int, error) {
	value := 0
	multiplier := 1
	loops := 0
	for {
		digit, err := r.readByte()
		if err != nil {
			return 0, loops, err
		}
		value += int(digit&0x7F) * multiplier
		multiplier *= 128
		loops++
		if digit&0x80 == 0 {
			break
		}
		if loops == 4 {
			return 0, loops, fmt.Errorf("%w: exceeds 4 digits", ErrFraming)
		}
	}
	return value, loops, nil
}

// decodeString reads a UTF-8 string with a 2-byte big-endian length
// prefix. Returns the value and the number of bytes consumed.
func decodeString(r *reader) (string, int, error) {
	size, err := r.readUint16()
	if err != nil {
		return "", 0, err
	}
	buf, err := r.readBytes(int(size))
	if err != nil {
		return "", 2, err
	}
	return string(buf), 2 + int(size), nil
}

// decodeBoundedString reads a length-prefixed UTF-8 string and applies a
// min/max bound to the declared length. The prefix-declared bytes are
// always consumed; when the length falls outside the bounds the returned
// value is absent (ok false) but consumption is unchanged.
func decodeBoundedString(r *reader, minLen, maxLen int) (string, bool, int, error) {
	size, err := r.readUint16()
	if err != nil {
		return "", false, 0, err
	}
	n := 2

	buf, err := r.readBytes(int(size))
	if err != nil {
		return "", false, n, err
	}
	n += int(size)

	if int(size) < minLen || int(size) > maxLen {
		return "", false, n, nil
	}
	return string(buf), true, n, nil
}

// decodeBinary reads binary data with a 2-byte big-endian length prefix.
// Returns the value and the number of bytes consumed.
func decodeBinary(r *reader) ([]byte, int, error) {
	size, err := r.readUint16()
	if err != nil {
		return nil, 0, err
	}
	buf, err := r.readBytes(int(size))
	if err != nil {
		return nil, 2, err
	}
	return buf, 2 + int(size), nil
}

// StringPair represents a key-value string pair used in MQTT v5.0 user
// properties.
type StringPair struct {
	Key   string
	Value string
}

// decodeStringPair reads two length-prefixed UTF-8 strings.
func decodeStringPair(r *reader) (StringPair, int, error) {
	key, n, err := decodeString(r)
	if err != nil {
		return StringPair{}, n, err
	}

	value, n2, err := decodeString(r)
	n += n2
	if err != nil {
		return StringPair{}, n, err
	}

	return StringPair{Key: key, Value: value}, n, nil
}

// decodeMessageID reads a 2-byte message identifier and range-checks it
// through the decoder's validator. Identifiers outside 1..65535 are
// rejected.
func (d *StreamDecoder) decodeMessageID(r *reader) (int, int, error) {
	value, err := r.readUint16()
	if err != nil {
		return 0, 0, err
	}
	id := int(value)
	if !d.validator.ValidMessageID(id) {
		return 0, 2, fmt.Errorf("%w: invalid message id %d", ErrValueRange, id)
	}
	return id, 2, nil
}
