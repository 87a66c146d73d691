package mqttcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeVariableByteInteger(t *testing.T) {
	tests := []struct {
		name  string
		data  []byte
		want  int
		wantN int
	}{
		{"zero", []byte{0x00}, 0, 1},
		{"one digit max", []byte{0x7F}, 127, 1},
		{"two digits", []byte{0x80, 0x01}, 128, 2},
		{"two digit max", []byte{0xFF, 0x7F}, 16383, 2},
		{"three digits", []byte{0x80, 0x80, 0x01}, 16384, 3},
		{"four digit max", []byte{0xFF, 0xFF, 0xFF, 0x7F}, 268435455, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, n, err := decodeVariableByteInteger(&reader{buf: tt.data})
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
			assert.Equal(t, tt.wantN, n)
		})
	}
}

func TestDecodeVariableByteIntegerErrors(t *testing.T) {
	t.Run("5th continuation digit", func(t *testing.T) {
		_, _, err := decodeVariableByteInteger(&reader{buf: []byte{0x80, 0x80, 0x80, 0x80, 0x01}})
		assert.ErrorIs(t, err, ErrFraming)
	})

	t.Run("truncated", func(t *testing.T) {
		_, _, err := decodeVariableByteInteger(&reader{buf: []byte{0x80}})
		assert.ErrorIs(t, err, errNeedMoreData)
	})
}

func TestDecodeString(t *testing.T) {
	data := appendTestString(nil, "hello")

	s, n, err := decodeString(&reader{buf: data})
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
	assert.Equal(t, 7, n)
}

func TestDecodeStringEmpty(t *testing.T) {
	s, n, err := decodeString(&reader{buf: []byte{0x00, 0x00}})
	require.NoError(t, err)
	assert.Equal(t, "", s)
	assert.Equal(t, 2, n)
}

func TestDecodeStringTruncated(t *testing.T) {
	_, _, err := decodeString(&reader{buf: []byte{0x00, 0x05, 'h', 'i'}})
	assert.ErrorIs(t, err, errNeedMoreData)
}

func TestDecodeBoundedString(t *testing.T) {
	t.Run("within bounds", func(t *testing.T) {
		data := appendTestString(nil, "abc")
		s, ok, n, err := decodeBoundedString(&reader{buf: data}, 0, 5)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "abc", s)
		assert.Equal(t, 5, n)
	})

	t.Run("too long consumes declared bytes", func(t *testing.T) {
		data := appendTestString(nil, "abcdef")
		data = append(data, 0xAA) // trailing byte that must stay unread

		r := &reader{buf: data}
		s, ok, n, err := decodeBoundedString(r, 0, 5)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, "", s)
		assert.Equal(t, 8, n)
		assert.Equal(t, 1, r.buffered())
	})

	t.Run("too short consumes declared bytes", func(t *testing.T) {
		data := appendTestString(nil, "a")
		s, ok, n, err := decodeBoundedString(&reader{buf: data}, 2, 5)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, "", s)
		assert.Equal(t, 3, n)
	})
}

func TestDecodeBinary(t *testing.T) {
	data := appendTestBinary(nil, []byte{0xDE, 0xAD, 0xBE, 0xEF})

	b, n, err := decodeBinary(&reader{buf: data})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, b)
	assert.Equal(t, 6, n)
}

func TestDecodeBinaryEmpty(t *testing.T) {
	b, n, err := decodeBinary(&reader{buf: []byte{0x00, 0x00}})
	require.NoError(t, err)
	assert.Empty(t, b)
	assert.Equal(t, 2, n)
}

func TestDecodeStringPair(t *testing.T) {
	data := appendTestString(nil, "key")
	data = appendTestString(data, "value")

	pair, n, err := decodeStringPair(&reader{buf: data})
	require.NoError(t, err)
	assert.Equal(t, StringPair{Key: "key", Value: "value"}, pair)
	assert.Equal(t, 12, n)
}

func TestDecodeMessageID(t *testing.T) {
	d := NewStreamDecoder()

	t.Run("valid", func(t *testing.T) {
		id, n, err := d.decodeMessageID(&reader{buf: []byte{0x12, 0x34}})
		require.NoError(t, err)
		assert.Equal(t, 0x1234, id)
		assert.Equal(t, 2, n)
	})

	t.Run("zero rejected", func(t *testing.T) {
		_, _, err := d.decodeMessageID(&reader{buf: []byte{0x00, 0x00}})
		assert.ErrorIs(t, err, ErrValueRange)
	})

	t.Run("max", func(t *testing.T) {
		id, _, err := d.decodeMessageID(&reader{buf: []byte{0xFF, 0xFF}})
		require.NoError(t, err)
		assert.Equal(t, 65535, id)
	})
}
