package mqttcodec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageInvalid(t *testing.T) {
	assert.False(t, Message{}.Invalid())
	assert.True(t, Message{Err: errors.New("boom")}.Invalid())
}

func TestMessageType(t *testing.T) {
	assert.Equal(t, PacketType(0), Message{}.Type())
	assert.Equal(t, PacketPUBLISH, Message{Header: &FixedHeader{Type: PacketPUBLISH}}.Type())
}

func TestInvalidMessageKeepsPartialState(t *testing.T) {
	// A payload failure still reports the headers committed before it.
	d := NewStreamDecoder()
	body := connectBody("MQIsdp", 3, 0x02, 30, "this-client-id-is-way-too-long")
	msg := feedInvalid(t, d, testPacket(0x10, body), ErrIdentifierRejected)

	assert.Equal(t, PacketCONNECT, msg.Type())
	vh, ok := msg.VariableHeader.(*ConnectVariableHeader)
	assert.True(t, ok)
	assert.Equal(t, "MQIsdp", vh.ProtocolName)
	assert.Nil(t, msg.Payload)
}

func TestInvalidMessageWithoutFixedHeader(t *testing.T) {
	// When even the fixed header fails, the message carries nothing but the
	// cause.
	d := NewStreamDecoder()
	msg := feedInvalid(t, d, []byte{0x00, 0x00}, ErrProtocolViolation)

	assert.Nil(t, msg.Header)
	assert.Nil(t, msg.VariableHeader)
	assert.Equal(t, PacketType(0), msg.Type())
}
