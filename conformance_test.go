package mqttcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The conformance tests run a complete session exchange for each protocol
// version through a single decoder and check the emitted sequence.

func TestConformance311Session(t *testing.T) {
	var stream []byte
	stream = append(stream, connect311("conformance")...)
	stream = append(stream, testPacket(0x20, []byte{0x00, 0x00})...)

	publish := appendTestString(nil, "t")
	publish = appendUint16(publish, 1)
	publish = append(publish, 'm')
	stream = append(stream, testPacket(0x32, publish)...)

	stream = append(stream, testPacket(0x40, appendUint16(nil, 1))...)
	stream = append(stream, testPacket(0x50, appendUint16(nil, 1))...)
	stream = append(stream, testPacket(0x62, appendUint16(nil, 1))...)
	stream = append(stream, testPacket(0x70, appendUint16(nil, 1))...)

	subscribe := appendUint16(nil, 2)
	subscribe = appendTestString(subscribe, "t")
	subscribe = append(subscribe, 0x01)
	stream = append(stream, testPacket(0x82, subscribe)...)
	stream = append(stream, testPacket(0x90, append(appendUint16(nil, 2), 0x01))...)

	unsubscribe := appendUint16(nil, 3)
	unsubscribe = appendTestString(unsubscribe, "t")
	stream = append(stream, testPacket(0xA2, unsubscribe)...)
	stream = append(stream, testPacket(0xB0, appendUint16(nil, 3))...)

	stream = append(stream, testPacket(0xC0, nil)...)
	stream = append(stream, testPacket(0xD0, nil)...)
	stream = append(stream, testPacket(0xE0, nil)...)

	d := NewStreamDecoder()
	msgs := d.Feed(stream)

	wantTypes := []PacketType{
		PacketCONNECT, PacketCONNACK, PacketPUBLISH,
		PacketPUBACK, PacketPUBREC, PacketPUBREL, PacketPUBCOMP,
		PacketSUBSCRIBE, PacketSUBACK, PacketUNSUBSCRIBE, PacketUNSUBACK,
		PacketPINGREQ, PacketPINGRESP, PacketDISCONNECT,
	}
	require.Len(t, msgs, len(wantTypes))
	for i, want := range wantTypes {
		require.NoError(t, msgs[i].Err, "message %d (%s)", i, want)
		assert.Equal(t, want, msgs[i].Type(), "message %d", i)
	}
	assert.Equal(t, MQTT311, d.Version())
	assert.False(t, d.Discarding())
}

func TestConformance5Session(t *testing.T) {
	noProps := appendVarint(nil, 0)

	var stream []byte
	stream = append(stream, connect5("conformance")...)
	stream = append(stream, testPacket(0x20, append([]byte{0x00, 0x00}, noProps...))...)

	publish := appendTestString(nil, "t")
	publish = appendUint16(publish, 1)
	publish = append(publish, noProps...)
	publish = append(publish, 'm')
	stream = append(stream, testPacket(0x32, publish)...)

	ack := append(appendUint16(nil, 1), 0x00)
	ack = append(ack, noProps...)
	stream = append(stream, testPacket(0x40, ack)...)
	stream = append(stream, testPacket(0x50, ack)...)
	stream = append(stream, testPacket(0x62, ack)...)
	stream = append(stream, testPacket(0x70, ack)...)

	subscribe := appendUint16(nil, 2)
	subscribe = append(subscribe, noProps...)
	subscribe = appendTestString(subscribe, "t")
	subscribe = append(subscribe, 0x01)
	stream = append(stream, testPacket(0x82, subscribe)...)

	suback := appendUint16(nil, 2)
	suback = append(suback, noProps...)
	suback = append(suback, 0x01)
	stream = append(stream, testPacket(0x90, suback)...)

	unsubscribe := appendUint16(nil, 3)
	unsubscribe = append(unsubscribe, noProps...)
	unsubscribe = appendTestString(unsubscribe, "t")
	stream = append(stream, testPacket(0xA2, unsubscribe)...)

	unsuback := appendUint16(nil, 3)
	unsuback = append(unsuback, noProps...)
	unsuback = append(unsuback, 0x00)
	stream = append(stream, testPacket(0xB0, unsuback)...)

	stream = append(stream, testPacket(0xC0, nil)...)
	stream = append(stream, testPacket(0xD0, nil)...)

	disconnect := append([]byte{0x00}, noProps...)
	stream = append(stream, testPacket(0xE0, disconnect)...)

	auth := append([]byte{byte(ReasonContinueAuth)}, noProps...)
	stream = append(stream, testPacket(0xF0, auth)...)

	d := NewStreamDecoder()
	msgs := d.Feed(stream)

	wantTypes := []PacketType{
		PacketCONNECT, PacketCONNACK, PacketPUBLISH,
		PacketPUBACK, PacketPUBREC, PacketPUBREL, PacketPUBCOMP,
		PacketSUBSCRIBE, PacketSUBACK, PacketUNSUBSCRIBE, PacketUNSUBACK,
		PacketPINGREQ, PacketPINGRESP, PacketDISCONNECT, PacketAUTH,
	}
	require.Len(t, msgs, len(wantTypes))
	for i, want := range wantTypes {
		require.NoError(t, msgs[i].Err, "message %d (%s)", i, want)
		assert.Equal(t, want, msgs[i].Type(), "message %d", i)
	}
	assert.Equal(t, MQTT5, d.Version())

	// Spot checks on the 5.0 shapes.
	puback := msgs[3].VariableHeader.(*PubReplyVariableHeader)
	assert.Equal(t, ReasonSuccess, puback.ReasonCode)

	auth5 := msgs[14].VariableHeader.(*ReasonCodeAndPropertiesVariableHeader)
	assert.Equal(t, ReasonContinueAuth, auth5.ReasonCode)
	assert.True(t, auth5.ReasonCode.ValidFor(PacketAUTH))
}
