package mqttcodec

// Wire-building helpers shared by the decode tests. Packets are assembled
// by hand so the tests stay independent of any encoder.

func appendUint16(b []byte, v uint16) []byte {
	return append(b, byte(v>>8), byte(v))
}

func appendTestString(b []byte, s string) []byte {
	b = appendUint16(b, uint16(len(s)))
	return append(b, s...)
}

func appendTestBinary(b []byte, data []byte) []byte {
	b = appendUint16(b, uint16(len(data)))
	return append(b, data...)
}

func appendVarint(b []byte, v int) []byte {
	for {
		digit := byte(v & 0x7F)
		v >>= 7
		if v > 0 {
			digit |= 0x80
		}
		b = append(b, digit)
		if v == 0 {
			return b
		}
	}
}

// testPacket prefixes a body with the fixed header byte and the body
// length as the remaining length.
func testPacket(firstByte byte, body []byte) []byte {
	b := appendVarint([]byte{firstByte}, len(body))
	return append(b, body...)
}

// connectBody builds a CONNECT variable header plus payload for the given
// protocol. props and willProps are only appended on 5.0.
func connectBody(name string, level byte, flags byte, keepAlive uint16, clientID string) []byte {
	var b []byte
	b = appendTestString(b, name)
	b = append(b, level, flags)
	b = appendUint16(b, keepAlive)
	if level == 5 {
		b = appendVarint(b, 0)
	}
	return appendTestString(b, clientID)
}

// connect311 is the minimal clean-session 3.1.1 CONNECT used across the
// tests.
func connect311(clientID string) []byte {
	return testPacket(0x10, connectBody("MQTT", 4, 0x02, 60, clientID))
}

// connect5 is the minimal clean-start 5.0 CONNECT used across the tests.
func connect5(clientID string) []byte {
	return testPacket(0x10, connectBody("MQTT", 5, 0x02, 60, clientID))
}
