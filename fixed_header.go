package mqttcodec

import "fmt"

// PacketType represents an MQTT control packet type.
type PacketType byte

// MQTT control packet types as defined in the specification.
const (
	PacketCONNECT     PacketType = 1
	PacketCONNACK     PacketType = 2
	PacketPUBLISH     PacketType = 3
	PacketPUBACK      PacketType = 4
	PacketPUBREC      PacketType = 5
	PacketPUBREL      PacketType = 6
	PacketPUBCOMP     PacketType = 7
	PacketSUBSCRIBE   PacketType = 8
	PacketSUBACK      PacketType = 9
	PacketUNSUBSCRIBE PacketType = 10
	PacketUNSUBACK    PacketType = 11
	PacketPINGREQ     PacketType = 12
	PacketPINGRESP    PacketType = 13
	PacketDISCONNECT  PacketType = 14
	PacketAUTH        PacketType = 15
)

// String returns the string representation of the packet type.
func (p PacketType) String() string {
	switch p {
	case PacketCONNECT:
		return "CONNECT"
	case PacketCONNACK:
		return "CONNACK"
	case PacketPUBLISH:
		return "PUBLISH"
	case PacketPUBACK:
		return "PUBACK"
	case PacketPUBREC:
		return "PUBREC"
	case PacketPUBREL:
		return "PUBREL"
	case PacketPUBCOMP:
		return "PUBCOMP"
	case PacketSUBSCRIBE:
		return "SUBSCRIBE"
	case PacketSUBACK:
		return "SUBACK"
	case PacketUNSUBSCRIBE:
		return "UNSUBSCRIBE"
	case PacketUNSUBACK:
		return "UNSUBACK"
	case PacketPINGREQ:
		return "PINGREQ"
	case PacketPINGRESP:
		return "PINGRESP"
	case PacketDISCONNECT:
		return "DISCONNECT"
	case PacketAUTH:
		return "AUTH"
	default:
		return "UNKNOWN"
	}
}

// Valid returns true if the packet type is valid.
func (p PacketType) Valid() bool {
	return p >= PacketCONNECT && p <= PacketAUTH
}

// FixedHeader represents the fixed header of an MQTT control packet.
// It is immutable once decoded; flag bits that the specification fixes for
// a packet type are normalized away during decoding.
type FixedHeader struct {
	Type            PacketType
	Dup             bool
	QoS             QoS
	Retain          bool
	RemainingLength int
}

// decodeFixedHeader reads the one byte flags/type field and the
// variable-length remaining length field that bounds the rest of the
// packet.
func decodeFixedHeader(r *reader) (*FixedHeader, error) {
	b1, err := r.readByte()
	if err != nil {
		return nil, err
	}

	packetType := PacketType(b1 >> 4)
	if !packetType.Valid() {
		return nil, fmt.Errorf("%w: unknown packet type %d", ErrProtocolViolation, b1>>4)
	}

	qos := QoS((b1 & 0x06) >> 1)
	if !qos.Valid() {
		return nil, fmt.Errorf("%w: invalid QoS 3 (%s)", ErrValueRange, packetType)
	}

	// Remaining length: base-128, continuation-bit terminated, at most 4
	// digits.
	remainingLength := 0
	multiplier := 1
	loops := 0
	for {
		digit, err := r.readByte()
		if err != nil {
			return nil, err
		}
		remainingLength += int(digit&0x7F) * multiplier
		multiplier *= 128
		loops++
		if digit&0x80 == 0 {
			break
		}
		if loops == 4 {
			return nil, fmt.Errorf("%w: remaining length exceeds 4 digits (%s)", ErrFraming, packetType)
		}
	}

	header := &FixedHeader{
		Type:            packetType,
		Dup:             b1&0x08 != 0,
		QoS:             qos,
		Retain:          b1&0x01 != 0,
		RemainingLength: remainingLength,
	}
	header.normalizeFlags()

	if err := header.validateFlags(); err != nil {
		return nil, err
	}
	return header, nil
}

// normalizeFlags resets dup, QoS and retain for packet types whose flag
// bits are fixed to zero by the specification.
func (h *FixedHeader) normalizeFlags() {
	switch h.Type {
	case PacketCONNECT, PacketCONNACK, PacketPUBACK, PacketPUBREC,
		PacketPUBCOMP, PacketSUBACK, PacketUNSUBACK, PacketPINGREQ,
		PacketPINGRESP, PacketDISCONNECT, PacketAUTH:
		h.Dup = false
		h.QoS = QoSAtMostOnce
		h.Retain = false
	}
}

// validateFlags rejects type/flag combinations disallowed by the
// specification. PUBREL, SUBSCRIBE and UNSUBSCRIBE must carry QoS 1.
func (h *FixedHeader) validateFlags() error {
	switch h.Type {
	case PacketPUBREL, PacketSUBSCRIBE, PacketUNSUBSCRIBE:
		if h.QoS != QoSAtLeastOnce {
			return fmt.Errorf("%w: %s must have QoS 1, got %s", ErrProtocolViolation, h.Type, h.QoS)
		}
	}
	return nil
}
