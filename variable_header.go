package mqttcodec

import "fmt"

// VariableHeader is the closed set of variable header shapes, keyed by
// packet type family. The marker method keeps the set closed: only shapes
// declared in this package can occupy the variable header slot of a
// Message.
type VariableHeader interface {
	variableHeader()
}

// ConnectVariableHeader is the variable header of a CONNECT packet.
type ConnectVariableHeader struct {
	ProtocolName  string
	ProtocolLevel byte
	HasUserName   bool
	HasPassword   bool
	WillRetain    bool
	WillQoS       QoS
	WillFlag      bool
	CleanSession  bool
	KeepAlive     uint16
	Props         Properties
}

// ConnAckVariableHeader is the variable header of a CONNACK packet.
type ConnAckVariableHeader struct {
	ReturnCode     byte
	SessionPresent bool
	Props          Properties
}

// MessageIDVariableHeader carries only a message identifier. It is used
// for SUBSCRIBE, SUBACK, UNSUBSCRIBE and UNSUBACK on pre-5.0 connections.
type MessageIDVariableHeader struct {
	MessageID int
}

// MessageIDAndPropertiesVariableHeader carries a message identifier and
// MQTT v5.0 properties.
type MessageIDAndPropertiesVariableHeader struct {
	MessageID int
	Props     Properties
}

// PubReplyVariableHeader is the variable header of the PUBACK, PUBREC,
// PUBREL and PUBCOMP packets. ReasonCode is 0 when the packet carries
// none.
type PubReplyVariableHeader struct {
	MessageID  int
	ReasonCode ReasonCode
	Props      Properties
}

// PublishVariableHeader is the variable header of a PUBLISH packet.
// MessageID is only meaningful when the fixed header QoS is above 0.
type PublishVariableHeader struct {
	TopicName string
	MessageID int
	Props     Properties
}

// ReasonCodeAndPropertiesVariableHeader is the variable header of the
// DISCONNECT and AUTH packets.
type ReasonCodeAndPropertiesVariableHeader struct {
	ReasonCode ReasonCode
	Props      Properties
}

func (*ConnectVariableHeader) variableHeader()                 {}
func (*ConnAckVariableHeader) variableHeader()                 {}
func (*MessageIDVariableHeader) variableHeader()               {}
func (*MessageIDAndPropertiesVariableHeader) variableHeader()  {}
func (*PubReplyVariableHeader) variableHeader()                {}
func (*PublishVariableHeader) variableHeader()                 {}
func (*ReasonCodeAndPropertiesVariableHeader) variableHeader() {}

// decodeVariableHeader routes to the decoder for the packet type family.
// Returns the decoded header (nil for empty families) and the number of
// bytes consumed.
func (d *StreamDecoder) decodeVariableHeader(r *reader, header *FixedHeader) (VariableHeader, int, error) {
	switch header.Type {
	case PacketCONNECT:
		return d.decodeConnectVariableHeader(r)

	case PacketCONNACK:
		return d.decodeConnAckVariableHeader(r)

	case PacketSUBSCRIBE, PacketUNSUBSCRIBE, PacketSUBACK, PacketUNSUBACK:
		return d.decodeMessageIDVariableHeader(r)

	case PacketPUBACK, PacketPUBREC, PacketPUBREL, PacketPUBCOMP:
		return d.decodePubReplyVariableHeader(r)

	case PacketPUBLISH:
		return d.decodePublishVariableHeader(r, header)

	case PacketDISCONNECT, PacketAUTH:
		return d.decodeReasonCodeVariableHeader(r)

	case PacketPINGREQ, PacketPINGRESP:
		return nil, 0, nil

	default:
		// decodeFixedHeader already rejected unknown types.
		return nil, 0, fmt.Errorf("%w: unknown packet type %d", ErrProtocolViolation, header.Type)
	}
}

// decodeConnectVariableHeader reads the protocol name/level pair, latches
// the connection version from it, then reads connect flags, keep alive and
// the v5 properties.
func (d *StreamDecoder) decodeConnectVariableHeader(r *reader) (VariableHeader, int, error) {
	protoName, n, err := decodeString(r)
	if err != nil {
		return nil, n, err
	}

	protoLevel, err := r.readByte()
	if err != nil {
		return nil, n, err
	}
	n++

	version, err := VersionFromProtocol(protoName, protoLevel)
	if err != nil {
		return nil, n, err
	}
	d.version = version

	flags, err := r.readByte()
	if err != nil {
		return nil, n, err
	}
	n++

	keepAlive, err := r.readUint16()
	if err != nil {
		return nil, n, err
	}
	n += 2

	if version == MQTT311 || version == MQTT5 {
		// The server MUST validate that the reserved flag is zero and
		// disconnect the client if it is not.
		if flags&0x01 != 0 {
			return nil, n, fmt.Errorf("%w: non-zero reserved connect flag", ErrProtocolViolation)
		}
	}

	var props Properties
	if version == MQTT5 {
		var pn int
		props, pn, err = decodeProperties(r)
		if err != nil {
			return nil, n + pn, err
		}
		n += pn
	}

	return &ConnectVariableHeader{
		ProtocolName:  protoName,
		ProtocolLevel: protoLevel,
		HasUserName:   flags&0x80 != 0,
		HasPassword:   flags&0x40 != 0,
		WillRetain:    flags&0x20 != 0,
		WillQoS:       QoS((flags & 0x18) >> 3),
		WillFlag:      flags&0x04 != 0,
		CleanSession:  flags&0x02 != 0,
		KeepAlive:     keepAlive,
		Props:         props,
	}, n, nil
}

func (d *StreamDecoder) decodeConnAckVariableHeader(r *reader) (VariableHeader, int, error) {
	ackFlags, err := r.readByte()
	if err != nil {
		return nil, 0, err
	}

	returnCode, err := r.readByte()
	if err != nil {
		return nil, 1, err
	}
	n := 2

	var props Properties
	if d.version == MQTT5 {
		var pn int
		props, pn, err = decodeProperties(r)
		if err != nil {
			return nil, n + pn, err
		}
		n += pn
	}

	return &ConnAckVariableHeader{
		ReturnCode:     returnCode,
		SessionPresent: ackFlags&0x01 != 0,
		Props:          props,
	}, n, nil
}

func (d *StreamDecoder) decodeMessageIDVariableHeader(r *reader) (VariableHeader, int, error) {
	messageID, n, err := d.decodeMessageID(r)
	if err != nil {
		return nil, n, err
	}

	if d.version != MQTT5 {
		return &MessageIDVariableHeader{MessageID: messageID}, n, nil
	}

	props, pn, err := decodeProperties(r)
	if err != nil {
		return nil, n + pn, err
	}
	return &MessageIDAndPropertiesVariableHeader{
		MessageID: messageID,
		Props:     props,
	}, n + pn, nil
}

// decodePubReplyVariableHeader tiers on the remaining bytes R of the
// message: R>3 reads a reason code and properties, R>2 reads a reason code
// only, otherwise the reason code is implicitly 0.
func (d *StreamDecoder) decodePubReplyVariableHeader(r *reader) (VariableHeader, int, error) {
	messageID, n, err := d.decodeMessageID(r)
	if err != nil {
		return nil, n, err
	}

	vh := &PubReplyVariableHeader{MessageID: messageID}

	switch {
	case d.bytesRemaining > 3:
		reasonCode, err := r.readByte()
		if err != nil {
			return nil, n, err
		}
		n++
		props, pn, err := decodeProperties(r)
		if err != nil {
			return nil, n + pn, err
		}
		n += pn
		vh.ReasonCode = ReasonCode(reasonCode)
		vh.Props = props

	case d.bytesRemaining > 2:
		reasonCode, err := r.readByte()
		if err != nil {
			return nil, n, err
		}
		n++
		vh.ReasonCode = ReasonCode(reasonCode)
	}

	return vh, n, nil
}

func (d *StreamDecoder) decodePublishVariableHeader(r *reader, header *FixedHeader) (VariableHeader, int, error) {
	topicName, n, err := decodeString(r)
	if err != nil {
		return nil, n, err
	}
	if !d.validator.ValidPublishTopicName(topicName) {
		return nil, n, fmt.Errorf("%w: invalid publish topic name %q", ErrProtocolViolation, topicName)
	}

	messageID := 0
	if header.QoS > QoSAtMostOnce {
		var idLen int
		messageID, idLen, err = d.decodeMessageID(r)
		if err != nil {
			return nil, n + idLen, err
		}
		n += idLen
	}

	var props Properties
	if d.version == MQTT5 {
		var pn int
		props, pn, err = decodeProperties(r)
		if err != nil {
			return nil, n + pn, err
		}
		n += pn
	}

	return &PublishVariableHeader{
		TopicName: topicName,
		MessageID: messageID,
		Props:     props,
	}, n, nil
}

// decodeReasonCodeVariableHeader tiers on the remaining bytes R of the
// message: R>1 reads a reason code and properties, R>0 reads a reason code
// only, otherwise both are absent.
func (d *StreamDecoder) decodeReasonCodeVariableHeader(r *reader) (VariableHeader, int, error) {
	vh := &ReasonCodeAndPropertiesVariableHeader{}

	switch {
	case d.bytesRemaining > 1:
		reasonCode, err := r.readByte()
		if err != nil {
			return nil, 0, err
		}
		props, pn, err := decodeProperties(r)
		if err != nil {
			return nil, 1 + pn, err
		}
		vh.ReasonCode = ReasonCode(reasonCode)
		vh.Props = props
		return vh, 1 + pn, nil

	case d.bytesRemaining > 0:
		reasonCode, err := r.readByte()
		if err != nil {
			return nil, 0, err
		}
		vh.ReasonCode = ReasonCode(reasonCode)
		return vh, 1, nil

	default:
		return vh, 0, nil
	}
}
