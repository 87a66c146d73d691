package mqttcodec

import "fmt"

// Payload is the closed set of payload shapes, keyed by packet type
// family. Packets without a payload carry nil.
type Payload interface {
	payload()
}

// RetainHandling is the retained message handling policy from MQTT v5.0
// subscription options.
type RetainHandling byte

const (
	// SendRetained sends retained messages at the time of subscribe.
	SendRetained RetainHandling = 0
	// SendRetainedIfNew sends retained messages only for new subscriptions.
	SendRetainedIfNew RetainHandling = 1
	// DontSendRetained never sends retained messages on subscribe.
	DontSendRetained RetainHandling = 2
)

// SubscriptionOption carries the per-subscription options byte of a
// SUBSCRIBE payload entry.
type SubscriptionOption struct {
	QoS               QoS
	NoLocal           bool
	RetainAsPublished bool
	RetainHandling    RetainHandling
}

// TopicSubscription is one (topic filter, options) entry of a SUBSCRIBE
// payload.
type TopicSubscription struct {
	TopicFilter string
	Option      SubscriptionOption
}

// ConnectPayload is the payload of a CONNECT packet. WillTopic,
// WillMessage, UserName and Password are only present when the matching
// connect flag is set.
type ConnectPayload struct {
	ClientID    string
	WillProps   Properties
	WillTopic   string
	WillMessage []byte
	UserName    string
	Password    []byte
}

// SubscribePayload is the ordered subscription list of a SUBSCRIBE packet.
type SubscribePayload struct {
	Subscriptions []TopicSubscription
}

// SubAckPayload carries one granted-QoS-or-failure byte per requested
// subscription.
type SubAckPayload struct {
	GrantedQoS []QoS
}

// UnsubscribePayload is the ordered topic filter list of an UNSUBSCRIBE
// packet.
type UnsubscribePayload struct {
	TopicFilters []string
}

// UnsubAckPayload carries one reason code per requested unsubscription.
type UnsubAckPayload struct {
	ReasonCodes []ReasonCode
}

// PublishPayload is the opaque application message of a PUBLISH packet.
// Data is a zero-copy span into the decoder's input buffer.
type PublishPayload struct {
	Data []byte
}

func (*ConnectPayload) payload()     {}
func (*SubscribePayload) payload()   {}
func (*SubAckPayload) payload()      {}
func (*UnsubscribePayload) payload() {}
func (*UnsubAckPayload) payload()    {}
func (*PublishPayload) payload()     {}

// decodePayload routes to the payload decoder for the packet type family.
// budget is the remaining-length residue after the variable header; list
// payloads repeat-decode entries until it is exhausted. Returns the
// payload (nil for empty families) and the number of bytes consumed.
func (d *StreamDecoder) decodePayload(r *reader, header *FixedHeader, vh VariableHeader, budget int) (Payload, int, error) {
	switch header.Type {
	case PacketCONNECT:
		connectHeader, ok := vh.(*ConnectVariableHeader)
		if !ok {
			return nil, 0, fmt.Errorf("%w: CONNECT without connect variable header", ErrProtocolViolation)
		}
		return d.decodeConnectPayload(r, connectHeader)

	case PacketSUBSCRIBE:
		return d.decodeSubscribePayload(r, budget)

	case PacketSUBACK:
		return d.decodeSubAckPayload(r, budget)

	case PacketUNSUBSCRIBE:
		return d.decodeUnsubscribePayload(r, budget)

	case PacketUNSUBACK:
		return d.decodeUnsubAckPayload(r, budget)

	case PacketPUBLISH:
		return d.decodePublishPayload(r, budget)

	default:
		return nil, 0, nil
	}
}

func (d *StreamDecoder) decodeConnectPayload(r *reader, vh *ConnectVariableHeader) (Payload, int, error) {
	clientID, n, err := decodeString(r)
	if err != nil {
		return nil, n, err
	}
	if !d.validator.ValidClientID(d.version, clientID) {
		return nil, n, fmt.Errorf("%w: %q", ErrIdentifierRejected, clientID)
	}

	p := &ConnectPayload{ClientID: clientID}

	if vh.WillFlag {
		if d.version == MQTT5 {
			props, pn, err := decodeProperties(r)
			if err != nil {
				return nil, n + pn, err
			}
			n += pn
			p.WillProps = props
		}

		// The will topic value is dropped when its declared length is out
		// of bounds, but its bytes are consumed either way.
		willTopic, _, tn, err := decodeBoundedString(r, 0, maxWillTopicLen)
		if err != nil {
			return nil, n + tn, err
		}
		n += tn
		p.WillTopic = willTopic

		willMessage, mn, err := decodeBinary(r)
		if err != nil {
			return nil, n + mn, err
		}
		n += mn
		p.WillMessage = willMessage
	}

	if vh.HasUserName {
		userName, un, err := decodeString(r)
		if err != nil {
			return nil, n + un, err
		}
		n += un
		p.UserName = userName
	}

	if vh.HasPassword {
		password, pn, err := decodeBinary(r)
		if err != nil {
			return nil, n + pn, err
		}
		n += pn
		p.Password = password
	}

	return p, n, nil
}

func (d *StreamDecoder) decodeSubscribePayload(r *reader, budget int) (Payload, int, error) {
	var subscriptions []TopicSubscription
	n := 0
	for n < budget {
		topicFilter, tn, err := decodeString(r)
		if err != nil {
			return nil, n + tn, err
		}
		n += tn

		optionByte, err := r.readByte()
		if err != nil {
			return nil, n, err
		}
		n++

		qos := QoS(optionByte & 0x03)
		if !qos.Valid() {
			return nil, n, fmt.Errorf("%w: subscription QoS 3", ErrValueRange)
		}
		retainHandling := RetainHandling((optionByte & 0x30) >> 4)
		if retainHandling > DontSendRetained {
			return nil, n, fmt.Errorf("%w: retain handling 3", ErrValueRange)
		}

		subscriptions = append(subscriptions, TopicSubscription{
			TopicFilter: topicFilter,
			Option: SubscriptionOption{
				QoS:               qos,
				NoLocal:           optionByte&0x04 != 0,
				RetainAsPublished: optionByte&0x08 != 0,
				RetainHandling:    retainHandling,
			},
		})
	}
	return &SubscribePayload{Subscriptions: subscriptions}, n, nil
}

func (d *StreamDecoder) decodeSubAckPayload(r *reader, budget int) (Payload, int, error) {
	var granted []QoS
	n := 0
	for n < budget {
		b, err := r.readByte()
		if err != nil {
			return nil, n, err
		}
		n++

		// Anything but the failure sentinel is masked down to a QoS level.
		qos := QoS(b)
		if qos != QoSFailure {
			qos &= 0x03
		}
		granted = append(granted, qos)
	}
	return &SubAckPayload{GrantedQoS: granted}, n, nil
}

func (d *StreamDecoder) decodeUnsubscribePayload(r *reader, budget int) (Payload, int, error) {
	var topicFilters []string
	n := 0
	for n < budget {
		topicFilter, tn, err := decodeString(r)
		if err != nil {
			return nil, n + tn, err
		}
		n += tn
		topicFilters = append(topicFilters, topicFilter)
	}
	return &UnsubscribePayload{TopicFilters: topicFilters}, n, nil
}

func (d *StreamDecoder) decodeUnsubAckPayload(r *reader, budget int) (Payload, int, error) {
	var reasonCodes []ReasonCode
	n := 0
	for n < budget {
		b, err := r.readByte()
		if err != nil {
			return nil, n, err
		}
		n++
		reasonCodes = append(reasonCodes, ReasonCode(b))
	}
	return &UnsubAckPayload{ReasonCodes: reasonCodes}, n, nil
}

func (d *StreamDecoder) decodePublishPayload(r *reader, budget int) (Payload, int, error) {
	data, err := r.readBytes(budget)
	if err != nil {
		return nil, 0, err
	}
	return &PublishPayload{Data: data}, budget, nil
}
