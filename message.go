package mqttcodec

// Message is the unit emitted by the decoder: either a well-formed
// (fixed header, variable header, payload) triple, or an invalid message
// carrying whatever header fragments were recovered plus the failure
// cause.
type Message struct {
	Header         *FixedHeader
	VariableHeader VariableHeader
	Payload        Payload
	Err            error
}

// Invalid reports whether the message carries a decode failure instead of
// a complete packet.
func (m Message) Invalid() bool {
	return m.Err != nil
}

// Type returns the packet type, or 0 when even the fixed header could not
// be recovered.
func (m Message) Type() PacketType {
	if m.Header == nil {
		return 0
	}
	return m.Header.Type
}

// MessageFactory assembles decoded parts into emitted messages. The
// default implementation builds plain Message values; implementations may
// substitute richer types or capture diagnostics on failures.
type MessageFactory interface {
	// NewMessage assembles a well-formed message from its decoded parts.
	NewMessage(header *FixedHeader, variableHeader VariableHeader, payload Payload) Message

	// NewInvalidMessage wraps a partial decode and its failure cause.
	// header and variableHeader hold whatever had been committed before
	// the failure and may be nil.
	NewInvalidMessage(header *FixedHeader, variableHeader VariableHeader, cause error) Message
}

type defaultMessageFactory struct{}

func (defaultMessageFactory) NewMessage(header *FixedHeader, variableHeader VariableHeader, payload Payload) Message {
	return Message{
		Header:         header,
		VariableHeader: variableHeader,
		Payload:        payload,
	}
}

func (defaultMessageFactory) NewInvalidMessage(header *FixedHeader, variableHeader VariableHeader, cause error) Message {
	return Message{
		Header:         header,
		VariableHeader: variableHeader,
		Err:            cause,
	}
}
