package mqttcodec

import (
	"encoding/binary"
	"fmt"
)

// PropertyID represents an MQTT v5.0 property identifier.
type PropertyID byte

// Property identifiers as defined in MQTT v5.0 specification.
const (
	PropPayloadFormatIndicator   PropertyID = 0x01
	PropMessageExpiryInterval    PropertyID = 0x02
	PropContentType              PropertyID = 0x03
	PropResponseTopic            PropertyID = 0x08
	PropCorrelationData          PropertyID = 0x09
	PropSubscriptionIdentifier   PropertyID = 0x0B
	PropSessionExpiryInterval    PropertyID = 0x11
	PropAssignedClientIdentifier PropertyID = 0x12
	PropServerKeepAlive          PropertyID = 0x13
	PropAuthenticationMethod     PropertyID = 0x15
	PropAuthenticationData       PropertyID = 0x16
	PropRequestProblemInfo       PropertyID = 0x17
	PropWillDelayInterval        PropertyID = 0x18
	PropRequestResponseInfo      PropertyID = 0x19
	PropResponseInformation      PropertyID = 0x1A
	PropServerReference          PropertyID = 0x1C
	PropReasonString             PropertyID = 0x1F
	PropReceiveMaximum           PropertyID = 0x21
	PropTopicAliasMaximum        PropertyID = 0x22
	PropTopicAlias               PropertyID = 0x23
	PropMaximumQoS               PropertyID = 0x24
	PropRetainAvailable          PropertyID = 0x25
	PropUserProperty             PropertyID = 0x26
	PropMaximumPacketSize        PropertyID = 0x27
	PropWildcardSubAvailable     PropertyID = 0x28
	PropSubscriptionIDAvailable  PropertyID = 0x29
	PropSharedSubAvailable       PropertyID = 0x2A
)

// PropertyType represents the wire shape of a property value.
type PropertyType byte

const (
	PropTypeByte        PropertyType = 0 // Single byte
	PropTypeTwoByteInt  PropertyType = 1 // Two byte integer (uint16)
	PropTypeFourByteInt PropertyType = 2 // Four byte integer (uint32)
	PropTypeVarInt      PropertyType = 3 // Variable byte integer
	PropTypeString      PropertyType = 4 // UTF-8 encoded string
	PropTypeBinary      PropertyType = 5 // Binary data
	PropTypeStringPair  PropertyType = 6 // UTF-8 string pair
)

// propertyTypeMap maps property IDs to their wire shapes. An identifier
// outside this table is a decode error.
var propertyTypeMap = map[PropertyID]PropertyType{
	PropPayloadFormatIndicator:   PropTypeByte,
	PropMessageExpiryInterval:    PropTypeFourByteInt,
	PropContentType:              PropTypeString,
	PropResponseTopic:            PropTypeString,
	PropCorrelationData:          PropTypeBinary,
	PropSubscriptionIdentifier:   PropTypeVarInt,
	PropSessionExpiryInterval:    PropTypeFourByteInt,
	PropAssignedClientIdentifier: PropTypeString,
	PropServerKeepAlive:          PropTypeTwoByteInt,
	PropAuthenticationMethod:     PropTypeString,
	PropAuthenticationData:       PropTypeBinary,
	PropRequestProblemInfo:       PropTypeByte,
	PropWillDelayInterval:        PropTypeFourByteInt,
	PropRequestResponseInfo:      PropTypeByte,
	PropResponseInformation:      PropTypeString,
	PropServerReference:          PropTypeString,
	PropReasonString:             PropTypeString,
	PropReceiveMaximum:           PropTypeTwoByteInt,
	PropTopicAliasMaximum:        PropTypeTwoByteInt,
	PropTopicAlias:               PropTypeTwoByteInt,
	PropMaximumQoS:               PropTypeByte,
	PropRetainAvailable:          PropTypeByte,
	PropUserProperty:             PropTypeStringPair,
	PropMaximumPacketSize:        PropTypeFourByteInt,
	PropWildcardSubAvailable:     PropTypeByte,
	PropSubscriptionIDAvailable:  PropTypeByte,
	PropSharedSubAvailable:       PropTypeByte,
}

// Properties is an ordered collection of MQTT v5.0 (identifier, value)
// pairs. Entries keep their wire encounter order; repeatable identifiers
// such as user properties appear once per occurrence.
type Properties struct {
	props []property
}

type property struct {
	id    PropertyID
	value any
}

// Len returns the number of properties in the collection.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.props)
}

// Has returns true if the property with the given ID exists.
func (p *Properties) Has(id PropertyID) bool {
	if p == nil {
		return false
	}
	for i := range p.props {
		if p.props[i].id == id {
			return true
		}
	}
	return false
}

// Add appends a property, keeping encounter order.
func (p *Properties) Add(id PropertyID, value any) {
	p.props = append(p.props, property{id: id, value: value})
}

// Get returns the value of the first property with the given ID, or nil.
func (p *Properties) Get(id PropertyID) any {
	if p == nil {
		return nil
	}
	for i := range p.props {
		if p.props[i].id == id {
			return p.props[i].value
		}
	}
	return nil
}

// GetAll returns all values for properties with the given ID, in encounter
// order. Useful for repeatable properties such as PropUserProperty.
func (p *Properties) GetAll(id PropertyID) []any {
	if p == nil {
		return nil
	}
	var values []any
	for i := range p.props {
		if p.props[i].id == id {
			values = append(values, p.props[i].value)
		}
	}
	return values
}

// GetByte returns the property value as a byte, or 0 if absent.
func (p *Properties) GetByte(id PropertyID) byte {
	if v, ok := p.Get(id).(byte); ok {
		return v
	}
	return 0
}

// GetUint16 returns the property value as a uint16, or 0 if absent.
func (p *Properties) GetUint16(id PropertyID) uint16 {
	if v, ok := p.Get(id).(uint16); ok {
		return v
	}
	return 0
}

// GetUint32 returns the property value as a uint32, or 0 if absent.
// Four-byte integer and variable byte integer properties share this
// representation.
func (p *Properties) GetUint32(id PropertyID) uint32 {
	if v, ok := p.Get(id).(uint32); ok {
		return v
	}
	return 0
}

// GetString returns the property value as a string, or "" if absent.
func (p *Properties) GetString(id PropertyID) string {
	if v, ok := p.Get(id).(string); ok {
		return v
	}
	return ""
}

// GetBinary returns the property value as a byte slice, or nil if absent.
func (p *Properties) GetBinary(id PropertyID) []byte {
	if v, ok := p.Get(id).([]byte); ok {
		return v
	}
	return nil
}

// GetAllStringPairs returns all string pair values for the given ID.
func (p *Properties) GetAllStringPairs(id PropertyID) []StringPair {
	var pairs []StringPair
	for _, v := range p.GetAll(id) {
		if pair, ok := v.(StringPair); ok {
			pairs = append(pairs, pair)
		}
	}
	return pairs
}

// decodeProperties reads a variable-byte-integer block length followed by
// (identifier, value) entries until exactly that many bytes have been
// consumed. Returns the collection and the total bytes consumed including
// the length field.
func decodeProperties(r *reader) (Properties, int, error) {
	var props Properties

	totalLength, n, err := decodeVariableByteInteger(r)
	if err != nil {
		return props, n, err
	}

	consumed := 0
	for consumed < totalLength {
		idValue, idLen, err := decodeVariableByteInteger(r)
		if err != nil {
			return props, n + consumed, err
		}
		consumed += idLen

		propType, known := propertyTypeMap[PropertyID(idValue)]
		if idValue > 0xFF || !known {
			return props, n + consumed, fmt.Errorf("%w: 0x%02X", ErrUnknownProperty, idValue)
		}
		id := PropertyID(idValue)

		switch propType {
		case PropTypeByte:
			b, err := r.readByte()
			if err != nil {
				return props, n + consumed, err
			}
			consumed++
			props.Add(id, b)

		case PropTypeTwoByteInt:
			v, err := r.readUint16()
			if err != nil {
				return props, n + consumed, err
			}
			consumed += 2
			props.Add(id, v)

		case PropTypeFourByteInt:
			buf, err := r.readBytes(4)
			if err != nil {
				return props, n + consumed, err
			}
			consumed += 4
			props.Add(id, binary.BigEndian.Uint32(buf))

		case PropTypeVarInt:
			v, vn, err := decodeVariableByteInteger(r)
			if err != nil {
				return props, n + consumed, err
			}
			consumed += vn
			props.Add(id, uint32(v))

		case PropTypeString:
			s, sn, err := decodeString(r)
			if err != nil {
				return props, n + consumed, err
			}
			consumed += sn
			props.Add(id, s)

		case PropTypeStringPair:
			pair, pn, err := decodeStringPair(r)
			if err != nil {
				return props, n + consumed, err
			}
			consumed += pn
			props.Add(id, pair)

		case PropTypeBinary:
			b, bn, err := decodeBinary(r)
			if err != nil {
				return props, n + consumed, err
			}
			consumed += bn
			props.Add(id, b)
		}
	}

	return props, n + consumed, nil
}
