package mqttcodec

import "strings"

// Validator supplies the validity predicates consumed during decoding.
// The decoder turns a false result into the matching decode error; the
// predicates themselves never fail.
type Validator interface {
	// ValidClientID reports whether a CONNECT client identifier is
	// acceptable for the given protocol version.
	ValidClientID(version Version, clientID string) bool

	// ValidMessageID reports whether a packet identifier is in range.
	ValidMessageID(id int) bool

	// ValidPublishTopicName reports whether a PUBLISH topic name is
	// acceptable.
	ValidPublishTopicName(topic string) bool
}

// DefaultValidator implements the validity rules of the MQTT
// specifications.
type DefaultValidator struct{}

// ValidClientID applies the version-specific identifier rules: MQTT 3.1
// requires 1 to 23 characters, later versions leave length policy to the
// server.
func (DefaultValidator) ValidClientID(version Version, clientID string) bool {
	if version == MQTT31 {
		return len(clientID) >= 1 && len(clientID) <= 23
	}
	return true
}

// ValidMessageID accepts the non-zero 16-bit range.
func (DefaultValidator) ValidMessageID(id int) bool {
	return id > 0 && id <= maxUint16
}

// ValidPublishTopicName rejects topic names containing wildcard
// characters. Empty names pass: MQTT v5.0 permits them when a topic alias
// is in use.
func (DefaultValidator) ValidPublishTopicName(topic string) bool {
	return !strings.ContainsAny(topic, "#+")
}
