package mqttcodec

import "fmt"

// Version identifies an MQTT protocol version. The value is the protocol
// level byte carried in the CONNECT variable header.
type Version byte

// Supported protocol versions.
const (
	MQTT31  Version = 3
	MQTT311 Version = 4
	MQTT5   Version = 5
)

// String returns the protocol version as written in the specifications.
func (v Version) String() string {
	switch v {
	case MQTT31:
		return "3.1"
	case MQTT311:
		return "3.1.1"
	case MQTT5:
		return "5.0"
	default:
		return "unknown"
	}
}

// ProtocolName returns the protocol name string for this version.
func (v Version) ProtocolName() string {
	if v == MQTT31 {
		return "MQIsdp"
	}
	return "MQTT"
}

// VersionFromProtocol resolves a protocol name and level pair from a
// CONNECT variable header. Pairs outside the three supported versions are
// a protocol violation.
func VersionFromProtocol(name string, level byte) (Version, error) {
	switch {
	case name == "MQIsdp" && level == 3:
		return MQTT31, nil
	case name == "MQTT" && level == 4:
		return MQTT311, nil
	case name == "MQTT" && level == 5:
		return MQTT5, nil
	default:
		return 0, fmt.Errorf("%w: unsupported protocol %q level %d", ErrProtocolViolation, name, level)
	}
}
