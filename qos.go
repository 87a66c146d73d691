package mqttcodec

// QoS represents an MQTT quality of service level. The FAILURE value is
// the reserved SUBACK return code 0x80.
type QoS byte

const (
	QoSAtMostOnce  QoS = 0
	QoSAtLeastOnce QoS = 1
	QoSExactlyOnce QoS = 2
	QoSFailure     QoS = 0x80
)

// String returns the string representation of the QoS level.
func (q QoS) String() string {
	switch q {
	case QoSAtMostOnce:
		return "AT_MOST_ONCE"
	case QoSAtLeastOnce:
		return "AT_LEAST_ONCE"
	case QoSExactlyOnce:
		return "EXACTLY_ONCE"
	case QoSFailure:
		return "FAILURE"
	default:
		return "UNKNOWN"
	}
}

// Valid returns true for the three deliverable QoS levels.
func (q QoS) Valid() bool {
	return q <= QoSExactlyOnce
}
