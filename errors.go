package mqttcodec

import "errors"

// Decode errors. Every failure emitted inside an invalid Message wraps one
// of these sentinels, so callers can classify causes with errors.Is.
var (
	// ErrFraming indicates a malformed or overlong variable byte integer
	// encoding, including the remaining length field of the fixed header.
	ErrFraming = errors.New("malformed variable byte integer")

	// ErrOversizedMessage indicates the region following the variable header
	// exceeds the configured maximum message size.
	ErrOversizedMessage = errors.New("message too large")

	// ErrTrailingData indicates the payload decode left a nonzero
	// remaining-length residue.
	ErrTrailingData = errors.New("non-zero remaining payload bytes")

	// ErrUnknownProperty indicates a property identifier outside the set
	// defined by the MQTT v5.0 specification.
	ErrUnknownProperty = errors.New("unknown property identifier")

	// ErrProtocolViolation indicates reserved bits set, an unsupported
	// protocol name/level pair, or a type/flags mismatch.
	ErrProtocolViolation = errors.New("protocol violation")

	// ErrIdentifierRejected indicates an invalid or disallowed client
	// identifier in a CONNECT payload.
	ErrIdentifierRejected = errors.New("client identifier rejected")

	// ErrValueRange indicates a field value outside its allowed range,
	// such as a zero packet identifier or a QoS of 3.
	ErrValueRange = errors.New("value out of range")
)

// errNeedMoreData reports that a phase attempt ran out of buffered input.
// It triggers a rewind to the phase mark and never escapes Feed.
var errNeedMoreData = errors.New("need more data")
