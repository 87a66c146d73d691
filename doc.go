// Package mqttcodec decodes MQTT control packet streams into discrete
// messages for protocol versions 3.1, 3.1.1 and 5.0.
//
// The protocol version is latched per connection from the first CONNECT
// packet observed on the stream, following the version negotiation rules
// of the OASIS standards:
// https://docs.oasis-open.org/mqtt/mqtt/v5.0/mqtt-v5.0.html
//
// # Stream decoding
//
// A StreamDecoder is bound to exactly one connection. The owning I/O loop
// feeds it raw chunks as they arrive; chunk boundaries are arbitrary and a
// single chunk may complete zero, one, or many messages:
//
//	dec := mqttcodec.NewStreamDecoder(
//	    mqttcodec.WithMaxMessageSize(64 * 1024),
//	)
//	for {
//	    n, err := conn.Read(buf)
//	    if err != nil {
//	        break
//	    }
//	    for _, msg := range dec.Feed(buf[:n]) {
//	        if msg.Invalid() {
//	            // decode failed, connection should be torn down
//	        }
//	    }
//	}
//
// Decoding never fails hard: a malformed packet is emitted as a single
// invalid Message carrying the failure cause, after which the decoder
// swallows all further input until the connection ends.
//
// # Collaborators
//
// The client-identifier, packet-id and topic-name validity rules are
// pluggable through the Validator interface, and message assembly through
// the MessageFactory interface. Structured logging and metrics hook in
// through the Logger and Metrics interfaces:
//
//	dec := mqttcodec.NewStreamDecoder(
//	    mqttcodec.WithLogger(mqttcodec.NewStdLogger(os.Stdout, mqttcodec.LogLevelWarn)),
//	    mqttcodec.WithMetrics(mqttcodec.NewMemoryMetrics()),
//	)
package mqttcodec
