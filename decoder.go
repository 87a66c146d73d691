package mqttcodec

import (
	"errors"
	"fmt"
)

// decoderPhase is the phase of the decode state machine. Phases advance
// ReadFixedHeader → ReadVariableHeader → ReadPayload and cycle back on
// emission; Discard is terminal.
type decoderPhase byte

const (
	phaseReadFixedHeader decoderPhase = iota
	phaseReadVariableHeader
	phaseReadPayload
	phaseDiscard
)

// StreamDecoder decodes one connection's byte stream into MQTT messages.
//
// A decoder owns a checkpoint of the in-flight message (committed fixed
// and variable headers plus the remaining-byte counter) so that decoding
// resumes cleanly across arbitrarily fragmented deliveries. It is bound to
// exactly one connection and must not be shared: the owning I/O loop calls
// Feed synchronously, so no locking is involved by construction.
type StreamDecoder struct {
	maxMessageSize int
	logger         Logger
	metrics        Metrics
	validator      Validator
	factory        MessageFactory

	r     reader
	phase decoderPhase

	// Checkpoint of the in-flight message, committed phase by phase.
	header         *FixedHeader
	varHeader      VariableHeader
	bytesRemaining int

	// version is latched from the first CONNECT seen on the stream.
	// Before that it follows the 3.1.1 wire rules.
	version Version
}

// NewStreamDecoder creates a decoder for a single connection's stream.
func NewStreamDecoder(opts ...DecoderOption) *StreamDecoder {
	cfg := defaultDecoderConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &StreamDecoder{
		maxMessageSize: cfg.maxMessageSize,
		logger:         cfg.logger,
		metrics:        cfg.metrics,
		validator:      cfg.validator,
		factory:        cfg.factory,
		version:        MQTT311,
	}
}

// Version returns the protocol version in effect for the connection.
func (d *StreamDecoder) Version() Version {
	return d.version
}

// Discarding reports whether the decoder has entered discard mode. Once
// discarding, it stays so for the life of the connection.
func (d *StreamDecoder) Discarding() bool {
	return d.phase == phaseDiscard
}

// Feed delivers the next chunk of the connection's byte stream and returns
// the messages it completed, in stream order. A chunk may complete zero,
// one, or many messages. After a decode error the returned slice ends with
// a single invalid message and all further input is swallowed.
func (d *StreamDecoder) Feed(chunk []byte) []Message {
	d.metrics.Counter(MetricBytesFed, nil).Add(float64(len(chunk)))

	if d.phase == phaseDiscard {
		d.metrics.Counter(MetricBytesDiscarded, nil).Add(float64(len(chunk)))
		return nil
	}

	d.r.buf = append(d.r.buf, chunk...)

	var out []Message
	for {
		msg, emitted, again := d.step()
		if emitted {
			out = append(out, msg)
		}
		if !again {
			break
		}
	}

	d.metrics.Gauge(MetricBufferedBytes, nil).Set(float64(d.r.buffered()))
	return out
}

// step attempts the current phase once. It reports the emitted message if
// the attempt completed or failed one, and whether another attempt should
// run against the buffered input.
func (d *StreamDecoder) step() (Message, bool, bool) {
	switch d.phase {
	case phaseReadFixedHeader:
		d.r.setMark()
		header, err := decodeFixedHeader(&d.r)
		if errors.Is(err, errNeedMoreData) {
			d.r.rewind()
			return Message{}, false, false
		}
		if err != nil {
			return d.invalidMessage(err), true, false
		}
		d.header = header
		d.bytesRemaining = header.RemainingLength
		d.phase = phaseReadVariableHeader
		return Message{}, false, true

	case phaseReadVariableHeader:
		d.r.setMark()
		varHeader, n, err := d.decodeVariableHeader(&d.r, d.header)
		if errors.Is(err, errNeedMoreData) {
			d.r.rewind()
			return Message{}, false, false
		}
		if err != nil {
			return d.invalidMessage(err), true, false
		}
		d.varHeader = varHeader
		d.bytesRemaining -= n
		if d.bytesRemaining > d.maxMessageSize {
			cause := fmt.Errorf("%w: %d bytes after variable header", ErrOversizedMessage, d.bytesRemaining)
			return d.invalidMessage(cause), true, false
		}
		d.phase = phaseReadPayload
		return Message{}, false, true

	case phaseReadPayload:
		if d.bytesRemaining < 0 {
			cause := fmt.Errorf("%w: %d (%s)", ErrTrailingData, d.bytesRemaining, d.header.Type)
			return d.invalidMessage(cause), true, false
		}
		d.r.setMark()
		payload, n, err := d.decodePayload(&d.r, d.header, d.varHeader, d.bytesRemaining)
		if errors.Is(err, errNeedMoreData) {
			d.r.rewind()
			return Message{}, false, false
		}
		if err != nil {
			return d.invalidMessage(err), true, false
		}
		d.bytesRemaining -= n
		if d.bytesRemaining != 0 {
			cause := fmt.Errorf("%w: %d (%s)", ErrTrailingData, d.bytesRemaining, d.header.Type)
			return d.invalidMessage(cause), true, false
		}

		msg := d.factory.NewMessage(d.header, d.varHeader, payload)
		d.metrics.Counter(MetricMessages, MetricLabels{"type": d.header.Type.String()}).Inc()
		d.logger.Debug("decoded packet", LogFields{
			"type":    d.header.Type.String(),
			"version": d.version.String(),
		})

		d.header = nil
		d.varHeader = nil
		d.phase = phaseReadFixedHeader
		d.r.release()
		return msg, true, true

	default:
		return Message{}, false, false
	}
}

// invalidMessage converts a decode failure into the terminal emission for
// this connection: the partial header state is wrapped with the cause and
// the decoder latches into discard mode.
func (d *StreamDecoder) invalidMessage(cause error) Message {
	msg := d.factory.NewInvalidMessage(d.header, d.varHeader, cause)

	d.metrics.Counter(MetricInvalidMessages, nil).Inc()
	d.metrics.Counter(MetricBytesDiscarded, nil).Add(float64(d.r.buffered()))
	d.logger.Warn("decode failed, discarding connection stream", LogFields{
		"type":  msg.Type().String(),
		"cause": cause.Error(),
	})

	d.header = nil
	d.varHeader = nil
	d.phase = phaseDiscard

	// Alignment of any following message can no longer be trusted. Drop
	// the buffer reference; emitted payload spans stay valid.
	d.r.buf = nil
	d.r.pos = 0
	d.r.mark = 0
	return msg
}
