package mqttcodec

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoderDefaults(t *testing.T) {
	d := NewStreamDecoder()

	assert.Equal(t, DefaultMaxMessageSize, d.maxMessageSize)
	assert.IsType(t, &NoOpLogger{}, d.logger)
	assert.IsType(t, &NoOpMetrics{}, d.metrics)
	assert.IsType(t, DefaultValidator{}, d.validator)
	assert.IsType(t, defaultMessageFactory{}, d.factory)
	assert.Equal(t, MQTT311, d.Version())
}

func TestWithMaxMessageSize(t *testing.T) {
	d := NewStreamDecoder(WithMaxMessageSize(1024))
	assert.Equal(t, 1024, d.maxMessageSize)

	t.Run("non-positive values ignored", func(t *testing.T) {
		d := NewStreamDecoder(WithMaxMessageSize(0), WithMaxMessageSize(-5))
		assert.Equal(t, DefaultMaxMessageSize, d.maxMessageSize)
	})
}

func TestWithNilCollaboratorsIgnored(t *testing.T) {
	d := NewStreamDecoder(
		WithLogger(nil),
		WithMetrics(nil),
		WithValidator(nil),
		WithMessageFactory(nil),
	)

	assert.NotNil(t, d.logger)
	assert.NotNil(t, d.metrics)
	assert.NotNil(t, d.validator)
	assert.NotNil(t, d.factory)
}

// rejectAllValidator fails every predicate.
type rejectAllValidator struct{}

func (rejectAllValidator) ValidClientID(Version, string) bool { return false }
func (rejectAllValidator) ValidMessageID(int) bool            { return false }
func (rejectAllValidator) ValidPublishTopicName(string) bool  { return false }

func TestWithValidator(t *testing.T) {
	d := NewStreamDecoder(WithValidator(rejectAllValidator{}))
	feedInvalid(t, d, testPacket(0x40, []byte{0x00, 0x01}), ErrValueRange)
}

// taggingFactory wraps assembled messages to show the factory ran.
type taggingFactory struct {
	built   int
	invalid int
}

func (f *taggingFactory) NewMessage(header *FixedHeader, vh VariableHeader, payload Payload) Message {
	f.built++
	return Message{Header: header, VariableHeader: vh, Payload: payload}
}

func (f *taggingFactory) NewInvalidMessage(header *FixedHeader, vh VariableHeader, cause error) Message {
	f.invalid++
	return Message{Header: header, VariableHeader: vh, Err: cause}
}

func TestWithMessageFactory(t *testing.T) {
	factory := &taggingFactory{}
	d := NewStreamDecoder(WithMessageFactory(factory))

	d.Feed(testPacket(0xC0, nil))
	assert.Equal(t, 1, factory.built)

	d.Feed([]byte{0x00, 0x00})
	assert.Equal(t, 1, factory.invalid)
}

func TestWithLogger(t *testing.T) {
	logger := NewStdLogger(io.Discard, LogLevelNone)
	d := NewStreamDecoder(WithLogger(logger))
	require.Same(t, logger, d.logger)
}
