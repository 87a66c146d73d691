package mqttcodec

// DefaultMaxMessageSize is the default cap, in bytes, on the variable
// header plus payload region of a single message.
const DefaultMaxMessageSize = 8092

// DecoderOption configures a StreamDecoder.
type DecoderOption func(*decoderConfig)

type decoderConfig struct {
	maxMessageSize int
	logger         Logger
	metrics        Metrics
	validator      Validator
	factory        MessageFactory
}

func defaultDecoderConfig() *decoderConfig {
	return &decoderConfig{
		maxMessageSize: DefaultMaxMessageSize,
		logger:         NewNoOpLogger(),
		metrics:        &NoOpMetrics{},
		validator:      DefaultValidator{},
		factory:        defaultMessageFactory{},
	}
}

// WithMaxMessageSize sets the maximum decodable message size in bytes,
// measured over the region following the fixed header. Values below 1 are
// ignored.
func WithMaxMessageSize(size int) DecoderOption {
	return func(c *decoderConfig) {
		if size > 0 {
			c.maxMessageSize = size
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger Logger) DecoderOption {
	return func(c *decoderConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(metrics Metrics) DecoderOption {
	return func(c *decoderConfig) {
		if metrics != nil {
			c.metrics = metrics
		}
	}
}

// WithValidator sets the validity predicates consumed during decoding.
func WithValidator(validator Validator) DecoderOption {
	return func(c *decoderConfig) {
		if validator != nil {
			c.validator = validator
		}
	}
}

// WithMessageFactory sets the message assembly factory.
func WithMessageFactory(factory MessageFactory) DecoderOption {
	return func(c *decoderConfig) {
		if factory != nil {
			c.factory = factory
		}
	}
}
