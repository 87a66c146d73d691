package mqttcodec

// MetricLabels represents key-value pairs attached to a metric.
type MetricLabels map[string]string

// Metrics defines the interface for collecting decoder metrics.
type Metrics interface {
	// Counter returns a counter metric.
	Counter(name string, labels MetricLabels) Counter

	// Gauge returns a gauge metric.
	Gauge(name string, labels MetricLabels) Gauge
}

// Counter is a monotonically increasing counter.
type Counter interface {
	// Inc increments the counter by 1.
	Inc()

	// Add adds the given value to the counter.
	Add(delta float64)

	// Value returns the current value.
	Value() float64
}

// Gauge is a metric that can go up and down.
type Gauge interface {
	// Set sets the gauge to the given value.
	Set(value float64)

	// Value returns the current value.
	Value() float64
}

// NoOpMetrics is a no-op implementation of Metrics.
type NoOpMetrics struct{}

// Counter returns a no-op counter.
func (*NoOpMetrics) Counter(_ string, _ MetricLabels) Counter { return noOpCounter{} }

// Gauge returns a no-op gauge.
func (*NoOpMetrics) Gauge(_ string, _ MetricLabels) Gauge { return noOpGauge{} }

type noOpCounter struct{}

func (noOpCounter) Inc()           {}
func (noOpCounter) Add(_ float64)  {}
func (noOpCounter) Value() float64 { return 0 }

type noOpGauge struct{}

func (noOpGauge) Set(_ float64)  {}
func (noOpGauge) Value() float64 { return 0 }

// Metric names published by the decoder.
const (
	// MetricBytesFed counts bytes delivered to Feed.
	MetricBytesFed = "mqtt_decoder_bytes_fed"
	// MetricBytesDiscarded counts bytes swallowed in discard mode.
	MetricBytesDiscarded = "mqtt_decoder_bytes_discarded"
	// MetricMessages counts well-formed messages, labeled by packet type.
	MetricMessages = "mqtt_decoder_messages"
	// MetricInvalidMessages counts emitted invalid messages.
	MetricInvalidMessages = "mqtt_decoder_invalid_messages"
	// MetricBufferedBytes gauges bytes buffered awaiting more input.
	MetricBufferedBytes = "mqtt_decoder_buffered_bytes"
)
