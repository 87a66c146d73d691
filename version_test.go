package mqttcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionFromProtocol(t *testing.T) {
	tests := []struct {
		name    string
		proto   string
		level   byte
		want    Version
		wantErr bool
	}{
		{"3.1", "MQIsdp", 3, MQTT31, false},
		{"3.1.1", "MQTT", 4, MQTT311, false},
		{"5.0", "MQTT", 5, MQTT5, false},
		{"wrong level for MQIsdp", "MQIsdp", 4, 0, true},
		{"wrong level for MQTT", "MQTT", 3, 0, true},
		{"unknown name", "MQXX", 4, 0, true},
		{"empty name", "", 5, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := VersionFromProtocol(tt.proto, tt.level)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrProtocolViolation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestVersionString(t *testing.T) {
	assert.Equal(t, "3.1", MQTT31.String())
	assert.Equal(t, "3.1.1", MQTT311.String())
	assert.Equal(t, "5.0", MQTT5.String())
	assert.Equal(t, "unknown", Version(0).String())
}

func TestVersionProtocolName(t *testing.T) {
	assert.Equal(t, "MQIsdp", MQTT31.ProtocolName())
	assert.Equal(t, "MQTT", MQTT311.ProtocolName())
	assert.Equal(t, "MQTT", MQTT5.ProtocolName())
}
