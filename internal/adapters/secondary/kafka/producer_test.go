package kafka

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProducer_Send(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	mock.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		if string(val) != `{"request_id":"r-1"}` {
			return errors.New("unexpected value " + string(val))
		}
		return nil
	})

	p := NewProducerFrom(mock, "scan_results", testLogger())
	require.NoError(t, p.Send(context.Background(), "r-1", []byte(`{"request_id":"r-1"}`)))
	require.NoError(t, p.Close())
}

func TestProducer_SendError(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	mock.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewProducerFrom(mock, "scan_results", testLogger())
	err := p.Send(context.Background(), "k", []byte("v"))
	require.Error(t, err)
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	assert.Contains(t, err.Error(), "topic=scan_results")
	require.NoError(t, p.Close())
}

func TestConfig_GetBrokers(t *testing.T) {
	assert.Equal(t, []string{"localhost:9092"}, (&Config{}).GetBrokers())
	assert.Equal(t, []string{"a:9092", "b:9092"}, (&Config{Brokers: "a:9092, b:9092"}).GetBrokers())
}

func TestConfig_SaramaConfigSASL(t *testing.T) {
	cfg := (&Config{
		SecurityProtocol: "SASL_SSL",
		SASLMechanism:    "SCRAM-SHA-256",
		SASLUsername:     "u",
		SASLPassword:     "p",
	}).SaramaConfig()

	assert.True(t, cfg.Net.SASL.Enable)
	assert.True(t, cfg.Net.TLS.Enable)
	assert.Equal(t, sarama.SASLMechanism(sarama.SASLTypeSCRAMSHA256), cfg.Net.SASL.Mechanism)

	plain := (&Config{}).SaramaConfig()
	assert.False(t, plain.Net.SASL.Enable)
}

func TestKafkaConfigs_Get(t *testing.T) {
	kc := KafkaConfigs{List: []KafkaConfig{
		{Name: ScanRequestsName, Config: &Config{Topic: "requests"}},
		{Name: ScanResultsName, Config: &Config{Topic: "results"}},
	}}

	cfg, ok := kc.Get(ScanResultsName)
	require.True(t, ok)
	assert.Equal(t, "results", cfg.Topic)

	_, ok = kc.Get("missing")
	assert.False(t, ok)
}
