package connectors

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"datastandard-service/service/models"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(msgs)
	return args.Error(0)
}

func (m *mockWriter) Close() error {
	return m.Called().Error(0)
}

func TestKafkaConnector_Publish(t *testing.T) {
	writer := &mockWriter{}
	writer.On("WriteMessages", mock.MatchedBy(func(msgs []kafka.Message) bool {
		if len(msgs) != 1 || string(msgs[0].Key) != "term/term.json" {
			return false
		}
		var log models.HistoryLog
		return json.Unmarshal(msgs[0].Value, &log) == nil && log.Action == models.HistoryActionCreate
	})).Return(nil).Once()

	connector := NewKafkaConnectorWithWriter(writer, "catalog-history")
	err := connector.Publish(context.Background(), models.HistoryLog{
		ID:          "h1",
		Action:      models.HistoryActionCreate,
		CatalogType: models.CatalogTerm,
		Filename:    "term.json",
	})

	require.NoError(t, err)
	writer.AssertExpectations(t)
}

func TestKafkaConnector_PublishError(t *testing.T) {
	writer := &mockWriter{}
	writer.On("WriteMessages", mock.Anything).Return(errors.New("broker down"))

	connector := NewKafkaConnectorWithWriter(writer, "catalog-history")
	err := connector.Publish(context.Background(), models.HistoryLog{CatalogType: "term", Filename: "term.json"})
	assert.ErrorContains(t, err, "broker down")
}
