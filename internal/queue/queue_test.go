package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"kasjer/internal/config"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	args := m.Called(ctx, channel, data, attrs)
	return args.String(0), args.Error(1)
}

func (m *mockBackend) Subscribe(ctx context.Context, channel string, handler Handler) error {
	args := m.Called(ctx, channel, handler)
	return args.Error(0)
}

func (m *mockBackend) Close() error {
	return m.Called().Error(0)
}

func TestPublishEvent(t *testing.T) {
	backend := new(mockBackend)
	p := NewPublisher(backend, "cashier.events")

	var sent []byte
	backend.On("Publish", mock.Anything, "cashier.events", mock.Anything, map[string]string{"event": EventDepositRequested}).
		Run(func(args mock.Arguments) { sent = args.Get(2).([]byte) }).
		Return("id-1", nil).Once()

	err := p.PublishEvent(context.Background(), EventDepositRequested, map[string]string{"reference": "ABC234"})
	require.NoError(t, err)
	backend.AssertExpectations(t)

	var evt Event
	require.NoError(t, json.Unmarshal(sent, &evt))
	require.Equal(t, EventDepositRequested, evt.Type)
	require.JSONEq(t, `{"reference":"ABC234"}`, string(evt.Payload))
	require.WithinDuration(t, time.Now(), evt.OccurredAt, time.Minute)
}

func TestPublishEvent_BackendError(t *testing.T) {
	backend := new(mockBackend)
	p := NewPublisher(backend, "q")
	backend.On("Publish", mock.Anything, "q", mock.Anything, mock.Anything).Return("", errors.New("broker down"))

	err := p.PublishEvent(context.Background(), EventWithdrawalRequested, struct{}{})
	require.ErrorContains(t, err, "broker down")
}

func TestConsume_DecodesEvents(t *testing.T) {
	backend := new(mockBackend)
	p := NewPublisher(backend, "q")

	body, _ := json.Marshal(Event{Type: EventMessageSent, Payload: json.RawMessage(`{"id":"m1"}`)})

	backend.On("Subscribe", mock.Anything, "q", mock.Anything).
		Run(func(args mock.Arguments) {
			h := args.Get(2).(Handler)
			require.NoError(t, h(context.Background(), Message{Data: []byte("not json")}))
			require.NoError(t, h(context.Background(), Message{Data: body}))
		}).
		Return(nil)

	var got []Event
	err := p.Consume(context.Background(), func(_ context.Context, evt Event) error {
		got = append(got, evt)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, EventMessageSent, got[0].Type)
}

func TestConnect_WithoutURLIsNop(t *testing.T) {
	p, err := Connect(config.MQConfig{Queue: "cashier.events"})
	require.NoError(t, err)
	require.Equal(t, "cashier.events", p.Queue())
	require.NoError(t, p.PublishEvent(context.Background(), EventDepositRequested, nil))
	require.NoError(t, p.Close())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, p.Consume(ctx, nil), context.Canceled)
}

func TestHeadersToAttributes(t *testing.T) {
	require.Nil(t, headersToAttributes(nil))
	attrs := headersToAttributes(map[string]interface{}{"event": "x", "raw": []byte("y"), "n": 3})
	require.Equal(t, map[string]string{"event": "x", "raw": "y", "n": "3"}, attrs)
}
