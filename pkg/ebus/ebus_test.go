package ebus_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roffe/txgauge/pkg/ebus"
)

const wait = 2 * time.Second

func newBus(t *testing.T) *ebus.Bus {
	t.Helper()
	b := ebus.New()
	t.Cleanup(b.Close)
	return b
}

func recv(t *testing.T, ch <-chan float64) float64 {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed")
		return v
	case <-time.After(wait):
		t.Fatal("timed out waiting for value")
	}
	return 0
}

func TestPublish(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		data  float64
	}{
		{name: "speed", topic: "speed", data: 88.2},
		{name: "voltage", topic: "battery_voltage", data: 51.8},
		{name: "negative", topic: "temp", data: -12.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBus(t)
			ch := b.Subscribe(tt.topic)
			require.NoError(t, b.Publish(tt.topic, tt.data))
			assert.Equal(t, tt.data, recv(t, ch))
		})
	}
}

func TestSubscribeGetsLastValue(t *testing.T) {
	b := newBus(t)
	first := b.Subscribe("rpm")
	require.NoError(t, b.Publish("rpm", 3500))
	assert.Equal(t, 3500.0, recv(t, first))

	v, ok := b.Last("rpm")
	require.True(t, ok)
	assert.Equal(t, 3500.0, v)

	late := b.Subscribe("rpm")
	assert.Equal(t, 3500.0, recv(t, late))
}

func TestDuplicateValuesAreDropped(t *testing.T) {
	b := newBus(t)
	ch := b.Subscribe("boost")
	require.NoError(t, b.Publish("boost", 1.1))
	require.NoError(t, b.Publish("boost", 1.1))
	require.NoError(t, b.Publish("boost", 1.2))
	assert.Equal(t, 1.1, recv(t, ch))
	assert.Equal(t, 1.2, recv(t, ch))
}

func TestSubscribeFunc(t *testing.T) {
	b := newBus(t)
	got := make(chan float64, 1)
	cancel := b.SubscribeFunc("current", func(v float64) {
		got <- v
	})
	require.NotNil(t, cancel)
	require.NoError(t, b.Publish("current", 28.5))
	assert.Equal(t, 28.5, recv(t, got))
	cancel()
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := newBus(t)
	ch := b.Subscribe("x")
	b.Unsubscribe(ch)
	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(wait):
		t.Fatal("channel not closed")
	}
}

func TestSubscribeAll(t *testing.T) {
	b := newBus(t)
	all := b.SubscribeAll()
	require.NoError(t, b.Publish("a", 1))
	require.NoError(t, b.Publish("b", 2))

	seen := map[string]float64{}
	for len(seen) < 2 {
		select {
		case m := <-all:
			seen[m.Topic] = m.Value
		case <-time.After(wait):
			t.Fatalf("timed out, got %v", seen)
		}
	}
	assert.Equal(t, map[string]float64{"a": 1, "b": 2}, seen)
	b.UnsubscribeAll(all)
}

func TestSubscribeAllFunc(t *testing.T) {
	b := newBus(t)
	got := make(chan ebus.Message, 4)
	cancel := b.SubscribeAllFunc(func(topic string, value float64) {
		got <- ebus.Message{Topic: topic, Value: value}
	})
	t.Cleanup(cancel)
	require.NoError(t, b.Publish("battery_voltage", 51.8))
	select {
	case m := <-got:
		assert.Equal(t, ebus.Message{Topic: "battery_voltage", Value: 51.8}, m)
	case <-time.After(wait):
		t.Fatal("timed out waiting for message")
	}
}

func TestAggregators(t *testing.T) {
	tests := []struct {
		op   string
		a, b float64
		want float64
	}{
		{op: "product", a: 51.8, b: 28.5, want: 51.8 * 28.5},
		{op: "diff", a: 10, b: 25, want: 15},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			b := newBus(t)
			agg, err := ebus.NewAggregator(tt.op, "first", "second", "out")
			require.NoError(t, err)
			b.RegisterAggregator(agg)

			out := b.Subscribe("out")
			require.NoError(t, b.Publish("first", tt.a))
			require.NoError(t, b.Publish("second", tt.b))
			assert.InDelta(t, tt.want, recv(t, out), 1e-9)
		})
	}
}

func TestNewAggregatorUnknownOp(t *testing.T) {
	_, err := ebus.NewAggregator("ratio", "a", "b", "c")
	assert.Error(t, err)
}

func TestDefaultBus(t *testing.T) {
	ch := ebus.Subscribe("default_bus_test")
	require.NoError(t, ebus.Publish("default_bus_test", 3.14))
	assert.Equal(t, 3.14, recv(t, ch))
	ebus.Unsubscribe(ch)
}
