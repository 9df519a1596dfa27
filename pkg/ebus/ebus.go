// Package ebus is the telemetry feed in front of the gauges. Publishers
// push float values on named topics, subscribers get them on buffered
// channels. The latest value per topic is cached so late subscribers start
// from the current reading.
package ebus

import (
	"errors"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/roffe/txgauge/pkg/logger"
)

const (
	chanSize = 100
	cacheTTL = 1 * time.Minute
)

var ErrPublishFull = errors.New("publish channel full")

type Message struct {
	Topic string
	Value float64
}

type Bus struct {
	subsMutex sync.Mutex
	subs      map[string][]chan float64
	subsAll   []chan Message

	aggregatorsLock sync.Mutex
	aggregators     []*EventAggregator

	inChan       chan Message
	unsubChan    chan chan float64
	unsubAllChan chan chan Message
	cache        *ttlcache.Cache[string, float64]

	done      chan struct{}
	closeOnce sync.Once
}

func New() *Bus {
	b := &Bus{
		subs:         make(map[string][]chan float64),
		inChan:       make(chan Message, chanSize),
		unsubChan:    make(chan chan float64, chanSize),
		unsubAllChan: make(chan chan Message, chanSize),
		cache: ttlcache.New[string, float64](
			ttlcache.WithTTL[string, float64](cacheTTL),
		),
		done: make(chan struct{}),
	}
	go b.cache.Start()
	go b.run()
	return b
}

// Close stops the dispatcher. Subscriber channels are left open.
func (b *Bus) Close() {
	b.closeOnce.Do(func() {
		close(b.done)
		b.cache.Stop()
	})
}

func (b *Bus) run() {
	for {
		select {
		case <-b.done:
			return
		case msg := <-b.inChan:
			b.dispatch(msg)
		case unsub := <-b.unsubAllChan:
			b.removeAll(unsub)
		case unsub := <-b.unsubChan:
			b.remove(unsub)
		}
	}
}

func (b *Bus) dispatch(msg Message) {
	if v := b.cache.Get(msg.Topic); v != nil && v.Value() == msg.Value {
		return
	}
	b.cache.Set(msg.Topic, msg.Value, ttlcache.DefaultTTL)

	b.subsMutex.Lock()
	var stale []chan Message
	for _, sub := range b.subsAll {
		select {
		case sub <- msg:
		default:
			stale = append(stale, sub)
		}
	}
	for _, sub := range b.subs[msg.Topic] {
		select {
		case sub <- msg.Value:
		default:
			logger.Debug().Str("topic", msg.Topic).Msg("subscriber full, dropping value")
		}
	}
	b.subsMutex.Unlock()

	for _, sub := range stale {
		b.removeAll(sub)
	}

	b.aggregatorsLock.Lock()
	aggs := b.aggregators
	b.aggregatorsLock.Unlock()
	for _, agg := range aggs {
		agg.fun(b, msg.Topic, msg.Value)
	}
}

func (b *Bus) removeAll(unsub chan Message) {
	b.subsMutex.Lock()
	defer b.subsMutex.Unlock()
	for i, sub := range b.subsAll {
		if sub == unsub {
			logger.Debug().Msg("unsubscribe all")
			b.subsAll = append(b.subsAll[:i], b.subsAll[i+1:]...)
			close(sub)
			return
		}
	}
}

func (b *Bus) remove(unsub chan float64) {
	b.subsMutex.Lock()
	defer b.subsMutex.Unlock()
	for topic, subz := range b.subs {
		for i, sub := range subz {
			if sub == unsub {
				logger.Debug().Str("topic", topic).Msg("unsubscribe")
				b.subs[topic] = append(subz[:i], subz[i+1:]...)
				close(unsub)
				if len(b.subs[topic]) == 0 {
					delete(b.subs, topic)
				}
				return
			}
		}
	}
}

// Publish queues a value without blocking.
func (b *Bus) Publish(topic string, data float64) error {
	select {
	case b.inChan <- Message{Topic: topic, Value: data}:
		return nil
	default:
		return ErrPublishFull
	}
}

// Last returns the cached value for topic.
func (b *Bus) Last(topic string) (float64, bool) {
	if itm := b.cache.Get(topic); itm != nil {
		return itm.Value(), true
	}
	return 0, false
}

func (b *Bus) Subscribe(topic string) chan float64 {
	logger.Debug().Str("topic", topic).Msg("subscribe")
	respChan := make(chan float64, chanSize)
	b.subsMutex.Lock()
	b.subs[topic] = append(b.subs[topic], respChan)
	b.subsMutex.Unlock()
	if itm := b.cache.Get(topic); itm != nil {
		respChan <- itm.Value()
	}
	return respChan
}

// SubscribeFunc calls f for every value on topic and returns a function
// that unsubscribes it.
func (b *Bus) SubscribeFunc(topic string, f func(float64)) func() {
	respChan := b.Subscribe(topic)
	go func() {
		for v := range respChan {
			f(v)
		}
	}()
	return func() {
		b.Unsubscribe(respChan)
	}
}

func (b *Bus) Unsubscribe(channel chan float64) {
	b.unsubChan <- channel
}

func (b *Bus) SubscribeAll() chan Message {
	respChan := make(chan Message, chanSize)
	b.subsMutex.Lock()
	b.subsAll = append(b.subsAll, respChan)
	b.subsMutex.Unlock()

	b.cache.Range(func(item *ttlcache.Item[string, float64]) bool {
		select {
		case respChan <- Message{Topic: item.Key(), Value: item.Value()}:
			return true
		default:
			return false
		}
	})
	return respChan
}

func (b *Bus) SubscribeAllFunc(f func(topic string, value float64)) func() {
	respChan := b.SubscribeAll()
	go func() {
		for m := range respChan {
			f(m.Topic, m.Value)
		}
	}()
	return func() {
		b.UnsubscribeAll(respChan)
	}
}

func (b *Bus) UnsubscribeAll(channel chan Message) {
	b.unsubAllChan <- channel
}

var (
	initOnce   sync.Once
	defaultBus *Bus
)

// Default returns the process wide bus.
func Default() *Bus {
	initOnce.Do(func() {
		defaultBus = New()
	})
	return defaultBus
}

func Publish(topic string, data float64) error { return Default().Publish(topic, data) }

func Subscribe(topic string) chan float64 { return Default().Subscribe(topic) }

func SubscribeFunc(topic string, f func(float64)) func() { return Default().SubscribeFunc(topic, f) }

func Unsubscribe(channel chan float64) { Default().Unsubscribe(channel) }
