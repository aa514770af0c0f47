// Package eventbus carries podcast lifecycle events between domains without
// direct coupling.
package eventbus

import (
	"sync"

	evbus "github.com/asaskevich/EventBus"
)

// Topics published by the podcast domain.
const (
	TopicPodcastCreated = "podcast.created"
	TopicPodcastDeleted = "podcast.deleted"
)

var (
	instance evbus.Bus
	once     sync.Once
)

// Get returns the process-wide event bus.
func Get() evbus.Bus {
	once.Do(func() {
		instance = evbus.New()
	})
	return instance
}

// Publish emits an event on the shared bus.
func Publish(topic string, args ...interface{}) {
	Get().Publish(topic, args...)
}

// Subscribe registers a handler for a topic.
func Subscribe(topic string, fn interface{}) error {
	return Get().Subscribe(topic, fn)
}

// SubscribeAsync registers a handler executed on its own goroutine.
func SubscribeAsync(topic string, fn interface{}) error {
	return Get().SubscribeAsync(topic, fn, false)
}
