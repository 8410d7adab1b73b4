package dispatch

import (
	"sync"

	"github.com/mcoot/unogame-go/internal/model"
)

// KeyedMutex serializes all mutating operations on one channel's
// session. The session core assumes single-writer semantics per key;
// HTTP handlers and timer callbacks both take the channel's lock before
// touching its session, so a timer fire can never race a user action.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[model.ChannelID]*channelLock
}

type channelLock struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedMutex creates a KeyedMutex
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		locks: make(map[model.ChannelID]*channelLock),
	}
}

// Lock acquires the channel's lock and returns its release func.
// Different channels never contend.
func (k *KeyedMutex) Lock(channel model.ChannelID) func() {
	k.mu.Lock()
	l, ok := k.locks[channel]
	if !ok {
		l = &channelLock{}
		k.locks[channel] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, channel)
		}
		k.mu.Unlock()
	}
}
