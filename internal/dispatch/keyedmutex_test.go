package dispatch

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSerializesSameChannel(t *testing.T) {
	km := NewKeyedMutex()

	const workers = 32
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock("chan-1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestDifferentChannelsDoNotBlock(t *testing.T) {
	km := NewKeyedMutex()

	unlock1 := km.Lock("chan-1")
	defer unlock1()

	done := make(chan struct{})
	go func() {
		unlock2 := km.Lock("chan-2")
		unlock2()
		close(done)
	}()

	// chan-2 must proceed while chan-1 is held.
	<-done
}

func TestLockReleasedCanBeReacquired(t *testing.T) {
	km := NewKeyedMutex()

	unlock := km.Lock("chan-1")
	unlock()

	unlock = km.Lock("chan-1")
	unlock()
}
