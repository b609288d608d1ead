package circuit

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
)

type BreakerSuite struct {
	suite.Suite
}

func TestBreakerSuite(t *testing.T) {
	suite.Run(t, new(BreakerSuite))
}

func (s *BreakerSuite) fail(b *Breaker, n int) StateChange {
	var last StateChange
	for range n {
		_, last = b.RecordFailure()
	}
	return last
}

func (s *BreakerSuite) TestNewBreakerIsClosed() {
	b := New("outcome-publisher")
	s.Equal("outcome-publisher", b.Name())
	s.Equal(StateClosed, b.State())
	s.False(b.IsOpen())
}

func (s *BreakerSuite) TestOpening() {
	s.Run("opens on the threshold failure only", func() {
		b := New("refdata", WithFailureThreshold(3))

		s.False(s.fail(b, 2).Opened)
		s.False(b.IsOpen())

		useFallback, change := b.RecordFailure()
		s.True(useFallback)
		s.True(change.Opened)
		s.True(b.IsOpen())

		_, change = b.RecordFailure()
		s.False(change.Opened, "an open circuit reports the transition once")
	})

	s.Run("a success between failures restarts the count", func() {
		b := New("refdata", WithFailureThreshold(3))
		s.fail(b, 2)
		b.RecordSuccess()
		s.fail(b, 2)
		s.False(b.IsOpen())
	})

	s.Run("default threshold is five", func() {
		b := New("refdata")
		s.False(s.fail(b, defaultFailureThreshold-1).Opened)
		s.True(s.fail(b, 1).Opened)
	})
}

func (s *BreakerSuite) TestClosing() {
	s.Run("closes after the success threshold", func() {
		b := New("outcome-publisher", WithFailureThreshold(1), WithSuccessThreshold(2))
		s.fail(b, 1)

		usePrimary, change := b.RecordSuccess()
		s.False(usePrimary)
		s.False(change.Closed)

		usePrimary, change = b.RecordSuccess()
		s.True(usePrimary)
		s.True(change.Closed)
		s.Equal(StateClosed, b.State())
	})

	s.Run("a failure while recovering restarts the success count", func() {
		b := New("outcome-publisher", WithFailureThreshold(1), WithSuccessThreshold(2))
		s.fail(b, 1)

		b.RecordSuccess()
		b.RecordFailure()
		_, change := b.RecordSuccess()
		s.False(change.Closed)
		s.True(b.IsOpen())
	})

	s.Run("reset closes immediately", func() {
		b := New("outcome-publisher", WithFailureThreshold(1))
		s.fail(b, 1)
		b.Reset()
		s.False(b.IsOpen())
	})
}

func (s *BreakerSuite) TestConcurrentFailuresOpenOnce() {
	b := New("outcome-publisher", WithFailureThreshold(10))

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		opened int
	)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, change := b.RecordFailure(); change.Opened {
				mu.Lock()
				opened++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	s.Equal(1, opened)
	s.True(b.IsOpen())
}
