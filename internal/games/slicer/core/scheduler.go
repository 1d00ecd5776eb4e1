package core

import (
	"context"
	"time"
)

// maxCatchUp bounds how many spawns of one kind a single Due call may emit
// after a long stall (e.g. a suspended terminal).
const maxCatchUp = 8

// Enqueuer accepts spawn requests from another goroutine.
type Enqueuer interface {
	Enqueue(kind Kind)
}

// Scheduler drives the two fixed-period spawn timers independently of the
// tick rate.
type Scheduler struct {
	coinEvery time.Duration
	bombEvery time.Duration
	nextCoin  time.Duration
	nextBomb  time.Duration
}

// NewScheduler creates timers whose first firing is one period after start.
func NewScheduler(coinEvery, bombEvery, start time.Duration) *Scheduler {
	s := &Scheduler{
		coinEvery: max(coinEvery, time.Millisecond),
		bombEvery: max(bombEvery, time.Millisecond),
	}
	s.Reset(start)
	return s
}

// Reset restarts both timers from now.
func (s *Scheduler) Reset(now time.Duration) {
	s.nextCoin = now + s.coinEvery
	s.nextBomb = now + s.bombEvery
}

// Due returns the spawns whose deadline has passed, in deadline order. A coin
// and a bomb due at the same instant yield the coin first.
func (s *Scheduler) Due(now time.Duration) []Kind {
	var due []Kind
	coins, bombs := 0, 0

	for {
		coinDue := s.nextCoin <= now && coins < maxCatchUp
		bombDue := s.nextBomb <= now && bombs < maxCatchUp
		if !coinDue && !bombDue {
			break
		}
		if coinDue && (!bombDue || s.nextCoin <= s.nextBomb) {
			due = append(due, KindCoin)
			s.nextCoin += s.coinEvery
			coins++
			continue
		}
		due = append(due, KindBomb)
		s.nextBomb += s.bombEvery
		bombs++
	}

	// Drop whatever the catch-up limit left behind, keeping the phase.
	s.nextCoin = skipMissed(s.nextCoin, s.coinEvery, now)
	s.nextBomb = skipMissed(s.nextBomb, s.bombEvery, now)
	return due
}

func skipMissed(next, every, now time.Duration) time.Duration {
	if next > now {
		return next
	}
	missed := (now-next)/every + 1
	return next + missed*every
}

// Run feeds spawns into q from real-time tickers until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context, q Enqueuer) {
	coinTicker := time.NewTicker(s.coinEvery)
	defer coinTicker.Stop()
	bombTicker := time.NewTicker(s.bombEvery)
	defer bombTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-coinTicker.C:
			q.Enqueue(KindCoin)
		case <-bombTicker.C:
			q.Enqueue(KindBomb)
		}
	}
}
