package search

import (
	"context"
	"time"
)

// Debounce forwards the last value received from in once in has been quiet
// for period. Values superseded within the period are dropped.
//
// The returned channel closes when ctx is done, or when in closes and any
// pending value has been delivered.
func Debounce(ctx context.Context, period time.Duration, in <-chan string) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)

		var (
			timer   *time.Timer
			fire    <-chan time.Time
			pending string
		)
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-in:
				if !ok {
					if fire == nil {
						return
					}
					in = nil
					continue
				}
				pending = v
				if timer != nil {
					timer.Stop()
				}
				timer = time.NewTimer(period)
				fire = timer.C
			case <-fire:
				fire = nil
				select {
				case out <- pending:
				case <-ctx.Done():
					return
				}
				if in == nil {
					return
				}
			}
		}
	}()
	return out
}
