package monitoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"imagique/utils"
)

func TestMonitor_NilIsSafe(t *testing.T) {
	var m *Monitor
	assert.NotPanics(t, func() {
		m.TrackBackendRequest("events.list", "200", time.Millisecond)
		m.TrackSubmission("create", "success")
		m.TrackFanout("venue", "success")
		m.TrackBooking("book", "failure")
		m.Run(context.Background())
	})
}

func TestMonitor_Counters(t *testing.T) {
	m := NewMonitor()

	before := testutil.ToFloat64(eventSubmissions.WithLabelValues("update", "failure"))
	m.TrackSubmission("update", Outcome(errors.New("boom")))
	assert.Equal(t, before+1, testutil.ToFloat64(eventSubmissions.WithLabelValues("update", "failure")))

	before = testutil.ToFloat64(fanoutRequests.WithLabelValues("sponsor", "success"))
	m.TrackFanout("sponsor", Outcome(nil))
	m.TrackFanout("sponsor", Outcome(nil))
	assert.Equal(t, before+2, testutil.ToFloat64(fanoutRequests.WithLabelValues("sponsor", "success")))

	before = testutil.ToFloat64(backendRequests.WithLabelValues("bookings.book", "500"))
	m.TrackBackendRequest("bookings.book", "500", 20*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(backendRequests.WithLabelValues("bookings.book", "500")))
}

func TestMonitor_RunSamplesBreakers(t *testing.T) {
	cb := utils.NewCircuitBreaker("monitor-test", utils.Settings{MaxRequests: 1, FailureRatio: 1, Timeout: time.Hour})
	cb.Execute(context.Background(), func() (any, error) { return nil, errors.New("down") })

	m := NewMonitor(cb)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Run(ctx)
	}()

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(breakerState.WithLabelValues("monitor-test")) == float64(utils.StateOpen)
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done
}
