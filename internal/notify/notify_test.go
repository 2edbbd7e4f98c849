package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/specialistvlad/stashgrid/internal/link"
	"github.com/specialistvlad/stashgrid/internal/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type event struct {
	name    string
	payload any
}

type fakeEmitter struct {
	events []event
	err    error
}

func (f *fakeEmitter) Emit(ev string, args ...any) error {
	var payload any
	if len(args) > 0 {
		payload = args[0]
	}
	f.events = append(f.events, event{name: ev, payload: payload})
	return f.err
}

func TestNotifier_EmitsResolverEvents(t *testing.T) {
	// Arrange
	fake := &fakeEmitter{}
	n := New(fake, nil)
	b := &link.Batch{
		Records: []link.RecordID{"A", "B"},
		Singles: []link.Single{{From: "A", To: "B", ID: "1"}, {From: "B", To: "A", ID: "2"}},
	}

	// Act
	p, err := resolver.New(resolver.WithObserver(n)).PlanBatch(context.Background(), b)

	// Assert
	require.NoError(t, err)
	require.Len(t, fake.events, 3)
	assert.Equal(t, EventCut, fake.events[0].name)
	assert.Equal(t, p.Rounds[0], fake.events[0].payload)
	assert.Equal(t, event{name: EventLeaves, payload: LeavesEvent{Batch: 1, Records: []link.RecordID{"A"}}}, fake.events[1])
	assert.Equal(t, event{name: EventLeaves, payload: LeavesEvent{Batch: 2, Records: []link.RecordID{"B"}}}, fake.events[2])
}

func TestNotifier_EmitErrorsDoNotFailPlan(t *testing.T) {
	fake := &fakeEmitter{err: errors.New("socket closed")}
	n := New(fake, nil)

	p, err := resolver.New(resolver.WithObserver(n)).PlanBatch(context.Background(), &link.Batch{Records: []link.RecordID{"A"}})

	require.NoError(t, err)
	assert.Equal(t, []link.RecordID{"A"}, p.Order)
	assert.Len(t, fake.events, 1)
	n.Close()
}

func TestDial_InvalidURL(t *testing.T) {
	testCases := []string{"://missing-scheme", "not a url", "/just/a/path"}

	for _, raw := range testCases {
		t.Run(raw, func(t *testing.T) {
			_, err := Dial(context.Background(), raw, "/")

			assert.ErrorContains(t, err, "failed to parse URL")
		})
	}
}

func TestDial_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Dial(ctx, "http://127.0.0.1:1", "/")

	assert.Error(t, err)
}
