package notify

import (
	"math"
	"reflect"
	"testing"

	"github.com/danmuck/bindkit/internal/testutil/testlog"
)

type counter struct {
	n     *Notifier
	value int
	score float64
	tags  []string
}

func newCounter() *counter {
	c := &counter{}
	c.n = New(c)
	return c
}

func (c *counter) Notifier() *Notifier { return c.n }

func record(n *Notifier) *[]string {
	var seen []string
	n.Subscribe(func(ev ChangeEvent) {
		seen = append(seen, ev.Property)
	})
	return &seen
}

func TestSubscribeReceivesEventsWithSource(t *testing.T) {
	testlog.Start(t)
	c := newCounter()
	var got ChangeEvent
	c.n.Subscribe(func(ev ChangeEvent) { got = ev })

	c.n.Notify("Value")
	if got.Source != c || got.Property != "Value" {
		t.Fatalf("unexpected event: %+v", got)
	}
}

func TestSetSuppressesEqualWrites(t *testing.T) {
	testlog.Start(t)
	c := newCounter()
	seen := record(c.n)

	if !Set(c.n, "Value", &c.value, 5) {
		t.Fatalf("expected first write to happen")
	}
	if Set(c.n, "Value", &c.value, 5) {
		t.Fatalf("expected equal write to be suppressed")
	}
	if !reflect.DeepEqual(*seen, []string{"Value"}) {
		t.Fatalf("unexpected notifications: %v", *seen)
	}
}

func TestSetTreatsNaNAsEqual(t *testing.T) {
	testlog.Start(t)
	c := newCounter()
	seen := record(c.n)

	Set(c.n, "Score", &c.score, math.NaN())
	Set(c.n, "Score", &c.score, math.NaN())
	if len(*seen) != 1 {
		t.Fatalf("expected one notification, got %v", *seen)
	}
}

func TestSetViaAndSetFunc(t *testing.T) {
	testlog.Start(t)
	c := newCounter()
	seen := record(c.n)
	get := func() int { return c.value }
	set := func(v int) { c.value = v }

	SetVia(c.n, "Value", get, set, 1)
	SetVia(c.n, "Value", get, set, 1)

	getTags := func() []string { return c.tags }
	setTags := func(v []string) { c.tags = v }
	SetFunc(c.n, "Tags", getTags, setTags, []string{"a"}, nil)
	SetFunc(c.n, "Tags", getTags, setTags, []string{"a"}, nil)

	want := []string{"Value", "Tags"}
	if !reflect.DeepEqual(*seen, want) {
		t.Fatalf("got=%v want=%v", *seen, want)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	testlog.Start(t)
	c := newCounter()
	calls := 0
	sub := c.n.Subscribe(func(ChangeEvent) { calls++ })

	c.n.Notify("Value")
	if !c.n.Unsubscribe(sub) {
		t.Fatalf("expected unsubscribe to report true")
	}
	if c.n.Unsubscribe(sub) {
		t.Fatalf("expected double unsubscribe to report false")
	}
	c.n.Notify("Value")
	if calls != 1 || c.n.Len() != 0 {
		t.Fatalf("calls=%d len=%d", calls, c.n.Len())
	}
}

func TestUnsubscribeDuringDispatch(t *testing.T) {
	testlog.Start(t)
	c := newCounter()
	var second Subscription
	secondCalls := 0
	c.n.Subscribe(func(ChangeEvent) { c.n.Unsubscribe(second) })
	second = c.n.Subscribe(func(ChangeEvent) { secondCalls++ })

	c.n.Notify("Value")
	if secondCalls != 0 {
		t.Fatalf("listener removed mid-dispatch was still invoked")
	}
}

func TestReentrantNotify(t *testing.T) {
	testlog.Start(t)
	c := newCounter()
	seen := record(c.n)
	c.n.Subscribe(func(ev ChangeEvent) {
		if ev.Property == "Value" && c.value < 3 {
			Set(c.n, "Value", &c.value, c.value+1)
		}
	})

	Set(c.n, "Value", &c.value, 1)
	if c.value != 3 {
		t.Fatalf("unexpected value %d", c.value)
	}
	if !reflect.DeepEqual(*seen, []string{"Value", "Value", "Value"}) {
		t.Fatalf("expected nested notifications, got %v", *seen)
	}
}

func TestDeriveRaisesComputed(t *testing.T) {
	testlog.Start(t)
	c := newCounter()
	c.n.Derive("Computed", "Value", "Text", "Computed")
	seen := record(c.n)

	c.n.Notify("Value")
	c.n.Notify("Text")
	c.n.Notify("Computed")

	want := []string{"Value", "Computed", "Text", "Computed", "Computed"}
	if !reflect.DeepEqual(*seen, want) {
		t.Fatalf("got=%v want=%v", *seen, want)
	}
}

func TestDeriveCycleRaisesEachOnce(t *testing.T) {
	testlog.Start(t)
	c := newCounter()
	c.n.Derive("A", "B")
	c.n.Derive("B", "A")
	seen := record(c.n)

	c.n.Notify("B")
	if !reflect.DeepEqual(*seen, []string{"B", "A"}) {
		t.Fatalf("unexpected cycle dispatch: %v", *seen)
	}
}

func TestEqual(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		a, b any
		want bool
	}{
		{1, 1, true},
		{1, 2, false},
		{1, int64(1), false},
		{"x", "x", true},
		{nil, nil, true},
		{nil, 0, false},
		{math.NaN(), math.NaN(), true},
		{[]int{1, 2}, []int{1, 2}, true},
		{[]int{1}, []int{2}, false},
	}
	for _, tc := range cases {
		if got := Equal(tc.a, tc.b); got != tc.want {
			t.Fatalf("Equal(%v, %v)=%v want %v", tc.a, tc.b, got, tc.want)
		}
	}
}
