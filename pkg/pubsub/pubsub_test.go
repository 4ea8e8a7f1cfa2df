package pubsub

import "testing"

func TestPublishReachesAllSubscribers(t *testing.T) {
	ps := NewPubSub[string]()
	a := ps.Subscribe("topic")
	b := ps.Subscribe("topic")
	other := ps.Subscribe("other")

	got := make(chan string, 2)
	go func() { got <- <-a }()
	go func() { got <- <-b }()

	ps.Publish("topic", "payload")

	for i := 0; i < 2; i++ {
		if v := <-got; v != "payload" {
			t.Errorf("subscriber received %q", v)
		}
	}

	select {
	case v := <-other:
		t.Errorf("unrelated topic received %q", v)
	default:
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	ps := NewPubSub[int]()
	// must not block or panic
	ps.Publish("empty", 1)
}
