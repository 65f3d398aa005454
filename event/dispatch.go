package event

// Receiver is a node in a tree of event handlers.
//
// Handle reacts to an event locally. TriggerChildren defines the propagation policy:
// which children, if any, receive the event next. Embed Base to get no-op defaults.
type Receiver interface {
	Handle(ev Event)
	TriggerChildren(ev Event)
}

// Trigger dispatches ev to r: r handles the event itself before any descendant does.
func Trigger(r Receiver, ev Event) {
	r.Handle(ev)
	r.TriggerChildren(ev)
}

// Base provides no-op Handle and TriggerChildren. A receiver that keeps the default
// TriggerChildren is a dispatch dead-end, which is what leaf receivers want.
type Base struct{}

func (Base) Handle(Event)          {}
func (Base) TriggerChildren(Event) {}

// HandlerFunc adapts an ordinary function to a leaf Receiver.
type HandlerFunc func(Event)

func (f HandlerFunc) Handle(ev Event) {
	if f != nil {
		f(ev)
	}
}

func (HandlerFunc) TriggerChildren(Event) {}

// TriggerAll dispatches ev to each receiver in order.
func TriggerAll(rs []Receiver, ev Event) {
	for _, r := range rs {
		if r != nil {
			Trigger(r, ev)
		}
	}
}
