package types

import "fmt"

// Message is one signal received from the bus. Handlers must not modify it.
type Message struct {
	Interface string
	Member    string
	Path      string
	Sender    string
	// Args holds the signal body in wire order, using the bus library's
	// native Go types (string, uint32, int32, ...).
	Args []any
}

func (m *Message) String() string {
	return fmt.Sprintf("%s.%s", m.Interface, m.Member)
}

// Is reports whether the message is the given signal.
func (m *Message) Is(iface, member string) bool {
	return m.Interface == iface && m.Member == member
}

// Result is the outcome of running a Filter over a Message.
type Result int

const (
	// NotHandled lets later filters in the chain inspect the message.
	NotHandled Result = iota
	// Handled stops dispatch for the message.
	Handled
)

func (r Result) String() string {
	switch r {
	case Handled:
		return "handled"
	default:
		return "not-handled"
	}
}
