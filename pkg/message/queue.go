package message

import "time"

// QueuedMessage is an event held back while processing is inactive.
type QueuedMessage struct {
	// ID identifies the message in logs and traces.
	ID string

	// Type is the event type the message was triggered with.
	Type string

	// Params is passed to listeners unchanged when the message is drained.
	Params any

	// QueuedAt is when Trigger queued the message, read from the bus clock.
	QueuedAt time.Time
}

// backlog is the ordered sequence of queued messages, oldest first.
type backlog struct {
	items []QueuedMessage
}

func (q *backlog) push(msg QueuedMessage) {
	q.items = append(q.items, msg)
}

// take removes the next message to drain according to order.
func (q *backlog) take(order DrainOrder) (QueuedMessage, bool) {
	n := len(q.items)
	if n == 0 {
		return QueuedMessage{}, false
	}

	var msg QueuedMessage
	if order == FIFO {
		msg = q.items[0]
		q.items[0] = QueuedMessage{}
		q.items = q.items[1:]
	} else {
		msg = q.items[n-1]
		q.items[n-1] = QueuedMessage{}
		q.items = q.items[:n-1]
	}
	return msg, true
}

func (q *backlog) len() int {
	return len(q.items)
}

// clear drops every message and returns how many were dropped.
func (q *backlog) clear() int {
	n := len(q.items)
	q.items = nil
	return n
}

func (q *backlog) snapshot() []QueuedMessage {
	out := make([]QueuedMessage, len(q.items))
	copy(out, q.items)
	return out
}
