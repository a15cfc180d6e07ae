package messaging

// Message is a rendered customer-facing message
type Message struct {
	text string
}

// NewMessage wraps rendered text
func NewMessage(text string) Message {
	return Message{text: text}
}

// String returns the message text
func (m Message) String() string {
	return m.text
}
