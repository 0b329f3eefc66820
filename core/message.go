package core

// Message is the payload attached to an Entry. The set of variants is
// closed: TextMessage and *MapMessage.
type Message interface {
	// Format returns the message rendered as text.
	Format() string
	// KeyValues returns the key/value view of the message, or false
	// when the variant carries no map-shaped data.
	KeyValues() (*MapMessage, bool)

	message()
}

// TextMessage is a plain string payload.
type TextMessage string

// Format returns the text unchanged.
func (m TextMessage) Format() string { return string(m) }

// KeyValues always reports false for plain text.
func (TextMessage) KeyValues() (*MapMessage, bool) { return nil, false }

func (TextMessage) message() {}
