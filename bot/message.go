package bot

// Kind classifies an inbound message.
type Kind int

const (
	KindOther Kind = iota
	KindText
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindImage:
		return "image"
	default:
		return "other"
	}
}

// Message is one inbound chat message.
type Message struct {
	ID      string
	Sender  string
	Kind    Kind
	Type    string // raw type as reported by the platform
	Body    string
	MediaID string
}

// KindOf maps a platform message type to a Kind.
func KindOf(messageType string) Kind {
	switch messageType {
	case "text":
		return KindText
	case "image":
		return KindImage
	default:
		return KindOther
	}
}
