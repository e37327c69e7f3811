// Package event defines the transport-agnostic inbound events the router
// consumes and the outbound render requests handlers produce.
package event

import "context"

// Event is one discrete inbound interaction from a user. The set of shapes
// is closed: commands, button presses, and free-text replies.
type Event interface {
	// UserID identifies the sending user.
	UserID() int64
	// Kind names the event shape for logs and spans.
	Kind() string

	isEvent()
}

// Command is an explicit slash-command, e.g. /cart.
type Command struct {
	Name    string
	RawArgs string
	User    int64
}

// UserID implements Event.
func (c Command) UserID() int64 { return c.User }

// Kind implements Event.
func (c Command) Kind() string { return "command" }

func (Command) isEvent() {}

// ButtonPress carries the opaque action token attached to a button.
type ButtonPress struct {
	ActionID   string
	MessageRef string
	User       int64
}

// UserID implements Event.
func (b ButtonPress) UserID() int64 { return b.User }

// Kind implements Event.
func (b ButtonPress) Kind() string { return "button" }

func (ButtonPress) isEvent() {}

// TextReply is a free-text message, meaningful only inside a workflow step.
type TextReply struct {
	Text string
	User int64
}

// UserID implements Event.
func (t TextReply) UserID() int64 { return t.User }

// Kind implements Event.
func (t TextReply) Kind() string { return "text" }

func (TextReply) isEvent() {}

// Button is one (label, action token) pair on an outbound message.
type Button struct {
	Label    string `json:"label"`
	ActionID string `json:"action_id"`
}

// RenderMessage asks the messaging collaborator to deliver a new message.
type RenderMessage struct {
	UserID  int64    `json:"user_id"`
	Text    string   `json:"text"`
	Buttons []Button `json:"buttons,omitempty"`
}

// ReplaceMessage asks the collaborator to edit a prior prompt in place.
type ReplaceMessage struct {
	UserID     int64    `json:"user_id"`
	MessageRef string   `json:"message_ref"`
	Text       string   `json:"text"`
	Buttons    []Button `json:"buttons,omitempty"`
}

// Renderer is the outbound boundary to the messaging transport.
type Renderer interface {
	Render(ctx context.Context, msg RenderMessage) error
	Replace(ctx context.Context, msg ReplaceMessage) error
}
