package model

const (
	EventOpInsert = "insert"
	EventOpUpdate = "update"
	EventOpDelete = "delete"
)

// Event is one decoded push-channel message for a recipient's notification
// stream.
type Event struct {
	Op           string       `json:"op"`
	Notification Notification `json:"notification"`
}
