package model

const (
	UpdateKindInsert = "insert"
	UpdateKindUpdate = "update"
	UpdateKindDelete = "delete"
	UpdateKindResync = "resync"
)

// Update is what the UI layer observes: one reconciler state change plus the
// unread counter after it. Notification is nil for resync updates.
type Update struct {
	Kind         string        `json:"kind"`
	RecipientID  string        `json:"recipient_id"`
	Notification *Notification `json:"notification,omitempty"`
	Unread       int           `json:"unread"`
}
