package domain

import "time"

// InviteStatus is the lifecycle state of a registration token.
type InviteStatus string

const (
	InviteSent InviteStatus = "sent"
	InviteUsed InviteStatus = "used"
)

// InviteTTL is how long a registration link stays valid. The registrations
// collection carries a matching TTL index, so expiry is enforced by the store.
const InviteTTL = 3 * time.Hour

// Registration is a single-use invite token issued by HR. At most one `sent`
// token may exist per email at a time; the token flips to `used` exactly once,
// during the signup that consumes it.
type Registration struct {
	ID        string       `json:"id" bson:"_id,omitempty"`
	Email     string       `json:"email" bson:"email"`
	Name      string       `json:"name" bson:"name"`
	Token     string       `json:"token" bson:"token"`
	Status    InviteStatus `json:"status" bson:"status"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
}
