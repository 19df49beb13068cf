package core

// JobKind enumerates the categories of deferred work the gateway produces.
type JobKind int

const (
	JobProcessUpdate JobKind = iota
	JobRegisterGroup
	JobProcessJoinRequest
)

func (k JobKind) String() string {
	switch k {
	case JobRegisterGroup:
		return "register-managed-group"
	case JobProcessJoinRequest:
		return "process-join-request"
	default:
		return "process-update"
	}
}

// Track selects which bot identity acts on a job. Group-management updates
// (membership changes, join requests) belong to the secondary bot; ordinary
// messages and callbacks to the primary one.
type Track int

const (
	TrackPrimary Track = iota
	TrackSecondary
)

// Decision is the routing outcome for one update. It is derived per request,
// handed to the responder and the job store, and never persisted.
type Decision struct {
	Kind       JobKind
	Track      Track
	ChatID     int64  // 0 when the update carries no chat context
	CallbackID string // set only for callback queries
}

// Classify maps an update to a routing decision. The cases are ordered and
// the first match wins; a body matching several markers is classified by the
// earliest one. Unrecognized shapes are forwarded as generic updates rather
// than rejected, so classification never fails.
func Classify(u *Update) Decision {
	switch {
	case u.MyChatMember != nil:
		d := Decision{Kind: JobProcessUpdate, Track: TrackSecondary, ChatID: u.MyChatMember.Chat.ID}
		if s := u.MyChatMember.NewChatMember.Status; s == "administrator" || s == "creator" {
			d.Kind = JobRegisterGroup
		}
		return d

	case u.ChatJoinRequest != nil:
		return Decision{Kind: JobProcessJoinRequest, Track: TrackSecondary, ChatID: u.ChatJoinRequest.Chat.ID}

	case u.CallbackQuery != nil:
		d := Decision{Kind: JobProcessUpdate, Track: TrackPrimary, CallbackID: u.CallbackQuery.ID}
		if u.CallbackQuery.Message != nil {
			d.ChatID = u.CallbackQuery.Message.Chat.ID
		}
		return d

	case u.Message != nil:
		return Decision{Kind: JobProcessUpdate, Track: TrackPrimary, ChatID: u.Message.Chat.ID}

	default:
		return Decision{Kind: JobProcessUpdate, Track: TrackPrimary}
	}
}

// JobType returns the job-type string downstream workers dispatch on. The
// names are fixed: workers already poll for them.
func (d Decision) JobType() string {
	switch d.Kind {
	case JobRegisterGroup:
		return "tgms_register_group"
	case JobProcessJoinRequest:
		return "tgms_process_join_request"
	default:
		if d.Track == TrackSecondary {
			return "tgms_process_update"
		}
		return "process_telegram_update"
	}
}
