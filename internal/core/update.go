// Package core defines the data structures and decision logic at the center
// of the gateway: the parsed view of an incoming Telegram update, the routing
// decision derived from it, and the contracts the HTTP layer depends on.
package core

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Chat identifies a Telegram conversation.
type Chat struct {
	ID int64 `json:"id"`
}

// Message carries only the chat reference; everything else in a message is
// opaque to the gateway and travels untouched inside the job payload.
type Message struct {
	Chat Chat `json:"chat"`
}

// CallbackQuery is an interactive button press awaiting acknowledgment.
type CallbackQuery struct {
	ID      string   `json:"id"`
	Message *Message `json:"message"`
}

// ChatMember holds the membership status of the bot after a change.
type ChatMember struct {
	Status string `json:"status"`
}

// ChatMemberUpdated signals that the bot's membership in a chat changed.
type ChatMemberUpdated struct {
	Chat          Chat       `json:"chat"`
	NewChatMember ChatMember `json:"new_chat_member"`
}

// ChatJoinRequest signals that a user asked to join a managed chat.
type ChatJoinRequest struct {
	Chat Chat `json:"chat"`
}

// Update is the gateway's view of a single Telegram update. Only the fields
// classification needs are bound; Raw retains the body verbatim because it is
// persisted unmodified as the job payload.
type Update struct {
	UpdateID        *int64             `json:"update_id"`
	Message         *Message           `json:"message"`
	CallbackQuery   *CallbackQuery     `json:"callback_query"`
	MyChatMember    *ChatMemberUpdated `json:"my_chat_member"`
	ChatJoinRequest *ChatJoinRequest   `json:"chat_join_request"`

	Raw json.RawMessage `json:"-"`
}

// ParseUpdate validates and decodes a raw webhook body. It fails with
// ErrInvalidPayload when the body is not a JSON object or lacks update_id;
// everything past that validation is left to Classify, which never fails.
func ParseUpdate(body []byte) (*Update, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: body is not a JSON object", ErrInvalidPayload)
	}

	var u Update
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if u.UpdateID == nil {
		return nil, fmt.Errorf("%w: missing update_id", ErrInvalidPayload)
	}

	u.Raw = append(json.RawMessage(nil), body...)
	return &u, nil
}
