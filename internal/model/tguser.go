package model

import (
	"time"
)

// TgUser binds a Telegram identity to an application account. UserID stays
// nil until the verification code is redeemed through the API.
type TgUser struct {
	ID               string    `db:"id" json:"-"`
	TgID             int64     `db:"tg_id" json:"tg_id"`
	TgChatID         *int64    `db:"tg_chat_id" json:"tg_chat_id"`
	Username         *string   `db:"username" json:"username"`
	UserID           *string   `db:"user_id" json:"user_id"`
	VerificationCode string    `db:"verification_code" json:"-"`
	CreatedAt        time.Time `db:"created_at" json:"-"`
	UpdatedAt        time.Time `db:"updated_at" json:"-"`
}

func (t *TgUser) Linked() bool {
	return t.UserID != nil && *t.UserID != ""
}
