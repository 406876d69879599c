// Package domain defines the persistence models for users and their received
// messages. These types are mapped with GORM and form the core data layer of
// the inbox application.
package domain

import (
	"time"
)

// User represents a registered account. A user owns an inbox of anonymous
// messages and controls whether new messages are currently accepted.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Username: public handle senders address messages to.
//   - Email: login identifier; matching is exact (case-sensitive) and
//     uniqueness is enforced by the database. It is the only invariant
//     checked before insert.
//   - PasswordHash: bcrypt hash of the password; the plaintext is never
//     stored and the hash is never serialized to JSON.
//   - AcceptingMessages: whether inbound delivery is currently allowed.
//     Defaults to true at registration.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type User struct {
	ID                string    `json:"id"                 gorm:"type:char(36);primaryKey"`
	Username          string    `json:"username"           gorm:"type:varchar(32);not null;index"`
	Email             string    `json:"email"              gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email"`
	PasswordHash      string    `json:"-"                  gorm:"type:varchar(128);not null"`
	AcceptingMessages bool      `json:"accepting_messages" gorm:"not null;default:true"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Message is a single anonymous message inside a user's inbox. A message is
// owned by exactly one user; there is no sharing and no independent lifecycle.
// It is created by inbound delivery and destroyed only by an ownership-scoped
// delete whose predicate includes the owner id.
//
// Fields:
//   - ID: UUID primary key (char(36)); unique per owner, which the UUID
//     generator satisfies trivially.
//   - UserID: foreign key to the owning user (indexed).
//   - Content: opaque message payload.
//   - CreatedAt: insertion timestamp; inbox listings order by it descending.
//   - User: FK association, ensures cascade delete/update.
type Message struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id"    gorm:"type:char(36);not null;index:idx_user_msgs,priority:1"`
	Content   string    `json:"content"    gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_user_msgs,priority:2"`

	// User is the owning account. Messages are cascade-deleted if the
	// account is removed.
	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Message.
func (Message) TableName() string { return "messages" }
