package models

import (
	"time"
)

// Role levels. Authorization always compares levels, never names.
const (
	RoleGuest     = 0
	RoleDisable   = 1
	RoleSubscribe = 2
	RoleUser      = 3
	RoleAdmin     = 4
	RoleSuper     = 5
)

type Role struct {
	ID    int    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name  string `json:"name" gorm:"size:32;not null"`
	Label string `json:"label" gorm:"size:32;not null"`
}

// DefaultRoles is the fixed reference set seeded on migrate.
var DefaultRoles = []Role{
	{ID: RoleGuest, Name: "guest", Label: "游客"},
	{ID: RoleDisable, Name: "disable", Label: "禁用"},
	{ID: RoleSubscribe, Name: "subscribe", Label: "订阅者"},
	{ID: RoleUser, Name: "user", Label: "普通用户"},
	{ID: RoleAdmin, Name: "admin", Label: "管理员"},
	{ID: RoleSuper, Name: "super", Label: "超管"},
}

type User struct {
	ID             uint      `json:"id" gorm:"primarykey"`
	Name           string    `json:"name" gorm:"size:64;uniqueIndex;not null"`
	Email          *string   `json:"email" gorm:"size:128"`
	Phone          *string   `json:"phone" gorm:"size:32"`
	HashedPassword *string   `json:"-" gorm:"size:128"`
	RoleID         int       `json:"role_id" gorm:"not null;default:3"`
	Role           Role      `json:"role" gorm:"foreignKey:RoleID"`
	Tokens         []Token   `json:"-" gorm:"foreignKey:UID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HasPassword reports whether the account has a usable password digest.
func (u *User) HasPassword() bool {
	return u.HashedPassword != nil && *u.HashedPassword != ""
}

// Level is the account's role level.
func (u *User) Level() int {
	return u.RoleID
}

// ToResponse is the public shape of an account.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		Role:        u.Role,
		HasPassword: u.HasPassword(),
	}
}

type Token struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Token     string    `json:"-" gorm:"type:varchar(768);uniqueIndex;not null"`
	UID       uint      `json:"uid" gorm:"index;not null"`
	Expires   time.Time `json:"expires" gorm:"not null"`
	Created   time.Time `json:"created" gorm:"autoCreateTime"`
	IP        *string   `json:"ip" gorm:"size:64"`
	UserAgent *string   `json:"user_agent" gorm:"size:255"`
	Desc      *string   `json:"desc" gorm:"size:128"`
}

// TokenClaims are the signed fields of a session token.
type TokenClaims struct {
	UID       uint   `json:"uid"`
	IP        string `json:"ip,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
	Desc      string `json:"desc,omitempty"`
}

// Identity is an authenticated caller resolved from a bearer token.
type Identity struct {
	User   User
	Token  string
	Claims TokenClaims
}

// UserID returns the caller's id, or nil for an anonymous caller.
func (i *Identity) UserID() *uint {
	if i == nil {
		return nil
	}
	id := i.User.ID
	return &id
}
