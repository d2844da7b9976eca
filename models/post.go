package models

import (
	"time"
)

type PostStatus int

const (
	PostStatusUnpublished PostStatus = iota
	PostStatusPublished
	PostStatusHidden
)

func (s PostStatus) Valid() bool { return s >= PostStatusUnpublished && s <= PostStatusHidden }

// postPreviewRunes is how much content a list entry carries.
const postPreviewRunes = 20

type Post struct {
	ID      uint       `json:"id" gorm:"primarykey"`
	Title   string     `json:"title" gorm:"size:255;not null"`
	Content string     `json:"content" gorm:"type:text;not null"`
	UID     uint       `json:"uid" gorm:"index;not null"`
	User    *User      `json:"-" gorm:"foreignKey:UID;constraint:OnDelete:CASCADE"`
	Status  PostStatus `json:"status" gorm:"not null;default:0"`
	Private bool       `json:"private" gorm:"not null;default:false"`
	Created time.Time  `json:"created" gorm:"autoCreateTime"`
	Updated time.Time  `json:"updated" gorm:"autoUpdateTime"`
}

func (Post) TableName() string { return "posts" }

// ToResponse renders the post; list views pass full=false to get a preview.
func (p *Post) ToResponse(full bool) PostResponse {
	content := p.Content
	if !full {
		if r := []rune(content); len(r) > postPreviewRunes {
			content = string(r[:postPreviewRunes])
		}
	}
	resp := PostResponse{
		ID:      p.ID,
		Title:   p.Title,
		Content: content,
		Created: p.Created,
		Updated: p.Updated,
		Status:  int(p.Status),
		Private: p.Private,
	}
	if p.User != nil {
		resp.User = p.User.Name
	}
	return resp
}
