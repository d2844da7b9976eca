package models

import (
	"time"
)

type GroupStatus int

const (
	GroupStatusDraft GroupStatus = iota
	GroupStatusPublished
	GroupStatusDeleted
)

var groupStatusLabels = []string{"草稿", "发布", "删除"}

func (s GroupStatus) Valid() bool { return s >= GroupStatusDraft && s <= GroupStatusDeleted }

func (s GroupStatus) Label() string {
	if !s.Valid() {
		return ""
	}
	return groupStatusLabels[s]
}

type RecipeStatus int

const (
	RecipeStatusDraft RecipeStatus = iota
	RecipeStatusPublished
	RecipeStatusDeleted
	RecipeStatusReviewing
	RecipeStatusRejected
)

var recipeStatusLabels = []string{"草稿", "发布", "删除", "审核中", "审核不通过"}

func (s RecipeStatus) Valid() bool { return s >= RecipeStatusDraft && s <= RecipeStatusRejected }

func (s RecipeStatus) Label() string {
	if !s.Valid() {
		return ""
	}
	return recipeStatusLabels[s]
}

type RecipeGroup struct {
	ID       uint         `json:"id" gorm:"primarykey"`
	Name     string       `json:"name" gorm:"size:128;not null"`
	Desc     *string      `json:"desc" gorm:"size:512"`
	UID      uint         `json:"uid" gorm:"index;not null"`
	User     *User        `json:"-" gorm:"foreignKey:UID;constraint:OnDelete:CASCADE"`
	Status   GroupStatus  `json:"status" gorm:"not null;default:0"`
	Private  bool         `json:"private" gorm:"not null;default:false"`
	ParentID *uint        `json:"parent_id" gorm:"index"`
	Parent   *RecipeGroup `json:"-" gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL"`
	Created  time.Time    `json:"created" gorm:"autoCreateTime"`
	Updated  time.Time    `json:"updated" gorm:"autoUpdateTime"`
}

func (RecipeGroup) TableName() string { return "recipe_groups" }

func (g *RecipeGroup) ToResponse() RecipeGroupResponse {
	return RecipeGroupResponse{
		ID:          g.ID,
		Name:        g.Name,
		Desc:        g.Desc,
		UID:         g.UID,
		Status:      int(g.Status),
		StatusLabel: g.Status.Label(),
		Private:     g.Private,
		ParentID:    g.ParentID,
		Created:     g.Created,
		Updated:     g.Updated,
	}
}

type Recipe struct {
	ID          uint               `json:"id" gorm:"primarykey"`
	Name        string             `json:"name" gorm:"size:128;not null"`
	Desc        *string            `json:"desc" gorm:"size:512"`
	Content     string             `json:"content" gorm:"type:text"`
	UID         uint               `json:"uid" gorm:"index;not null"`
	User        *User              `json:"-" gorm:"foreignKey:UID;constraint:OnDelete:CASCADE"`
	Status      RecipeStatus       `json:"status" gorm:"not null;default:0"`
	GroupID     *uint              `json:"group_id" gorm:"index"`
	Group       *RecipeGroup       `json:"-" gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`
	Cover       *string            `json:"cover" gorm:"size:255"`
	Private     bool               `json:"private" gorm:"not null;default:false"`
	Ingredients []RecipeIngredient `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Steps       []RecipeStep       `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Comments    []RecipeComment    `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Created     time.Time          `json:"created" gorm:"autoCreateTime"`
	Updated     time.Time          `json:"updated" gorm:"autoUpdateTime"`
}

func (r *Recipe) ToResponse() RecipeResponse {
	resp := RecipeResponse{
		ID:          r.ID,
		Name:        r.Name,
		Desc:        r.Desc,
		Created:     r.Created.Format(TimeLayout),
		Updated:     r.Updated.Format(TimeLayout),
		Status:      int(r.Status),
		StatusLabel: r.Status.Label(),
		GroupID:     r.GroupID,
		Cover:       r.Cover,
		Private:     r.Private,
	}
	if r.User != nil {
		resp.Username = r.User.Name
	}
	if r.Group != nil {
		resp.Group = &r.Group.Name
	}
	return resp
}

type RecipeIngredient struct {
	ID       uint    `json:"id" gorm:"primarykey"`
	RecipeID uint    `json:"recipe_id" gorm:"index;not null"`
	Name     string  `json:"name" gorm:"size:128;not null"`
	Quantity *string `json:"quantity" gorm:"size:64"`
	Unit     *string `json:"unit" gorm:"size:32"`
	Desc     *string `json:"desc" gorm:"size:255"`
}

func (RecipeIngredient) TableName() string { return "recipe_ingredient" }

type RecipeStep struct {
	ID       uint    `json:"id" gorm:"primarykey"`
	RecipeID uint    `json:"recipe_id" gorm:"index;not null"`
	Desc     string  `json:"desc" gorm:"type:text;not null"`
	Order    int     `json:"order" gorm:"column:order;not null"`
	Img      *string `json:"img" gorm:"size:255"`
}

func (RecipeStep) TableName() string { return "recipe_steps" }

type RecipeComment struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	RecipeID   uint      `json:"recipe_id" gorm:"index;not null"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	UID        uint      `json:"uid" gorm:"index;not null"`
	User       *User     `json:"-" gorm:"foreignKey:UID;constraint:OnDelete:CASCADE"`
	Status     int       `json:"status" gorm:"not null;default:0"`
	Private    bool      `json:"private" gorm:"not null;default:false"`
	ReplyTo    *uint     `json:"reply_to" gorm:"index"`
	ReplyToUID *uint     `json:"reply_to_uid"`
	Created    time.Time `json:"created" gorm:"autoCreateTime"`
	Updated    time.Time `json:"updated" gorm:"autoUpdateTime"`
}

func (RecipeComment) TableName() string { return "recipe_comments" }
