package models

import "time"

// TimeLayout is the timestamp format of recipe responses.
const TimeLayout = "2006-01-02 15:04:05"

const DefaultPostTitle = "还没有标题"

type UserResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Role        Role    `json:"role"`
	HasPassword bool    `json:"has_password"`
}

type LoginRequest struct {
	Name      string  `json:"name" validate:"required,max=64"`
	Passwd    string  `json:"passwd" validate:"required"`
	Desc      *string `json:"desc" validate:"omitempty,max=128"`
	Encrypted bool    `json:"encrypted"`
}

// TokenForm is the OAuth2 password form posted by the API docs page.
type TokenForm struct {
	Username string `form:"username" validate:"required,max=64"`
	Password string `form:"password" validate:"required"`
}

type LoginResponse struct {
	UserResponse
	Token string `json:"token"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type CreateUserRequest struct {
	Name      string  `json:"name" validate:"required,max=64"`
	Passwd    string  `json:"passwd" validate:"required"`
	Email     *string `json:"email" validate:"omitempty,email,max=128"`
	Phone     *string `json:"phone" validate:"omitempty,max=32"`
	Encrypted bool    `json:"encrypted"`
}

type ChangeInfoRequest struct {
	Uname     *string `json:"uname" validate:"omitempty,min=1,max=64"`
	Email     *string `json:"email" validate:"omitempty,email,max=128"`
	Phone     *string `json:"phone" validate:"omitempty,max=32"`
	Passwd    *string `json:"passwd" validate:"omitempty,min=1"`
	Encrypted bool    `json:"encrypted"`
}

type AdminChangeInfoRequest struct {
	ChangeInfoRequest
	RoleID *int `json:"role_id" validate:"omitempty,min=0"`
}

type SessionResponse struct {
	ID        uint      `json:"id"`
	Created   time.Time `json:"created"`
	Expires   time.Time `json:"expires"`
	IP        *string   `json:"ip"`
	UserAgent *string   `json:"user_agent"`
	Desc      *string   `json:"desc"`
	Current   bool      `json:"current"`
}

type ListParams struct {
	Page  int `form:"page,default=1" validate:"min=1"`
	Limit int `form:"limit,default=10" validate:"min=1,max=100"`
}

func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

type CreateGroupRequest struct {
	Name     string  `json:"name" validate:"required,max=128"`
	Desc     *string `json:"desc" validate:"omitempty,max=512"`
	Status   *int    `json:"status" validate:"omitempty,min=0,max=2"`
	Private  bool    `json:"private"`
	ParentID *uint   `json:"parent_id"`
}

// UpdateGroupRequest is a partial update; ParentID 0 moves the group to root.
type UpdateGroupRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=128"`
	Desc     *string `json:"desc" validate:"omitempty,max=512"`
	Status   *int    `json:"status" validate:"omitempty,min=0,max=2"`
	Private  *bool   `json:"private"`
	ParentID *uint   `json:"parent_id"`
}

type RecipeGroupResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Desc        *string   `json:"desc"`
	UID         uint      `json:"uid"`
	Status      int       `json:"status"`
	StatusLabel string    `json:"status_label"`
	Private     bool      `json:"private"`
	ParentID    *uint     `json:"parent_id"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

type CreateIngredientRequest struct {
	Name     string  `json:"name" validate:"required,max=128"`
	Quantity *string `json:"quantity" validate:"omitempty,max=64"`
	Unit     *string `json:"unit" validate:"omitempty,max=32"`
	Desc     *string `json:"desc" validate:"omitempty,max=255"`
}

type UpdateIngredientRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=128"`
	Quantity *string `json:"quantity" validate:"omitempty,max=64"`
	Unit     *string `json:"unit" validate:"omitempty,max=32"`
	Desc     *string `json:"desc" validate:"omitempty,max=255"`
}

type CreateStepRequest struct {
	Desc  string  `json:"desc" validate:"required"`
	Order int     `json:"order" validate:"min=0"`
	Img   *string `json:"img" validate:"omitempty,max=255"`
}

type UpdateStepRequest struct {
	Desc  *string `json:"desc" validate:"omitempty,min=1"`
	Order *int    `json:"order" validate:"omitempty,min=0"`
	Img   *string `json:"img" validate:"omitempty,max=255"`
}

type CreateRecipeRequest struct {
	Name        string                    `json:"name" validate:"required,max=128"`
	Desc        *string                   `json:"desc" validate:"omitempty,max=512"`
	Status      *int                      `json:"status" validate:"omitempty,min=0,max=4"`
	GroupID     *uint                     `json:"group_id"`
	Content     *string                   `json:"content"`
	Private     bool                      `json:"private"`
	Ingredients []CreateIngredientRequest `json:"materials" validate:"omitempty,dive"`
	Steps       []CreateStepRequest       `json:"steps" validate:"omitempty,dive"`
}

// UpdateRecipeRequest is a partial update; GroupID 0 detaches the recipe.
type UpdateRecipeRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=128"`
	Desc    *string `json:"desc" validate:"omitempty,max=512"`
	Status  *int    `json:"status" validate:"omitempty,min=0,max=4"`
	GroupID *uint   `json:"group_id"`
	Content *string `json:"content"`
	Private *bool   `json:"private"`
}

type RecipeResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Desc        *string `json:"desc"`
	Created     string  `json:"created"`
	Updated     string  `json:"updated"`
	Username    string  `json:"username"`
	Status      int     `json:"status"`
	StatusLabel string  `json:"status_label"`
	Group       *string `json:"group"`
	GroupID     *uint   `json:"group_id"`
	Cover       *string `json:"cover"`
	Private     bool    `json:"private"`
}

type RecipeDetailResponse struct {
	RecipeResponse
	Content     string             `json:"content"`
	Ingredients []RecipeIngredient `json:"ingredients"`
	Steps       []RecipeStep       `json:"steps"`
	Comments    []CommentResponse  `json:"comments"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
	Private bool   `json:"private"`
	ReplyTo *uint  `json:"reply_to"`
}

type CommentResponse struct {
	ID         uint      `json:"id"`
	RecipeID   uint      `json:"recipe_id"`
	Content    string    `json:"content"`
	UID        uint      `json:"uid"`
	Username   string    `json:"username"`
	Private    bool      `json:"private"`
	ReplyTo    *uint     `json:"reply_to"`
	ReplyToUID *uint     `json:"reply_to_uid"`
	Created    time.Time `json:"created"`
}

func (c *RecipeComment) ToResponse() CommentResponse {
	resp := CommentResponse{
		ID:         c.ID,
		RecipeID:   c.RecipeID,
		Content:    c.Content,
		UID:        c.UID,
		Private:    c.Private,
		ReplyTo:    c.ReplyTo,
		ReplyToUID: c.ReplyToUID,
		Created:    c.Created,
	}
	if c.User != nil {
		resp.Username = c.User.Name
	}
	return resp
}

type PostRequest struct {
	Title   string `json:"title" validate:"max=255"`
	Content string `json:"content"`
	Status  int    `json:"status" validate:"min=0,max=2"`
	Private bool   `json:"private"`
}

type PostListParams struct {
	ListParams
	Search  string `form:"search" validate:"max=128"`
	Sort    string `form:"sort,default=created" validate:"oneof=created updated title id"`
	Console bool   `form:"console"`
}

type PostResponse struct {
	ID      uint      `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
	Status  int       `json:"status"`
	Private bool      `json:"private"`
	User    string    `json:"user"`
}

type CoverResponse struct {
	Key string `json:"key"`
}
