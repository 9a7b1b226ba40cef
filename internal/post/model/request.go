package model

type CreatePostRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=255"`
	Description string   `json:"description" validate:"required"`
	Photo       *string  `json:"photo" validate:"omitempty,max=255"`
	Categories  []string `json:"categories" validate:"omitempty,dive,min=1,max=50"`
}

type UpdatePostRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string  `json:"description" validate:"omitempty"`
	Photo       *string  `json:"photo" validate:"omitempty,max=255"`
	Categories  []string `json:"categories" validate:"omitempty,dive,min=1,max=50"`
}

type ListPostsQuery struct {
	UserID string `form:"user"`
	Search string `form:"search"`
}
