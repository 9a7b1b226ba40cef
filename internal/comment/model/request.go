package model

type CreateCommentRequest struct {
	PostID  string `json:"post_id" validate:"required,uuid"`
	Comment string `json:"comment" validate:"required,min=1,max=2000"`
}

type UpdateCommentRequest struct {
	Comment string `json:"comment" validate:"required,min=1,max=2000"`
}
