package domain

import "errors"

var (
	MessageSuccessGetTags      = "success get tags"
	MessageSuccessGetTagDetail = "success get tag detail"

	MessageFailedGetTags      = "failed to get tags"
	MessageFailedGetTagDetail = "failed to get tag detail"

	ErrTagNotFound  = errors.New("tag not found")
	ErrDuplicateTag = errors.New("duplicate tags in request")
	ErrNoTags       = errors.New("recipe must have at least one tag")
)

type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
