package services

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")

	ErrGroupNotFound = errors.New("group not found")
	ErrGroupExists   = errors.New("group already exists")
	ErrInvalidGroup  = errors.New("slug and title are required")

	ErrPostNotFound = errors.New("post not found")
	ErrForbidden    = errors.New("only the author can change this post")
	ErrEmptyText    = errors.New("text must not be empty")
	ErrInvalidImage = errors.New("uploaded file is not an image")

	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following")
	ErrNotFollowing     = errors.New("not following")
)
