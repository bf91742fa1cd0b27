package domain

import "errors"

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "token is invalid"

	ErrParseID       = errors.New("failed to parse numeric identifier")
	ErrTokenNotFound = errors.New("token not found")
	ErrTokenInvalid  = errors.New("token is invalid")
	ErrTokenExpired  = errors.New("token has expired")
)
