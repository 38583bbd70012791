package apperrors

import "errors"

var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid login or password")
	ErrTaskNotFound        = errors.New("task not found")
	ErrTaskNotWithdrawable = errors.New("task is not in a withdrawable state")
	ErrWithdrawalExists    = errors.New("withdrawal already exists for task")
	ErrWithdrawalNotFound  = errors.New("withdrawal not found")
	ErrInvalidSignature    = errors.New("notification signature verification failed")
	ErrInvalidReference    = errors.New("invalid business reference")
	ErrGatewayRejected     = errors.New("payment gateway rejected transfer")
	ErrInsufficientPoints  = errors.New("insufficient points balance")
)
