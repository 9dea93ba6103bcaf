package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")

	ErrExamNotFound       = errors.New("exam session not found")
	ErrExamCompleted      = errors.New("exam session already completed")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrQuestionNotOnPaper = errors.New("question not part of this exam")
	ErrEmptyPool          = errors.New("no questions available in the bank")
	ErrSignNotFound       = errors.New("traffic sign not found")
)
