package util

import "errors"

var (
	ErrUserNotFound     = errors.New("用户不存在")
	ErrEmailRegistered  = errors.New("该邮箱已被注册")
	ErrPermissionDenied = errors.New("permission denied")
	ErrQuestionNotFound = errors.New("question not found")
	ErrExamNotFound     = errors.New("exam not found")
	ErrResultNotFound   = errors.New("result not found")
	ErrExamNotActive    = errors.New("exam is not currently active")
	ErrAlreadySubmitted = errors.New("exam already submitted")
	ErrInvalidAnswers   = errors.New("invalid answer set")
)
