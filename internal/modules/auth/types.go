package auth

import "errors"

type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterDTO struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
}

type loginResponse struct {
	Token string `json:"token"`
}

var (
	errAuthUserNotFound  = errors.New("auth user not found")
	errAuthWrongPassword = errors.New("auth wrong password")
	errUsernameTaken     = errors.New("username already taken")
)
