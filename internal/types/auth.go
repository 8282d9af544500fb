package types

import "songvault/internal/models"

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

type VerifyRequest struct {
	Token string `json:"token"`
}

type UserIdentity struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsStaff  bool   `json:"is_staff"`
}

// CredentialResponse is returned by register, login and refresh
type CredentialResponse struct {
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
	UserID  int          `json:"user_id"`
	User    UserIdentity `json:"user"`
}

func NewUserIdentity(user *models.User) UserIdentity {
	return UserIdentity{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsStaff:  user.IsStaff,
	}
}
