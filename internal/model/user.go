package model

import "strings"

// SessionUser is the profile carried by the storefront session token.
type SessionUser struct {
	ID          string `json:"id"`
	Fullname    string `json:"fullname"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// AuthContext mirrors what the browsing views know about the visitor.
type AuthContext struct {
	IsAuthenticated bool         `json:"isAuthenticated"`
	User            *SessionUser `json:"user,omitempty"`
	Token           string       `json:"-"`
}

// Anonymous is the context of a visitor without a session.
func Anonymous() AuthContext {
	return AuthContext{}
}

func (u *SessionUser) GetFirstName() string {
	if u == nil {
		return ""
	}
	parts := strings.Fields(u.Fullname)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

func (a AuthContext) GetPublicProfile() map[string]interface{} {
	if !a.IsAuthenticated || a.User == nil {
		return map[string]interface{}{"isAuthenticated": false}
	}
	return map[string]interface{}{
		"isAuthenticated": true,
		"id":              a.User.ID,
		"fullname":        a.User.Fullname,
		"firstName":       a.User.GetFirstName(),
		"email":           a.User.Email,
	}
}
