package models

// UserAccount is the record stored under the user's email key.
type UserAccount struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// SessionPointer identifies the user currently logged in on a device.
type SessionPointer struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}
