package request

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateLobbyRequest is the request body for opening a channel lobby
type CreateLobbyRequest struct {
	AllowSolo bool `json:"allow_solo,omitempty"`
}

// ToggleSettingRequest is the request body for flipping a boolean setting
type ToggleSettingRequest struct {
	Setting string `json:"setting"`
}

// SetTimeoutRequest is the request body for setting the turn timeout.
// The value is the raw modal payload; validation happens in the core.
type SetTimeoutRequest struct {
	Value string `json:"value"`
}
