package request

// SignupRequest is the request body for creating an account
type SignupRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

// LogoutRequest is the request body for logging out
type LogoutRequest struct {
	ID string `json:"id"`
}

// CreateSessionRequest is the request body for ensuring a personal session
type CreateSessionRequest struct {
	ID string `json:"id"`
}

// JoinRequest is the request body for joining a session
type JoinRequest struct {
	Code string `json:"code"`
	ID   string `json:"id"`
}

// LeaveRequest is the request body for leaving a session
type LeaveRequest struct {
	Code string `json:"code"`
	ID   string `json:"id"`
}

// ChangeSessionRequest is the request body for renaming a session
type ChangeSessionRequest struct {
	ID      string `json:"id"`
	OldCode string `json:"old_code"`
	NewCode string `json:"new_code"`
}

// ClickRequest is the request body for recording a click batch
type ClickRequest struct {
	Session string `json:"session"`
	ID      string `json:"id"`
	Click   int64  `json:"click"`
}

// UpgradeRequest is the request body for purchasing a multiplier upgrade
type UpgradeRequest struct {
	Session string `json:"session"`
	ID      string `json:"id"`
	Kind    string `json:"kind"`
}

// SubmitScoreRequest is the request body for the per-game score endpoints
type SubmitScoreRequest struct {
	ID      string `json:"id"`
	Score   int64  `json:"score"`
	Credits int64  `json:"credits"`
}
