package recovery

type ForgotRequest struct {
	Email string `json:"email"`
}

type VerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type ResetRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"new_password"`
}

type StatusResponse struct {
	Status string `json:"status"`
}
