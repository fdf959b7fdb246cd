package social

type UserSummary struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	BloodGroup string `json:"blood_group,omitempty"`
	Address    string `json:"address,omitempty"`
	Following  bool   `json:"following"`
}

type DirectoryResponse struct {
	Users []UserSummary `json:"users"`
}

type FollowResponse struct {
	Following bool `json:"following"`
}

type ConnectionsResponse struct {
	Followers []UserSummary `json:"followers"`
	Following []UserSummary `json:"following"`
}
