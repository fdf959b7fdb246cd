package camps

type CreateCampRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Date     string `json:"date"` // YYYY-MM-DD
}

type CampResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Location  string `json:"location"`
	Date      string `json:"date"`
	Organizer string `json:"organizer"`
	Mine      bool   `json:"mine"`
}

type ListResponse struct {
	Camps []CampResponse `json:"camps"`
}
