package dto

type StationResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ListStationsResponse struct {
	Stations []StationResponse `json:"stations"`
}
