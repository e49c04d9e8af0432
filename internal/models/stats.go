package models

type SystemStats struct {
	Status      string `json:"status"`
	TotalUsers  int    `json:"totalUsers"`
	TotalPlaces int    `json:"totalPlaces"`
}
