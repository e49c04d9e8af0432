package models

import "time"

type Place struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Type        *string   `json:"type"`
	Address     *string   `json:"address"`
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"imageUrl"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   int64     `json:"created_by"`
}

// PlaceInput — поля места из запроса. nil означает «не передано».
type PlaceInput struct {
	Name        *string  `json:"name"`
	Type        *string  `json:"type"`
	Address     *string  `json:"address"`
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"imageUrl"`
}

// Merge накладывает переданные поля на существующую запись, остальные не трогает.
func (p *Place) Merge(in PlaceInput) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Type != nil {
		p.Type = copyString(in.Type)
	}
	if in.Address != nil {
		p.Address = copyString(in.Address)
	}
	if in.Lat != nil {
		p.Lat = *in.Lat
	}
	if in.Lon != nil {
		p.Lon = *in.Lon
	}
	if in.Description != nil {
		p.Description = copyString(in.Description)
	}
	if in.ImageURL != nil {
		p.ImageURL = copyString(in.ImageURL)
	}
}

func copyString(s *string) *string {
	v := *s
	return &v
}
