package domain

// PinCategory is the label given to every pin placed through the map.
const PinCategory = "destination"

// MapPin is a named location pinned on a trip's map.
type MapPin struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Category string  `json:"category"`
}
