package model

type User struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	AvailableSlots []string `json:"availableSlots"`
}

// Meeting is stored as received: apart from ID every field holds whatever
// JSON value the client sent (usually strings for Title, Date and Time, a
// number for Duration and a list for Participants).
type Meeting struct {
	ID           int `json:"id"`
	Title        any `json:"title"`
	Date         any `json:"date"`
	Time         any `json:"time"`
	Duration     any `json:"duration"`
	Participants any `json:"participants"`
}
