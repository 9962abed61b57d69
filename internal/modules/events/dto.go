package events

type CreateEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Location    string `json:"location" binding:"required"`
	MaxCapacity int    `json:"max_capacity" binding:"required,gt=0"`
}

type UpdateEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Location    string `json:"location" binding:"required"`
	MaxCapacity int    `json:"max_capacity" binding:"required,gt=0"`
}
