package book

import "time"

// Book is a catalog record plus its copy inventory. AvailableCopies is a
// bounded counter: every successful write keeps it inside [0, TotalCopies].
type Book struct {
	ID              int64     `json:"book_id"`
	ISBN            string    `json:"isbn"`
	Title           string    `json:"title"`
	AuthorID        int64     `json:"author_id"`
	PublisherID     int64     `json:"publisher_id"`
	CategoryID      int64     `json:"category_id"`
	PublicationYear int       `json:"publication_year"`
	TotalCopies     int       `json:"total_copies"`
	AvailableCopies int       `json:"available_copies"`
	Price           float64   `json:"price"`
	Language        string    `json:"language,omitempty"`
	Description     string    `json:"description,omitempty"`
	Location        string    `json:"location,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
