package models

const DefaultListLimit int64 = 10

// ListOptions carries the paging parameters of a balance transaction listing.
// StartingAfter is nil when the caller did not send a cursor.
type ListOptions struct {
	Limit         int64
	StartingAfter *string
}

func NewListOptions() *ListOptions {
	return &ListOptions{
		Limit: DefaultListLimit,
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}
