package domain

import "time"

type ThreadId = int64

type Thread struct {
	Id        ThreadId  `json:"thread_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	// Number of posts currently in the thread. Maintained by storage, also
	// the source of the next post ordinal.
	PostCount int `json:"post_count"`
}

// to iterate thru layers: handler -> service -> storage
type ThreadCreationData struct {
	Title string `validate:"required"`
}
