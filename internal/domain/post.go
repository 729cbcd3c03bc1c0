package domain

import "time"

// PostId is the surrogate identity, unique across all threads.
// PostNum is the thread-local sequence number, 1..N within its thread.
type (
	PostId  = int64
	PostNum = int64
)

type Post struct {
	Id       PostId    `json:"id"`
	ThreadId ThreadId  `json:"thread_id"`
	Num      PostNum   `json:"post_id"`
	Name     string    `json:"name"`
	Message  string    `json:"message"`
	Date     time.Time `json:"date"`
	// Thread-local sequence number of the post this one replies to.
	// Nil for top-level posts.
	ReplyTo *PostNum `json:"rep_id,omitempty"`
}

type PostCreationData struct {
	ThreadId ThreadId
	Name     string `validate:"required"`
	Message  string `validate:"required"`
	ReplyTo  *PostNum
}
