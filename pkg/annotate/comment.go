package annotate

import (
	"time"

	"github.com/google/uuid"
)

// Comment is an anchored, persisted unit of reviewer feedback. Once created
// it is never mutated except for the Resolved toggle; removal only happens
// through CommentSet.Clear.
type Comment struct {
	Id          uuid.UUID `json:"id"`
	Author      string    `json:"author"`
	Perspective string    `json:"perspective"`
	Avatar      string    `json:"avatar,omitempty"`
	Text        string    `json:"text"`
	Excerpt     string    `json:"excerpt"`
	Position    int       `json:"position"`
	Length      int       `json:"length"`
	Resolved    bool      `json:"resolved"`
	CreatedAt   time.Time `json:"created_at"`
}

func (c Comment) end() int {
	return c.Position + c.Length
}
