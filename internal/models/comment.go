package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is one node of a post's threaded discussion, embedded in the post
// document. Replies are full comments themselves, nested without a depth
// limit. A comment is append-only: once created only its reactions and its
// reply list may change.
type Comment struct {
	ID            primitive.ObjectID  `json:"id" bson:"_id"`
	AuthorID      uint                `json:"author" bson:"author"`
	Text          string              `json:"text" bson:"text"`
	Timestamp     time.Time           `json:"timestamp" bson:"timestamp"`
	ParentComment *primitive.ObjectID `json:"parentComment" bson:"parent_comment"`
	Reactions     []ReactionEntry     `json:"reactions" bson:"reactions"`
	Replies       []Comment           `json:"replies" bson:"replies"`
}

// NewComment builds a comment node with a fresh id and an empty reply list.
// parent is the immediate parent's id, nil for a root comment; it is recorded
// on the node for client-side reconstruction independent of the nesting.
func NewComment(authorID uint, text string, parent *primitive.ObjectID) Comment {
	return Comment{
		ID:            primitive.NewObjectID(),
		AuthorID:      authorID,
		Text:          text,
		Timestamp:     time.Now(),
		ParentComment: parent,
		Reactions:     []ReactionEntry{},
		Replies:       []Comment{},
	}
}

// FindComment walks comments depth-first, roots and all nested replies, and
// returns a pointer to the node whose id equals id, or nil if no node matches.
// The pointer aliases the slice the caller passed in, so mutations through it
// are visible in the tree.
func FindComment(comments []Comment, id primitive.ObjectID) *Comment {
	for i := range comments {
		if comments[i].ID == id {
			return &comments[i]
		}
		if found := FindComment(comments[i].Replies, id); found != nil {
			return found
		}
	}
	return nil
}

// CountComments returns the total number of nodes in the tree, replies
// included.
func CountComments(comments []Comment) int {
	n := len(comments)
	for i := range comments {
		n += CountComments(comments[i].Replies)
	}
	return n
}
