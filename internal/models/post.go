package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrParentCommentNotFound is returned when a reply targets a comment id that
// does not exist anywhere in the post's tree.
var ErrParentCommentNotFound = errors.New("parent comment not found")

// ErrCommentNotFound is returned when a comment id does not resolve to a node
// in the post's tree.
var ErrCommentNotFound = errors.New("comment not found")

// Post represents a post document stored in MongoDB. Reactions and the
// recursive comment tree are embedded; Version backs the optimistic
// concurrency check on every reaction/comment mutation.
type Post struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	AuthorID    uint               `json:"author" bson:"author"`
	Text        string             `json:"text" bson:"text"`
	Category    string             `json:"category" bson:"category"`
	IsAnonymous bool               `json:"isAnonymous" bson:"is_anonymous"`
	Reactions   []ReactionEntry    `json:"reactions" bson:"reactions"`
	Comments    []Comment          `json:"comments" bson:"comments"`
	Version     int64              `json:"-" bson:"version"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updated_at"`
}

// React applies userID's reaction transition to the post's own reactions.
func (p *Post) React(userID uint, rtype string) (previous string, changed bool) {
	p.Reactions, previous, changed = ApplyReaction(p.Reactions, userID, rtype)
	return previous, changed
}

// ReactToComment applies the same reaction transition to the comment node
// identified by commentID, anywhere in the tree.
func (p *Post) ReactToComment(commentID primitive.ObjectID, userID uint, rtype string) (node *Comment, previous string, changed bool, err error) {
	node = FindComment(p.Comments, commentID)
	if node == nil {
		return nil, "", false, ErrCommentNotFound
	}
	node.Reactions, previous, changed = ApplyReaction(node.Reactions, userID, rtype)
	return node, previous, changed, nil
}

// AddComment appends a new comment authored by authorID. With a nil parent the
// node goes at the post root; otherwise the parent is located depth-first and
// the node is appended to its replies, so replies-to-replies nest at arbitrary
// depth. Insertion order is the only ordering.
func (p *Post) AddComment(authorID uint, text string, parent *primitive.ObjectID) (*Comment, error) {
	c := NewComment(authorID, text, parent)
	if parent == nil {
		p.Comments = append(p.Comments, c)
		return &p.Comments[len(p.Comments)-1], nil
	}
	target := FindComment(p.Comments, *parent)
	if target == nil {
		return nil, ErrParentCommentNotFound
	}
	target.Replies = append(target.Replies, c)
	return &target.Replies[len(target.Replies)-1], nil
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Text        string `json:"text" validate:"required,min=1,max=2000"`
	Category    string `json:"category" validate:"required,min=1,max=60"`
	IsAnonymous bool   `json:"isAnonymous"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Text        string `json:"text" validate:"required,min=1,max=2000"`
	Category    string `json:"category" validate:"required,min=1,max=60"`
	IsAnonymous bool   `json:"isAnonymous"`
}

// ReactRequest defines the request body for reacting to a post or comment
type ReactRequest struct {
	ReactionType string `json:"reactionType" validate:"required,reactiontype"`
}

// CreateCommentRequest defines the request body for commenting on a post.
// ParentCommentID targets an existing comment node for a threaded reply.
type CreateCommentRequest struct {
	Text            string `json:"text" validate:"required,min=1,max=1000"`
	ParentCommentID string `json:"parentCommentId,omitempty"`
}
