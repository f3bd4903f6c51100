package handlers

import (
	"github.com/jestfeed/backend/internal/models"
	"github.com/jestfeed/backend/internal/repositories"
)

// PostResponse is a post with author references resolved to compact user
// objects, for the post itself and every comment node in the tree.
type PostResponse struct {
	models.Post
	Author   models.UserCompact `json:"author"`
	Comments []CommentResponse  `json:"comments"`
}

// CommentResponse mirrors a comment node with its author resolved.
type CommentResponse struct {
	models.Comment
	Author  models.UserCompact `json:"author"`
	Replies []CommentResponse  `json:"replies"`
}

// userResolver resolves author ids to compact users, caching lookups so a deep
// comment tree costs one query per distinct author.
type userResolver struct {
	userRepo repositories.UserRepository
	cache    map[uint]models.UserCompact
}

func newUserResolver(userRepo repositories.UserRepository) *userResolver {
	return &userResolver{userRepo: userRepo, cache: make(map[uint]models.UserCompact)}
}

func (r *userResolver) resolve(id uint) models.UserCompact {
	if u, ok := r.cache[id]; ok {
		return u
	}
	compact := models.UserCompact{ID: id}
	if user, err := r.userRepo.GetUserByID(id); err == nil {
		compact = user.ToCompact()
	}
	r.cache[id] = compact
	return compact
}

func (r *userResolver) enrichComments(comments []models.Comment) []CommentResponse {
	out := make([]CommentResponse, len(comments))
	for i, c := range comments {
		out[i] = CommentResponse{
			Comment: c,
			Author:  r.resolve(c.AuthorID),
			Replies: r.enrichComments(c.Replies),
		}
	}
	return out
}

func (r *userResolver) enrichPost(post *models.Post) PostResponse {
	return PostResponse{
		Post:     *post,
		Author:   r.resolve(post.AuthorID),
		Comments: r.enrichComments(post.Comments),
	}
}

func (r *userResolver) enrichPosts(posts []models.Post) []PostResponse {
	out := make([]PostResponse, len(posts))
	for i := range posts {
		out[i] = r.enrichPost(&posts[i])
	}
	return out
}
