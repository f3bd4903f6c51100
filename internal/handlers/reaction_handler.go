package handlers

import (
	"net/http"

	"github.com/jestfeed/backend/internal/models"
	"github.com/jestfeed/backend/internal/notifications"
	"github.com/jestfeed/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// saveRetries bounds the optimistic-concurrency retry loop on post content
// writes. Each retry reloads the document and reapplies the mutation to fresh
// state, so the per-user reaction invariant holds under concurrent writers.
const saveRetries = 3

// ReactionHandler handles reactions on posts and on comment nodes
type ReactionHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
	notifier       *notifications.Notifier
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, notifier *notifications.Notifier) *ReactionHandler {
	return &ReactionHandler{
		postRepository: postRepo,
		userRepository: userRepo,
		notifier:       notifier,
	}
}

// RegisterReactionRoutes registers reaction routes
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group) {
	g.POST("/posts/:id/react", h.ReactToPost)
	g.POST("/posts/:id/comments/:commentId/react", h.ReactToComment)
}

// ReactToPost applies the caller's reaction to a post. Reacting with the type
// the caller already holds toggles it off; any other type moves the caller to
// that type. Only a type change notifies the post author.
func (h *ReactionHandler) ReactToPost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	postID := c.Param("id")

	var req models.ReactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var post *models.Post
	var changed bool
	saved := false

	for attempt := 0; attempt < saveRetries && !saved; attempt++ {
		var err error
		post, err = h.postRepository.GetPostByID(c.Request().Context(), postID)
		if err != nil {
			if err == repositories.ErrPostNotFound {
				return echo.NewHTTPError(http.StatusNotFound, "Post not found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}

		_, changed = post.React(currentUserID, req.ReactionType)

		err = h.postRepository.SaveContent(c.Request().Context(), post)
		switch err {
		case nil:
			saved = true
		case repositories.ErrVersionConflict:
			// lost the race, reload and reapply
		case repositories.ErrPostNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	if !saved {
		return echo.NewHTTPError(http.StatusConflict, "Post was updated concurrently, please retry")
	}

	if changed {
		h.notifier.Notify(c.Request().Context(), post.AuthorID, currentUserID,
			models.NotificationReaction, postID,
			notifications.Options{ReactionType: req.ReactionType})
	}

	return c.JSON(http.StatusOK, newUserResolver(h.userRepository).enrichPost(post))
}

// ReactToComment applies the same reaction transition to a single comment
// node, located depth-first anywhere in the post's tree. A type change
// notifies the comment's author.
func (h *ReactionHandler) ReactToComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	postID := c.Param("id")

	commentID, err := primitive.ObjectIDFromHex(c.Param("commentId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	var req models.ReactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var post *models.Post
	var node *models.Comment
	var changed bool
	saved := false

	for attempt := 0; attempt < saveRetries && !saved; attempt++ {
		post, err = h.postRepository.GetPostByID(c.Request().Context(), postID)
		if err != nil {
			if err == repositories.ErrPostNotFound {
				return echo.NewHTTPError(http.StatusNotFound, "Post not found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}

		node, _, changed, err = post.ReactToComment(commentID, currentUserID, req.ReactionType)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}

		err = h.postRepository.SaveContent(c.Request().Context(), post)
		switch err {
		case nil:
			saved = true
		case repositories.ErrVersionConflict:
			// lost the race, reload and reapply
		case repositories.ErrPostNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	if !saved {
		return echo.NewHTTPError(http.StatusConflict, "Post was updated concurrently, please retry")
	}

	if changed {
		h.notifier.Notify(c.Request().Context(), node.AuthorID, currentUserID,
			models.NotificationReaction, postID,
			notifications.Options{ReactionType: req.ReactionType, CommentID: commentID.Hex()})
	}

	return c.JSON(http.StatusOK, newUserResolver(h.userRepository).enrichPost(post))
}
