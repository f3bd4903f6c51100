package handlers

import (
	"net/http"

	"github.com/jestfeed/backend/internal/models"
	"github.com/jestfeed/backend/internal/notifications"
	"github.com/jestfeed/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentHandler handles comment creation on posts
type CommentHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
	notifier       *notifications.Notifier
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, notifier *notifications.Notifier) *CommentHandler {
	return &CommentHandler{
		postRepository: postRepo,
		userRepository: userRepo,
		notifier:       notifier,
	}
}

// RegisterCommentRoutes registers comment routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:id/comments", h.CreateComment)
}

// CreateComment appends a comment to a post. Without parentCommentId the
// comment goes at the post root; with one, the parent node is located
// depth-first anywhere in the tree and the comment becomes one of its replies.
// The post's author is notified either way, with kind comment for a root
// comment and kind reply for a threaded one.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	postID := c.Param("id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var parent *primitive.ObjectID
	if req.ParentCommentID != "" {
		id, err := primitive.ObjectIDFromHex(req.ParentCommentID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid parent comment ID")
		}
		parent = &id
	}

	var post *models.Post
	var node *models.Comment
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

		node, err = post.AddComment(currentUserID, req.Text, parent)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "Parent comment not found")
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

	kind := models.NotificationComment
	if parent != nil {
		kind = models.NotificationReply
	}
	h.notifier.Notify(c.Request().Context(), post.AuthorID, currentUserID, kind, postID,
		notifications.Options{CommentID: node.ID.Hex()})

	return c.JSON(http.StatusCreated, newUserResolver(h.userRepository).enrichPost(post))
}
