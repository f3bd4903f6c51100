// Package notifications derives notification records from reaction and
// comment mutations. Delivery is best-effort: a failure here is logged and
// swallowed, never surfaced to the mutation that triggered it.
package notifications

import (
	"context"
	"fmt"
	"log"

	"github.com/jestfeed/backend/internal/cache"
	"github.com/jestfeed/backend/internal/models"
	"github.com/jestfeed/backend/internal/repositories"
)

// Options carries the type-specific payload of a notification.
type Options struct {
	ReactionType string
	CommentID    string
}

// PostFinder is the slice of the post repository the notifier needs to verify
// the post being notified about still exists.
type PostFinder interface {
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
}

// Notifier creates deduplicated notifications for content mutations.
type Notifier struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	posts            PostFinder
	cache            *cache.Cache
}

// New creates a Notifier. cache may be nil.
func New(notificationRepo repositories.NotificationRepository, userRepo repositories.UserRepository, posts PostFinder, c *cache.Cache) *Notifier {
	return &Notifier{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		posts:            posts,
		cache:            c,
	}
}

// Notify records that sender performed a ntype action on recipient's content.
//
// The call is a silent no-op when the sender acts on their own content, when
// the sender, recipient or post cannot be resolved, or when an unread
// notification for the same tuple already exists. The dedup tuple is
// (recipient, sender, type, post); reaction notifications additionally key on
// the comment and reaction type, so moving to a different reaction type, or
// reacting on a different comment of the same post, notifies afresh. Once the
// prior notification is marked read the tuple opens up again.
func (n *Notifier) Notify(ctx context.Context, recipientID, senderID uint, ntype, postID string, opts Options) {
	if recipientID == senderID {
		return
	}

	sender, err := n.userRepo.GetUserByID(senderID)
	if err != nil {
		log.Printf("notifications: could not resolve sender %d: %v", senderID, err)
		return
	}
	if _, err := n.userRepo.GetUserByID(recipientID); err != nil {
		log.Printf("notifications: could not resolve recipient %d: %v", recipientID, err)
		return
	}
	if _, err := n.posts.GetPostByID(ctx, postID); err != nil {
		log.Printf("notifications: could not resolve post %s: %v", postID, err)
		return
	}

	exists, err := n.notificationRepo.HasUnread(recipientID, senderID, ntype, postID, opts.CommentID, opts.ReactionType)
	if err != nil {
		log.Printf("notifications: dedup check failed: %v", err)
		return
	}
	if exists {
		return
	}

	notification := &models.Notification{
		Type:         ntype,
		SenderID:     senderID,
		RecipientID:  recipientID,
		PostID:       postID,
		CommentID:    opts.CommentID,
		ReactionType: opts.ReactionType,
		Message:      renderMessage(sender.Handle, ntype, opts.ReactionType),
	}

	if err := n.notificationRepo.CreateNotification(notification); err != nil {
		log.Printf("notifications: create failed: %v", err)
		return
	}
	n.cache.InvalidateUnreadCount(ctx, recipientID)
}

func renderMessage(senderHandle, ntype, reactionType string) string {
	switch ntype {
	case models.NotificationReaction:
		return fmt.Sprintf("%s reacted with %s to your post", senderHandle, reactionType)
	case models.NotificationComment:
		return fmt.Sprintf("%s commented on your post", senderHandle)
	case models.NotificationReply:
		return fmt.Sprintf("%s replied to your comment", senderHandle)
	}
	return ""
}
