package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/jestfeed/backend/internal/models"
	"github.com/jestfeed/backend/internal/notifications"
	"github.com/jestfeed/backend/internal/repositories"
	"github.com/jestfeed/backend/internal/validators"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

// In-memory repository fakes backing the handler tests.

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User)}
}

func (f *fakeUserRepo) CreateUser(user *models.User) error {
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUserByHandle(handle string) (*models.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Handle, handle) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUsers() ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateUser(user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) SearchUsers(query string) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if strings.Contains(strings.ToLower(u.Handle), strings.ToLower(query)) {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakeNotificationRepo struct {
	rows   []models.Notification
	nextID uint
}

func (f *fakeNotificationRepo) CreateNotification(n *models.Notification) error {
	f.nextID++
	n.ID = f.nextID
	n.CreatedAt = time.Now().Add(time.Duration(f.nextID) * time.Millisecond)
	f.rows = append(f.rows, *n)
	return nil
}

func (f *fakeNotificationRepo) GetByRecipientID(recipientID uint, limit int) ([]models.Notification, error) {
	var out []models.Notification
	for i := len(f.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if f.rows[i].RecipientID == recipientID {
			out = append(out, f.rows[i])
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) HasUnread(recipientID, senderID uint, ntype, postID, commentID, reactionType string) (bool, error) {
	for _, n := range f.rows {
		if n.RecipientID != recipientID || n.SenderID != senderID || n.Type != ntype || n.PostID != postID || n.IsRead {
			continue
		}
		if ntype == models.NotificationReaction && (n.CommentID != commentID || n.ReactionType != reactionType) {
			continue
		}
		return true, nil
	}
	return false, nil
}

func (f *fakeNotificationRepo) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	for _, n := range f.rows {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkAsRead(notificationID, recipientID uint) error {
	for i := range f.rows {
		if f.rows[i].ID == notificationID && f.rows[i].RecipientID == recipientID {
			f.rows[i].IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeNotificationRepo) MarkAllAsRead(recipientID uint) error {
	for i := range f.rows {
		if f.rows[i].RecipientID == recipientID {
			f.rows[i].IsRead = true
		}
	}
	return nil
}

// fakePostRepo emulates the Mongo repository including the version check on
// SaveContent. conflictsRemaining forces that many artificial version
// conflicts to exercise the handlers' retry loop.
type fakePostRepo struct {
	posts              map[string]*models.Post
	order              []string
	conflictsRemaining int
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]*models.Post)}
}

func clonePost(p *models.Post) *models.Post {
	cp := *p
	cp.Reactions = cloneReactions(p.Reactions)
	cp.Comments = cloneComments(p.Comments)
	return &cp
}

func cloneReactions(entries []models.ReactionEntry) []models.ReactionEntry {
	out := make([]models.ReactionEntry, len(entries))
	for i, e := range entries {
		out[i] = models.ReactionEntry{Type: e.Type, Users: append([]uint(nil), e.Users...)}
	}
	return out
}

func cloneComments(comments []models.Comment) []models.Comment {
	out := make([]models.Comment, len(comments))
	for i, c := range comments {
		out[i] = c
		out[i].Reactions = cloneReactions(c.Reactions)
		out[i].Replies = cloneComments(c.Replies)
	}
	return out
}

func (f *fakePostRepo) CreatePost(_ context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.Version = 0
	post.CreatedAt = time.Now()
	post.UpdatedAt = time.Now()
	if post.Reactions == nil {
		post.Reactions = []models.ReactionEntry{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	f.posts[post.ID.Hex()] = clonePost(post)
	f.order = append(f.order, post.ID.Hex())
	return nil
}

func (f *fakePostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, err
	}
	if p, ok := f.posts[id]; ok {
		return clonePost(p), nil
	}
	return nil, repositories.ErrPostNotFound
}

func (f *fakePostRepo) GetAllPosts(_ context.Context, skip, limit int64) ([]models.Post, error) {
	var out []models.Post
	for i := len(f.order) - 1; i >= 0; i-- {
		out = append(out, *clonePost(f.posts[f.order[i]]))
	}
	return paginate(out, skip, limit), nil
}

func (f *fakePostRepo) GetPostsByAuthorID(_ context.Context, authorID uint, skip, limit int64) ([]models.Post, error) {
	var out []models.Post
	for i := len(f.order) - 1; i >= 0; i-- {
		if p := f.posts[f.order[i]]; p.AuthorID == authorID {
			out = append(out, *clonePost(p))
		}
	}
	return paginate(out, skip, limit), nil
}

func paginate(posts []models.Post, skip, limit int64) []models.Post {
	if skip >= int64(len(posts)) {
		return nil
	}
	posts = posts[skip:]
	if limit > 0 && limit < int64(len(posts)) {
		posts = posts[:limit]
	}
	return posts
}

func (f *fakePostRepo) UpdatePost(_ context.Context, id string, post *models.Post) error {
	stored, ok := f.posts[id]
	if !ok {
		return repositories.ErrPostNotFound
	}
	stored.Text = post.Text
	stored.Category = post.Category
	stored.IsAnonymous = post.IsAnonymous
	stored.UpdatedAt = time.Now()
	return nil
}

func (f *fakePostRepo) SaveContent(_ context.Context, post *models.Post) error {
	stored, ok := f.posts[post.ID.Hex()]
	if !ok {
		return repositories.ErrPostNotFound
	}
	if f.conflictsRemaining > 0 {
		f.conflictsRemaining--
		return repositories.ErrVersionConflict
	}
	if stored.Version != post.Version {
		return repositories.ErrVersionConflict
	}
	post.Version++
	f.posts[post.ID.Hex()] = clonePost(post)
	return nil
}

func (f *fakePostRepo) DeletePost(_ context.Context, id string) error {
	if _, ok := f.posts[id]; !ok {
		return repositories.ErrPostNotFound
	}
	delete(f.posts, id)
	for i, h := range f.order {
		if h == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

// testEnv wires handlers against the fakes the way the router wires them
// against real repositories.
type testEnv struct {
	echo      *echo.Echo
	users     *fakeUserRepo
	posts     *fakePostRepo
	notifs    *fakeNotificationRepo
	alice     *models.User
	bob       *models.User
	reactions *ReactionHandler
	comments  *CommentHandler
	notifH    *NotificationHandler
	postH     *PostHandler
}

func newTestEnv() *testEnv {
	e := echo.New()
	e.Validator = validators.NewValidator()

	users := newFakeUserRepo()
	alice := &models.User{Handle: "alice", HumorTag: "Dry"}
	bob := &models.User{Handle: "bob", HumorTag: "Savage"}
	_ = users.CreateUser(alice)
	_ = users.CreateUser(bob)

	posts := newFakePostRepo()
	notifs := &fakeNotificationRepo{}
	notifier := notifications.New(notifs, users, posts, nil)

	return &testEnv{
		echo:      e,
		users:     users,
		posts:     posts,
		notifs:    notifs,
		alice:     alice,
		bob:       bob,
		reactions: NewReactionHandler(posts, users, notifier),
		comments:  NewCommentHandler(posts, users, notifier),
		notifH:    NewNotificationHandler(notifs, users, nil),
		postH:     NewPostHandler(posts, users),
	}
}

// createPost seeds a post authored by the given user directly through the
// repository.
func (env *testEnv) createPost(author *models.User, text string) *models.Post {
	post := &models.Post{AuthorID: author.ID, Text: text, Category: "Tech & Geek Humor"}
	_ = env.posts.CreatePost(context.Background(), post)
	return post
}

// newContext builds an echo context carrying the given caller's JWT claims,
// mirroring what the auth middleware stores.
func (env *testEnv) newContext(method, target, body string, caller *models.User) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.echo.NewContext(req, rec)
	if caller != nil {
		c.Set("user", &models.JwtCustomClaims{
			UserID: caller.ID,
			Handle: caller.Handle,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
	}
	return c, rec
}
