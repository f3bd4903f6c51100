package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/jestfeed/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (env *testEnv) comment(t *testing.T, caller *models.User, postID, body string) error {
	t.Helper()
	c, _ := env.newContext(http.MethodPost, "/api/posts/"+postID+"/comments", body, caller)
	c.SetParamNames("id")
	c.SetParamValues(postID)
	return env.comments.CreateComment(c)
}

func TestCreateComment_Root(t *testing.T) {
	env := newTestEnv()
	post := env.createPost(env.alice, "P1")
	postID := post.ID.Hex()

	require.NoError(t, env.comment(t, env.bob, postID, `{"text":"first!"}`))

	stored, _ := env.posts.GetPostByID(context.Background(), postID)
	require.Len(t, stored.Comments, 1)
	assert.Equal(t, "first!", stored.Comments[0].Text)
	assert.Equal(t, env.bob.ID, stored.Comments[0].AuthorID)
	assert.Nil(t, stored.Comments[0].ParentComment)

	require.Len(t, env.notifs.rows, 1)
	n := env.notifs.rows[0]
	assert.Equal(t, models.NotificationComment, n.Type)
	assert.Equal(t, env.alice.ID, n.RecipientID)
	assert.Equal(t, "bob commented on your post", n.Message)
	assert.Equal(t, stored.Comments[0].ID.Hex(), n.CommentID)
}

func TestCreateComment_ReplyNestsAndNotifiesPostAuthor(t *testing.T) {
	env := newTestEnv()
	carol := &models.User{Handle: "carol", HumorTag: "Punny"}
	require.NoError(t, env.users.CreateUser(carol))

	post := env.createPost(env.alice, "P1")
	postID := post.ID.Hex()

	// bob leaves the root comment C1
	require.NoError(t, env.comment(t, env.bob, postID, `{"text":"C1"}`))
	stored, _ := env.posts.GetPostByID(context.Background(), postID)
	c1ID := stored.Comments[0].ID.Hex()

	// carol replies to bob's comment
	require.NoError(t, env.comment(t, carol, postID, `{"text":"R1","parentCommentId":"`+c1ID+`"}`))

	stored, _ = env.posts.GetPostByID(context.Background(), postID)
	require.Len(t, stored.Comments, 1, "reply must not land at post root")
	require.Len(t, stored.Comments[0].Replies, 1)
	r1 := stored.Comments[0].Replies[0]
	assert.Equal(t, "R1", r1.Text)
	assert.Equal(t, c1ID, r1.ParentComment.Hex())

	// The recipient is the post's author alice, not bob whose comment was
	// replied to.
	last := env.notifs.rows[len(env.notifs.rows)-1]
	assert.Equal(t, models.NotificationReply, last.Type)
	assert.Equal(t, env.alice.ID, last.RecipientID)
	assert.Equal(t, "carol replied to your comment", last.Message)

	bobCount, _ := env.notifs.GetUnreadCount(env.bob.ID)
	assert.Zero(t, bobCount)
}

func TestCreateComment_ReplyToReply(t *testing.T) {
	env := newTestEnv()
	post := env.createPost(env.alice, "P1")
	postID := post.ID.Hex()

	require.NoError(t, env.comment(t, env.bob, postID, `{"text":"C1"}`))
	stored, _ := env.posts.GetPostByID(context.Background(), postID)
	c1ID := stored.Comments[0].ID.Hex()

	require.NoError(t, env.comment(t, env.bob, postID, `{"text":"R1","parentCommentId":"`+c1ID+`"}`))
	stored, _ = env.posts.GetPostByID(context.Background(), postID)
	r1ID := stored.Comments[0].Replies[0].ID.Hex()

	require.NoError(t, env.comment(t, env.bob, postID, `{"text":"R2","parentCommentId":"`+r1ID+`"}`))

	stored, _ = env.posts.GetPostByID(context.Background(), postID)
	require.Len(t, stored.Comments[0].Replies, 1)
	require.Len(t, stored.Comments[0].Replies[0].Replies, 1)
	r2 := stored.Comments[0].Replies[0].Replies[0]
	assert.Equal(t, "R2", r2.Text)
	assert.Equal(t, r1ID, r2.ParentComment.Hex())
	assert.Equal(t, 3, models.CountComments(stored.Comments))
}

func TestCreateComment_ParentNotFound(t *testing.T) {
	env := newTestEnv()
	post := env.createPost(env.alice, "P1")
	postID := post.ID.Hex()

	err := env.comment(t, env.bob, postID, `{"text":"orphan","parentCommentId":"64b0000000000000000000ee"}`)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)

	stored, _ := env.posts.GetPostByID(context.Background(), postID)
	assert.Empty(t, stored.Comments, "no partial mutation on failure")
	assert.Empty(t, env.notifs.rows)
}

func TestCreateComment_InvalidParentID(t *testing.T) {
	env := newTestEnv()
	post := env.createPost(env.alice, "P1")

	err := env.comment(t, env.bob, post.ID.Hex(), `{"text":"x","parentCommentId":"nonsense"}`)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateComment_MissingText(t *testing.T) {
	env := newTestEnv()
	post := env.createPost(env.alice, "P1")

	err := env.comment(t, env.bob, post.ID.Hex(), `{}`)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateComment_SelfCommentSuppressed(t *testing.T) {
	env := newTestEnv()
	post := env.createPost(env.alice, "P1")

	require.NoError(t, env.comment(t, env.alice, post.ID.Hex(), `{"text":"my own post"}`))

	stored, _ := env.posts.GetPostByID(context.Background(), post.ID.Hex())
	require.Len(t, stored.Comments, 1)
	assert.Empty(t, env.notifs.rows)
}

func TestCreateComment_PostNotFound(t *testing.T) {
	env := newTestEnv()

	err := env.comment(t, env.bob, "64b0000000000000000000ff", `{"text":"hello"}`)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}
