package services

import (
	"context"
	"errors"
	"testing"

	"delipucash/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitReply(t *testing.T) {
	f := newFixture(t)
	svc := NewReplyService(f.store, quietLogger())
	ctx := context.Background()

	res, err := svc.SubmitReply(ctx, f.response.ID, f.u1.ID, "  I **agree**  ")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Reply.ID)
	assert.Equal(t, "I **agree**", res.Reply.ReplyText)
	assert.Equal(t, f.u1.ID, res.Reply.User.ID)
	assert.Equal(t, "Brian", res.Reply.User.FirstName)
	assert.Contains(t, res.Reply.ReplyHTML, "<strong>agree</strong>")
	assert.Equal(t, int64(1), res.ReplyCount)

	// 同一用户可以多次回复
	res, err = svc.SubmitReply(ctx, f.response.ID, f.u1.ID, "again")
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.ReplyCount)
}

func TestSubmitReplyRejectsBlankText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t "} {
		f := newFixture(t)
		svc := NewReplyService(f.store, quietLogger())

		_, err := svc.SubmitReply(context.Background(), f.response.ID, f.u1.ID, text)
		require.ErrorIs(t, err, ErrInvalidInput)
		assert.Equal(t, "Reply text is required", InvalidInputMessage(err))

		calls, _ := f.store.counts()
		assert.Zero(t, calls, "blank text must not reach the store")
	}
}

func TestSubmitReplyValidationOrder(t *testing.T) {
	f := newFixture(t)
	svc := NewReplyService(f.store, quietLogger())

	// 内容和 userId 都缺失时先报内容
	_, err := svc.SubmitReply(context.Background(), f.response.ID, "", "  ")
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "Reply text is required", InvalidInputMessage(err))

	_, err = svc.SubmitReply(context.Background(), f.response.ID, " ", "hello")
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "userId is required", InvalidInputMessage(err))

	calls, _ := f.store.counts()
	assert.Zero(t, calls)
}

func TestSubmitReplyNotFound(t *testing.T) {
	f := newFixture(t)
	svc := NewReplyService(f.store, quietLogger())
	ctx := context.Background()

	_, err := svc.SubmitReply(ctx, "missing", f.u1.ID, "hello")
	assert.EqualError(t, err, "Response not found")

	_, err = svc.SubmitReply(ctx, f.response.ID, "ghost", "hello")
	assert.EqualError(t, err, "User not found")

	_, mutations := f.store.counts()
	assert.Zero(t, mutations)
	count, err := f.store.MemoryStore.CountReplies(ctx, f.response.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestListRepliesOrder(t *testing.T) {
	f := newFixture(t)
	svc := NewReplyService(f.store, quietLogger())
	ctx := context.Background()

	for _, text := range []string{"R1", "R2", "R3"} {
		_, err := svc.SubmitReply(ctx, f.response.ID, f.u2.ID, text)
		require.NoError(t, err)
	}
	// 其他回答下的回复不应出现
	other := f.store.PutResponse(models.Response{UserID: f.author.ID, ResponseText: "other"})
	_, err := svc.SubmitReply(ctx, other.ID, f.u1.ID, "elsewhere")
	require.NoError(t, err)

	replies, err := svc.ListReplies(ctx, f.response.ID)
	require.NoError(t, err)
	require.Len(t, replies, 3)
	for i, want := range []string{"R1", "R2", "R3"} {
		assert.Equal(t, want, replies[i].ReplyText)
		assert.Equal(t, "Grace", replies[i].User.FirstName)
		assert.Contains(t, replies[i].ReplyHTML, want)
	}
}

func TestListRepliesEmptyAndMissing(t *testing.T) {
	f := newFixture(t)
	svc := NewReplyService(f.store, quietLogger())
	ctx := context.Background()

	replies, err := svc.ListReplies(ctx, f.response.ID)
	require.NoError(t, err)
	assert.NotNil(t, replies)
	assert.Empty(t, replies)

	_, err = svc.ListReplies(ctx, "missing")
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestSubmitReplyPersistenceFailure(t *testing.T) {
	f := newFixture(t)
	svc := NewReplyService(f.store, quietLogger())
	boom := errors.New("disk full")
	f.store.fail("CreateReply", boom)

	_, err := svc.SubmitReply(context.Background(), f.response.ID, f.u1.ID, "hello")
	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "Failed to post reply", pe.Op)
	assert.ErrorIs(t, err, boom)
}
