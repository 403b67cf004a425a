package services

import (
	"context"
	"io"
	"sync"
	"testing"

	"delipucash/internal/models"
	"delipucash/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// faultStore wraps MemoryStore, counts calls and can inject failures per method.
type faultStore struct {
	*store.MemoryStore

	mu        sync.Mutex
	calls     int
	mutations int
	failOn    map[string]error
	// hideNext makes the next n HasReaction calls report false, as if a concurrent insert landed after the check
	hideNext int
}

func newFaultStore() *faultStore {
	return &faultStore{MemoryStore: store.NewMemoryStore(), failOn: map[string]error{}}
}

func (f *faultStore) hit(method string, mutation bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if mutation {
		f.mutations++
	}
	return f.failOn[method]
}

func (f *faultStore) fail(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failOn[method] = err
}

func (f *faultStore) counts() (calls, mutations int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls, f.mutations
}

func (f *faultStore) FindResponse(ctx context.Context, id string) (*models.Response, error) {
	if err := f.hit("FindResponse", false); err != nil {
		return nil, err
	}
	return f.MemoryStore.FindResponse(ctx, id)
}

func (f *faultStore) FindUser(ctx context.Context, id string) (*models.AppUser, error) {
	if err := f.hit("FindUser", false); err != nil {
		return nil, err
	}
	return f.MemoryStore.FindUser(ctx, id)
}

func (f *faultStore) HasReaction(ctx context.Context, kind models.ReactionKind, userID, responseID string) (bool, error) {
	if err := f.hit("HasReaction", false); err != nil {
		return false, err
	}
	f.mu.Lock()
	hide := f.hideNext > 0
	if hide {
		f.hideNext--
	}
	f.mu.Unlock()
	if hide {
		return false, nil
	}
	return f.MemoryStore.HasReaction(ctx, kind, userID, responseID)
}

func (f *faultStore) CreateReaction(ctx context.Context, kind models.ReactionKind, userID, responseID string) error {
	if err := f.hit("CreateReaction", true); err != nil {
		return err
	}
	return f.MemoryStore.CreateReaction(ctx, kind, userID, responseID)
}

func (f *faultStore) DeleteReactions(ctx context.Context, kind models.ReactionKind, userID, responseID string) (int64, error) {
	if err := f.hit("DeleteReactions", true); err != nil {
		return 0, err
	}
	return f.MemoryStore.DeleteReactions(ctx, kind, userID, responseID)
}

func (f *faultStore) CountReactions(ctx context.Context, kind models.ReactionKind, responseID string) (int64, error) {
	if err := f.hit("CountReactions", false); err != nil {
		return 0, err
	}
	return f.MemoryStore.CountReactions(ctx, kind, responseID)
}

func (f *faultStore) CreateReply(ctx context.Context, reply *models.ResponseReply) error {
	if err := f.hit("CreateReply", true); err != nil {
		return err
	}
	return f.MemoryStore.CreateReply(ctx, reply)
}

func (f *faultStore) ListReplies(ctx context.Context, responseID string) ([]models.ResponseReply, error) {
	if err := f.hit("ListReplies", false); err != nil {
		return nil, err
	}
	return f.MemoryStore.ListReplies(ctx, responseID)
}

func (f *faultStore) CountReplies(ctx context.Context, responseID string) (int64, error) {
	if err := f.hit("CountReplies", false); err != nil {
		return 0, err
	}
	return f.MemoryStore.CountReplies(ctx, responseID)
}

type fixture struct {
	store    *faultStore
	response models.Response
	author   models.AppUser
	u1       models.AppUser
	u2       models.AppUser
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := newFaultStore()
	author := s.PutUser(models.AppUser{FirstName: "Amina", LastName: "Nakato"})
	return &fixture{
		store:    s,
		author:   author,
		response: s.PutResponse(models.Response{UserID: author.ID, ResponseText: "Mobile money is faster"}),
		u1:       s.PutUser(models.AppUser{FirstName: "Brian", LastName: "Okello"}),
		u2:       s.PutUser(models.AppUser{FirstName: "Grace", LastName: "Atim"}),
	}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func hookedLogger() (*logrus.Logger, *test.Hook) {
	return test.NewNullLogger()
}
