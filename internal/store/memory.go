package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"delipucash/internal/models"

	"github.com/google/uuid"
)

type pairKey struct {
	userID     string
	responseID string
}

// MemoryStore is an in-process Store used for local development and tests.
// It enforces the same (userId, responseId) uniqueness as the database.
type MemoryStore struct {
	mu          sync.RWMutex
	users       map[string]models.AppUser
	responses   map[string]models.Response
	reactions   map[models.ReactionKind]map[pairKey]time.Time
	replies     []models.ResponseReply
	lastReplyAt time.Time // store-assigned reply times strictly increase
	now         func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[string]models.AppUser),
		responses: make(map[string]models.Response),
		reactions: map[models.ReactionKind]map[pairKey]time.Time{
			models.ReactionLike:    make(map[pairKey]time.Time),
			models.ReactionDislike: make(map[pairKey]time.Time),
		},
		now: time.Now,
	}
}

// PutUser seeds a user, assigning an id when empty.
func (s *MemoryStore) PutUser(user models.AppUser) models.AppUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.now()
		user.UpdatedAt = user.CreatedAt
	}
	s.users[user.ID] = user
	return user
}

// PutResponse seeds a response, assigning an id when empty.
func (s *MemoryStore) PutResponse(response models.Response) models.Response {
	s.mu.Lock()
	defer s.mu.Unlock()
	if response.ID == "" {
		response.ID = uuid.New().String()
	}
	if response.CreatedAt.IsZero() {
		response.CreatedAt = s.now()
		response.UpdatedAt = response.CreatedAt
	}
	s.responses[response.ID] = response
	return response
}

func (s *MemoryStore) FindResponse(ctx context.Context, id string) (*models.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	response, ok := s.responses[id]
	if !ok {
		return nil, ErrNotFound
	}
	if author, ok := s.users[response.UserID]; ok {
		response.User = author.Profile()
	}
	return &response, nil
}

func (s *MemoryStore) FindUser(ctx context.Context, id string) (*models.AppUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *MemoryStore) HasReaction(ctx context.Context, kind models.ReactionKind, userID, responseID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	table, err := s.table(kind)
	if err != nil {
		return false, err
	}
	_, ok := table[pairKey{userID, responseID}]
	return ok, nil
}

func (s *MemoryStore) CreateReaction(ctx context.Context, kind models.ReactionKind, userID, responseID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	table, err := s.table(kind)
	if err != nil {
		return err
	}
	key := pairKey{userID, responseID}
	if _, ok := table[key]; ok {
		return fmt.Errorf("%w: %s (%s, %s)", ErrConflict, kind, userID, responseID)
	}
	table[key] = s.now()
	return nil
}

func (s *MemoryStore) DeleteReactions(ctx context.Context, kind models.ReactionKind, userID, responseID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	table, err := s.table(kind)
	if err != nil {
		return 0, err
	}
	key := pairKey{userID, responseID}
	if _, ok := table[key]; !ok {
		return 0, nil
	}
	delete(table, key)
	return 1, nil
}

func (s *MemoryStore) CountReactions(ctx context.Context, kind models.ReactionKind, responseID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	table, err := s.table(kind)
	if err != nil {
		return 0, err
	}
	var count int64
	for key := range table {
		if key.responseID == responseID {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) CreateReply(ctx context.Context, reply *models.ResponseReply) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if reply.ID == "" {
		reply.ID = uuid.New().String()
	}
	if reply.CreatedAt.IsZero() {
		createdAt := s.now()
		if !createdAt.After(s.lastReplyAt) {
			createdAt = s.lastReplyAt.Add(time.Microsecond)
		}
		s.lastReplyAt = createdAt
		reply.CreatedAt = createdAt
	}
	if author, ok := s.users[reply.UserID]; ok {
		reply.User = author.Profile()
	}
	stored := *reply
	stored.ReplyHTML = ""
	s.replies = append(s.replies, stored)
	return nil
}

func (s *MemoryStore) ListReplies(ctx context.Context, responseID string) ([]models.ResponseReply, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	replies := make([]models.ResponseReply, 0)
	for _, reply := range s.replies {
		if reply.ResponseID != responseID {
			continue
		}
		if author, ok := s.users[reply.UserID]; ok {
			reply.User = author.Profile()
		}
		replies = append(replies, reply)
	}
	// same total order as GormStore: created_at, then id
	sort.Slice(replies, func(i, j int) bool {
		if !replies[i].CreatedAt.Equal(replies[j].CreatedAt) {
			return replies[i].CreatedAt.Before(replies[j].CreatedAt)
		}
		return replies[i].ID < replies[j].ID
	})
	return replies, nil
}

func (s *MemoryStore) CountReplies(ctx context.Context, responseID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, reply := range s.replies {
		if reply.ResponseID == responseID {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) table(kind models.ReactionKind) (map[pairKey]time.Time, error) {
	table, ok := s.reactions[kind]
	if !ok {
		return nil, fmt.Errorf("store: unknown reaction kind %q", kind)
	}
	return table, nil
}
