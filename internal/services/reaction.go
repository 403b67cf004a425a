package services

import (
	"context"
	"errors"

	"delipucash/internal/metrics"
	"delipucash/internal/models"
	"delipucash/internal/store"

	"github.com/sirupsen/logrus"
)

// ReactionResult 变更后重新读取的计数和当前用户状态
type ReactionResult struct {
	Message      string `json:"message"`
	LikeCount    int64  `json:"likeCount"`
	DislikeCount int64  `json:"dislikeCount"`
	IsLiked      bool   `json:"isLiked"`
	IsDisliked   bool   `json:"isDisliked"`
}

// ReactionService 点赞/点踩，二者互斥且幂等
type ReactionService struct {
	store store.Store
	log   logrus.FieldLogger
}

func NewReactionService(s store.Store, log logrus.FieldLogger) *ReactionService {
	return &ReactionService{store: s, log: log}
}

// SetLike 设置或取消点赞。点赞时会移除同一用户对该回答的点踩。
func (s *ReactionService) SetLike(ctx context.Context, responseID, userID string, isLiked bool) (*ReactionResult, error) {
	return s.set(ctx, models.ReactionLike, responseID, userID, isLiked)
}

// SetDislike 是 SetLike 的镜像
func (s *ReactionService) SetDislike(ctx context.Context, responseID, userID string, isDisliked bool) (*ReactionResult, error) {
	return s.set(ctx, models.ReactionDislike, responseID, userID, isDisliked)
}

func (s *ReactionService) set(ctx context.Context, kind models.ReactionKind, responseID, userID string, on bool) (*ReactionResult, error) {
	op := "Failed to update " + string(kind) + " status"
	log := s.log.WithFields(logrus.Fields{
		"responseId": responseID,
		"userId":     userID,
		"kind":       kind,
		"set":        on,
	})
	log.Debug("reaction request")

	if _, err := requireResponse(ctx, s.store, responseID, op); err != nil {
		return nil, err
	}
	if _, err := requireUser(ctx, s.store, userID, op); err != nil {
		return nil, err
	}

	if on {
		if err := s.ensure(ctx, kind, responseID, userID, log); err != nil {
			return nil, &PersistenceError{Op: op, Err: err}
		}
		// 先建本方再删对方：并发的赞和踩最终至多留下一个
		if _, err := s.store.DeleteReactions(ctx, kind.Opposite(), userID, responseID); err != nil {
			return nil, &PersistenceError{Op: op, Err: err}
		}
	} else {
		if _, err := s.store.DeleteReactions(ctx, kind, userID, responseID); err != nil {
			return nil, &PersistenceError{Op: op, Err: err}
		}
	}
	metrics.RecordReaction(string(kind), on)

	likes, dislikes, err := reactionCounts(ctx, s.store, responseID)
	if err != nil {
		return nil, &PersistenceError{Op: op, Err: err}
	}
	isLiked, isDisliked, err := reactionStatus(ctx, s.store, userID, responseID)
	if err != nil {
		return nil, &PersistenceError{Op: op, Err: err}
	}

	return &ReactionResult{
		Message:      reactionMessage(kind, on),
		LikeCount:    likes,
		DislikeCount: dislikes,
		IsLiked:      isLiked,
		IsDisliked:   isDisliked,
	}, nil
}

// ensure 先查后建；唯一索引冲突说明目标状态已成立，按成功处理
func (s *ReactionService) ensure(ctx context.Context, kind models.ReactionKind, responseID, userID string, log logrus.FieldLogger) error {
	exists, err := s.store.HasReaction(ctx, kind, userID, responseID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	err = s.store.CreateReaction(ctx, kind, userID, responseID)
	if errors.Is(err, store.ErrConflict) {
		log.Info("concurrent reaction already present, treating as no-op")
		metrics.RecordReactionConflict(string(kind))
		return nil
	}
	return err
}

func reactionMessage(kind models.ReactionKind, on bool) string {
	switch {
	case kind == models.ReactionLike && on:
		return "Response liked successfully"
	case kind == models.ReactionLike:
		return "Like removed successfully"
	case on:
		return "Response disliked successfully"
	default:
		return "Dislike removed successfully"
	}
}
