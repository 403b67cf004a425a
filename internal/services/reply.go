package services

import (
	"context"
	"strings"

	"delipucash/internal/metrics"
	"delipucash/internal/models"
	"delipucash/internal/store"
	"delipucash/internal/utils"

	"github.com/sirupsen/logrus"
)

// ReplyResult 新建的回复和最新回复数
type ReplyResult struct {
	Reply      models.ResponseReply `json:"reply"`
	ReplyCount int64                `json:"replyCount"`
}

type ReplyService struct {
	store store.Store
	log   logrus.FieldLogger
}

func NewReplyService(s store.Store, log logrus.FieldLogger) *ReplyService {
	return &ReplyService{store: s, log: log}
}

// SubmitReply 校验并保存一条回复。先校验内容再校验 userId，均在访问存储之前完成。
func (s *ReplyService) SubmitReply(ctx context.Context, responseID, userID, replyText string) (*ReplyResult, error) {
	const op = "Failed to post reply"

	text := strings.TrimSpace(replyText)
	if text == "" {
		return nil, invalidInput("Reply text is required")
	}
	if strings.TrimSpace(userID) == "" {
		return nil, invalidInput("userId is required")
	}

	if _, err := requireResponse(ctx, s.store, responseID, op); err != nil {
		return nil, err
	}
	if _, err := requireUser(ctx, s.store, userID, op); err != nil {
		return nil, err
	}

	reply := models.ResponseReply{
		ResponseID: responseID,
		UserID:     userID,
		ReplyText:  text,
	}
	if err := s.store.CreateReply(ctx, &reply); err != nil {
		return nil, &PersistenceError{Op: op, Err: err}
	}
	metrics.RecordReply()
	s.log.WithFields(logrus.Fields{
		"responseId": responseID,
		"userId":     userID,
		"replyId":    reply.ID,
	}).Info("reply posted")

	count, err := s.store.CountReplies(ctx, responseID)
	if err != nil {
		return nil, &PersistenceError{Op: op, Err: err}
	}

	reply.ReplyHTML = string(utils.RenderMarkdown(reply.ReplyText))
	return &ReplyResult{Reply: reply, ReplyCount: count}, nil
}

// ListReplies 按创建时间升序返回回答下的全部回复
func (s *ReplyService) ListReplies(ctx context.Context, responseID string) ([]models.ResponseReply, error) {
	const op = "Failed to fetch replies"

	if _, err := requireResponse(ctx, s.store, responseID, op); err != nil {
		return nil, err
	}

	replies, err := s.store.ListReplies(ctx, responseID)
	if err != nil {
		return nil, &PersistenceError{Op: op, Err: err}
	}
	for i := range replies {
		replies[i].ReplyHTML = string(utils.RenderMarkdown(replies[i].ReplyText))
	}
	return replies, nil
}
