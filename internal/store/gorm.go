package store

import (
	"context"
	"errors"
	"fmt"

	"delipucash/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pgUniqueViolation is the SQLSTATE postgres reports for duplicate keys.
const pgUniqueViolation = "23505"

// GormStore implements Store on top of gorm.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindResponse(ctx context.Context, id string) (*models.Response, error) {
	var response models.Response
	err := s.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&response).Error
	if err != nil {
		return nil, translate(err)
	}
	return &response, nil
}

func (s *GormStore) FindUser(ctx context.Context, id string) (*models.AppUser, error) {
	var user models.AppUser
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) HasReaction(ctx context.Context, kind models.ReactionKind, userID, responseID string) (bool, error) {
	model, err := reactionModel(kind)
	if err != nil {
		return false, err
	}
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND response_id = ?", userID, responseID).
		Limit(1).Find(model)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *GormStore) CreateReaction(ctx context.Context, kind models.ReactionKind, userID, responseID string) error {
	var row interface{}
	switch kind {
	case models.ReactionLike:
		row = &models.ResponseLike{UserID: userID, ResponseID: responseID}
	case models.ReactionDislike:
		row = &models.ResponseDislike{UserID: userID, ResponseID: responseID}
	default:
		return fmt.Errorf("store: unknown reaction kind %q", kind)
	}
	return translate(s.db.WithContext(ctx).Create(row).Error)
}

func (s *GormStore) DeleteReactions(ctx context.Context, kind models.ReactionKind, userID, responseID string) (int64, error) {
	model, err := reactionModel(kind)
	if err != nil {
		return 0, err
	}
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND response_id = ?", userID, responseID).
		Delete(model)
	return result.RowsAffected, result.Error
}

func (s *GormStore) CountReactions(ctx context.Context, kind models.ReactionKind, responseID string) (int64, error) {
	model, err := reactionModel(kind)
	if err != nil {
		return 0, err
	}
	var count int64
	err = s.db.WithContext(ctx).Model(model).Where("response_id = ?", responseID).Count(&count).Error
	return count, err
}

func (s *GormStore) CreateReply(ctx context.Context, reply *models.ResponseReply) error {
	db := s.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(reply).Error; err != nil {
		return translate(err)
	}
	var author models.UserProfile
	if err := db.Where("id = ?", reply.UserID).First(&author).Error; err != nil {
		return translate(err)
	}
	reply.User = author
	return nil
}

func (s *GormStore) ListReplies(ctx context.Context, responseID string) ([]models.ResponseReply, error) {
	var replies []models.ResponseReply
	err := s.db.WithContext(ctx).Preload("User").
		Where("response_id = ?", responseID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&replies).Error
	if err != nil {
		return nil, err
	}
	return replies, nil
}

func (s *GormStore) CountReplies(ctx context.Context, responseID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.ResponseReply{}).Where("response_id = ?", responseID).Count(&count).Error
	return count, err
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func reactionModel(kind models.ReactionKind) (interface{}, error) {
	switch kind {
	case models.ReactionLike:
		return &models.ResponseLike{}, nil
	case models.ReactionDislike:
		return &models.ResponseDislike{}, nil
	}
	return nil, fmt.Errorf("store: unknown reaction kind %q", kind)
}

// translate maps driver errors onto the store sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case IsDuplicateKey(err):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}

// IsDuplicateKey reports whether err is a unique-index violation, whether or not
// gorm's error translation is enabled.
func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
