package podcast

import (
	"context"
	"errors"

	"gorm.io/gorm"

	platformerrors "wavecast-server-go/internal/platform/errors"
	"wavecast-server-go/internal/platform/storage"
)

// Store is the persistence layer for podcast records. Permission checks
// happen before the store is touched; the store only enforces existence and
// transactional invariants.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// List returns podcasts page by page. With a search space the caller has
// already passed the gate for that space; without one the query joins the
// actor's memberships so only spaces the user belongs to are visible.
// Pagination is validated before any query executes.
func (s *Store) List(ctx context.Context, userID uint, searchSpaceID *uint, skip, limit int) ([]storage.Podcast, error) {
	if skip < 0 || limit < 1 {
		return nil, platformerrors.New(platformerrors.KindValidation, "podcast.list",
			"Invalid pagination parameters")
	}

	var podcasts []storage.Podcast
	query := s.db.WithContext(ctx).Model(&storage.Podcast{})
	if searchSpaceID != nil {
		query = query.Where("podcasts.search_space_id = ?", *searchSpaceID)
	} else {
		query = query.
			Joins("JOIN search_spaces ON search_spaces.id = podcasts.search_space_id").
			Joins("JOIN search_space_memberships ON search_space_memberships.search_space_id = search_spaces.id").
			Where("search_space_memberships.user_id = ?", userID)
	}

	if err := query.Offset(skip).Limit(limit).Find(&podcasts).Error; err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindStorage, "podcast.list",
			"Database error occurred while fetching podcasts", err)
	}
	return podcasts, nil
}

// Get fetches one podcast by id. Missing records are a not-found, reported
// before any permission decision can be made.
func (s *Store) Get(ctx context.Context, id uint) (*storage.Podcast, error) {
	var p storage.Podcast
	err := s.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.New(platformerrors.KindNotFound, "podcast.get",
				"Podcast not found")
		}
		return nil, platformerrors.Wrap(platformerrors.KindStorage, "podcast.get",
			"Database error occurred while fetching podcast", err)
	}
	return &p, nil
}

// Create inserts the record produced by the generation worker.
func (s *Store) Create(ctx context.Context, p *storage.Podcast) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return platformerrors.Wrap(platformerrors.KindStorage, "podcast.create",
			"Database error occurred while saving podcast", err)
	}
	return nil
}

// Delete removes a record transactionally: a storage fault rolls the
// transaction back and surfaces as a storage error, leaving the row intact.
func (s *Store) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&storage.Podcast{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return platformerrors.New(platformerrors.KindNotFound, "podcast.delete",
				"Podcast not found")
		}
		return platformerrors.Wrap(platformerrors.KindStorage, "podcast.delete",
			"Database error occurred while deleting podcast", err)
	}
	return nil
}
