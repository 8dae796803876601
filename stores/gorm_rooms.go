package stores

import (
	"context"
	"errors"
	"fmt"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-rooms/models"
)

const insertBatchSize = 100

// GormRoomStore is the MySQL-backed RoomStore.
type GormRoomStore struct {
	DB *gorm.DB
}

func NewGormRoomStore(db *gorm.DB) *GormRoomStore {
	return &GormRoomStore{DB: db}
}

func (s *GormRoomStore) Find(ctx context.Context, q RoomQuery) ([]models.Room, error) {
	tx := applyRoomFilter(s.DB.WithContext(ctx).Model(&models.Room{}), q.Filter)

	switch {
	case len(q.Columns) > 0:
		tx = tx.Select(q.Columns)
	case len(q.Omit) > 0:
		tx = tx.Omit(q.Omit...)
	}
	for _, key := range q.Sort {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: key.Column}, Desc: key.Desc})
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	for _, rel := range q.Expand {
		tx = tx.Preload(rel)
	}

	var rooms []models.Room
	if err := tx.Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("find rooms: %w", err)
	}
	return rooms, nil
}

func (s *GormRoomStore) Count(ctx context.Context, f RoomFilter) (int64, error) {
	var total int64
	if err := applyRoomFilter(s.DB.WithContext(ctx).Model(&models.Room{}), f).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count rooms: %w", err)
	}
	return total, nil
}

func (s *GormRoomStore) FindByID(ctx context.Context, id uint, expand ...string) (*models.Room, error) {
	tx := s.DB.WithContext(ctx)
	for _, rel := range expand {
		tx = tx.Preload(rel)
	}
	var room models.Room
	if err := tx.First(&room, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &room, nil
}

func (s *GormRoomStore) Create(ctx context.Context, room *models.Room) error {
	return translateError(s.DB.WithContext(ctx).Omit(clause.Associations).Create(room).Error)
}

func (s *GormRoomStore) Save(ctx context.Context, room *models.Room) error {
	return translateError(s.DB.WithContext(ctx).Omit(clause.Associations).Save(room).Error)
}

func (s *GormRoomStore) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Room{}, id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormRoomStore) InsertMany(ctx context.Context, rooms []models.Room) error {
	if len(rooms) == 0 {
		return nil
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).CreateInBatches(&rooms, insertBatchSize).Error
	})
	return translateError(err)
}

func applyRoomFilter(tx *gorm.DB, f RoomFilter) *gorm.DB {
	if f.MatchNone {
		return tx.Where("1 = 0")
	}
	for _, c := range f.Conditions {
		col := clause.Column{Name: c.Column}
		switch c.Op {
		case OpEq:
			tx = tx.Where(clause.Eq{Column: col, Value: c.Value})
		case OpContains:
			tx = tx.Where("JSON_CONTAINS(?, JSON_QUOTE(?))", col, c.Value)
		case OpNotIn:
			ids, _ := c.Value.([]uint)
			// NOT IN () is not valid SQL; an empty exclusion set excludes nothing.
			if len(ids) == 0 {
				continue
			}
			values := make([]any, len(ids))
			for i, id := range ids {
				values[i] = id
			}
			tx = tx.Where(clause.Not(clause.IN{Column: col, Values: values}))
		}
	}
	return tx
}

// translateError maps driver errors onto the package sentinels, keeping the
// original error in the chain.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	}
	var merr *mysql.MySQLError
	if errors.As(err, &merr) && merr.Number == 1062 {
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	}
	return err
}
