package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/model"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/repository"
	"github.com/Ferdismit7/qmstool-sub002/internal/infrastructure/database"
)

// recordStore implements repository.RecordStore for one model type.
type recordStore[T any, P model.RecordPtr[T]] struct {
	db     *gorm.DB
	logger *zap.Logger
	kind   entity.Kind
	proto  P
}

func newRecordStore[T any, P model.RecordPtr[T]](db *gorm.DB, logger *zap.Logger) *recordStore[T, P] {
	proto := P(new(T))
	return &recordStore[T, P]{
		db:     db,
		logger: logger.With(zap.String("kind", string(proto.RecordKind()))),
		kind:   proto.RecordKind(),
		proto:  proto,
	}
}

func (s *recordStore[T, P]) Kind() entity.Kind {
	return s.kind
}

func (s *recordStore[T, P]) New() model.Record {
	return P(new(T))
}

// readScope restricts reads to areas. Linked kinds are also visible from
// any area holding a live link to them.
func (s *recordStore[T, P]) readScope(conn *gorm.DB, areas []string) *gorm.DB {
	if lv, ok := any(s.proto).(model.LinkVisible); ok && lv.VisibleThroughLinks() {
		linked := conn.Session(&gorm.Session{NewDB: true}).
			Model(&model.DocumentLink{}).
			Select("document_id").
			Where("business_area IN ? AND deleted_at IS NULL", areas)
		return conn.Where("(business_area IN ? OR id IN (?))", areas, linked)
	}
	return conn.Where("business_area IN ?", areas)
}

func (s *recordStore[T, P]) List(ctx context.Context, areas []string, q repository.RecordQuery) ([]model.Record, int64, error) {
	conn := database.Conn(ctx, s.db)
	query := s.readScope(conn.Model(s.proto), areas)

	if q.BusinessArea != "" {
		query = query.Where("business_area = ?", q.BusinessArea)
	}
	if searchable, ok := any(s.proto).(model.Searchable); ok {
		if q.Status != "" {
			query = query.Where(clause.Eq{Column: clause.Column{Name: searchable.StatusColumn()}, Value: q.Status})
		}
		if q.Search != "" {
			query = applySearch(query, searchable.SearchColumns(), q.Search)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []T
	err := query.
		Order("updated_at DESC").
		Order("id DESC").
		Offset(q.Offset()).
		Limit(q.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	records := make([]model.Record, len(rows))
	for i := range rows {
		records[i] = P(&rows[i])
	}
	return records, total, nil
}

func applySearch(query *gorm.DB, columns []string, term string) *gorm.DB {
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	exprs := make([]clause.Expression, 0, len(columns))
	for _, col := range columns {
		exprs = append(exprs, clause.Expr{
			SQL:  "LOWER(?) LIKE ?",
			Vars: []interface{}{clause.Column{Name: col}, pattern},
		})
	}
	return query.Where(clause.Or(exprs...))
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}

func (s *recordStore[T, P]) first(query *gorm.DB, id uint) (model.Record, error) {
	rec := P(new(T))
	err := query.Where("id = ?", id).First(rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (s *recordStore[T, P]) Get(ctx context.Context, areas []string, id uint) (model.Record, error) {
	conn := database.Conn(ctx, s.db)
	return s.first(s.readScope(conn, areas), id)
}

func (s *recordStore[T, P]) GetForUpdate(ctx context.Context, areas []string, id uint) (model.Record, error) {
	conn := database.Conn(ctx, s.db)
	return s.first(conn.Clauses(clause.Locking{Strength: "UPDATE"}).Where("business_area IN ?", areas), id)
}

func (s *recordStore[T, P]) FindByFileURL(ctx context.Context, areas []string, fileURL string) (model.Record, error) {
	conn := database.Conn(ctx, s.db)
	rec := P(new(T))
	err := s.readScope(conn, areas).Where("file_url = ?", fileURL).First(rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (s *recordStore[T, P]) Create(ctx context.Context, rec model.Record) error {
	return database.Conn(ctx, s.db).Create(rec).Error
}

func (s *recordStore[T, P]) Update(ctx context.Context, areas []string, rec model.Record) (bool, error) {
	result := database.Conn(ctx, s.db).
		Model(rec).
		Where("business_area IN ?", areas).
		Select("*").
		Omit("id", "business_area", "created_by", "created_at", "deleted_at", "deleted_by").
		Updates(rec)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *recordStore[T, P]) SoftDelete(ctx context.Context, areas []string, id uint, deletedBy uint, at time.Time) (bool, error) {
	result := database.Conn(ctx, s.db).
		Model(P(new(T))).
		Where("id = ? AND business_area IN ?", id, areas).
		Updates(map[string]interface{}{
			"deleted_at": at,
			"deleted_by": deletedBy,
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		s.logger.Debug("Soft delete matched no live row", zap.Uint("id", id))
	}
	return result.RowsAffected > 0, nil
}

// RecordStores maps each kind to its store.
type RecordStores map[entity.Kind]repository.RecordStore

func (r RecordStores) For(kind entity.Kind) (repository.RecordStore, bool) {
	s, ok := r[kind]
	return s, ok
}

// NewRecordStores builds a store for every kind.
func NewRecordStores(db *gorm.DB, logger *zap.Logger) RecordStores {
	return RecordStores{
		entity.KindProcess:             newRecordStore[model.Process](db, logger),
		entity.KindDocument:            newRecordStore[model.Document](db, logger),
		entity.KindObjective:           newRecordStore[model.Objective](db, logger),
		entity.KindRisk:                newRecordStore[model.Risk](db, logger),
		entity.KindNonConformity:       newRecordStore[model.NonConformity](db, logger),
		entity.KindRecordKeepingSystem: newRecordStore[model.RecordKeepingSystem](db, logger),
		entity.KindImprovement:         newRecordStore[model.Improvement](db, logger),
		entity.KindEvaluation:          newRecordStore[model.Evaluation](db, logger),
		entity.KindFeedbackSystem:      newRecordStore[model.FeedbackSystem](db, logger),
		entity.KindTrainingSession:     newRecordStore[model.TrainingSession](db, logger),
		entity.KindAssessment:          newRecordStore[model.Assessment](db, logger),
	}
}
