package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/model"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/repository"
)

type MockRecordStore struct {
	mock.Mock
	kind entity.Kind
}

func (m *MockRecordStore) Kind() entity.Kind { return m.kind }

func (m *MockRecordStore) New() model.Record { return &model.Process{} }

func (m *MockRecordStore) List(ctx context.Context, areas []string, q repository.RecordQuery) ([]model.Record, int64, error) {
	args := m.Called(ctx, areas, q)
	return args.Get(0).([]model.Record), args.Get(1).(int64), args.Error(2)
}

func (m *MockRecordStore) Get(ctx context.Context, areas []string, id uint) (model.Record, error) {
	args := m.Called(ctx, areas, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Record), args.Error(1)
}

func (m *MockRecordStore) GetForUpdate(ctx context.Context, areas []string, id uint) (model.Record, error) {
	args := m.Called(ctx, areas, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Record), args.Error(1)
}

func (m *MockRecordStore) FindByFileURL(ctx context.Context, areas []string, fileURL string) (model.Record, error) {
	args := m.Called(ctx, areas, fileURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Record), args.Error(1)
}

func (m *MockRecordStore) Create(ctx context.Context, rec model.Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRecordStore) Update(ctx context.Context, areas []string, rec model.Record) (bool, error) {
	args := m.Called(ctx, areas, rec)
	return args.Bool(0), args.Error(1)
}

func (m *MockRecordStore) SoftDelete(ctx context.Context, areas []string, id uint, deletedBy uint, at time.Time) (bool, error) {
	args := m.Called(ctx, areas, id, deletedBy, at)
	return args.Bool(0), args.Error(1)
}

type storeMap map[entity.Kind]repository.RecordStore

func (s storeMap) For(kind entity.Kind) (repository.RecordStore, bool) {
	store, ok := s[kind]
	return store, ok
}

type MockFileVersionRepository struct {
	mock.Mock
}

func (m *MockFileVersionRepository) Create(ctx context.Context, kind entity.Kind, v *model.FileVersion) error {
	args := m.Called(ctx, kind, v)
	return args.Error(0)
}

func (m *MockFileVersionRepository) ListByRecord(ctx context.Context, kind entity.Kind, recordID uint) ([]model.FileVersion, error) {
	args := m.Called(ctx, kind, recordID)
	return args.Get(0).([]model.FileVersion), args.Error(1)
}

func (m *MockFileVersionRepository) Get(ctx context.Context, kind entity.Kind, recordID, versionID uint) (*model.FileVersion, error) {
	args := m.Called(ctx, kind, recordID, versionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FileVersion), args.Error(1)
}

type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Create(ctx context.Context, log *model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAuditLogRepository) List(ctx context.Context, areas []string, q entity.AuditQuery) ([]model.AuditLog, int64, error) {
	args := m.Called(ctx, areas, q)
	return args.Get(0).([]model.AuditLog), args.Get(1).(int64), args.Error(2)
}

type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Upload(ctx context.Context, in entity.FileUpload) (*entity.StoredFile, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.StoredFile), args.Error(1)
}

func (m *MockFileStorage) SignedURL(ctx context.Context, key string) (string, time.Time, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockFileStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockFileStorage) AreaPrefix(documentType, businessArea string) string {
	return documentType + "/" + businessArea + "/"
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, channel string, message interface{}) error {
	args := m.Called(ctx, channel, message)
	return args.Error(0)
}

func (m *MockPublisher) Close() error { return nil }

type MockDocumentLinkRepository struct {
	mock.Mock
}

func (m *MockDocumentLinkRepository) Create(ctx context.Context, link *model.DocumentLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockDocumentLinkRepository) ListByDocument(ctx context.Context, documentID uint) ([]model.DocumentLink, error) {
	args := m.Called(ctx, documentID)
	return args.Get(0).([]model.DocumentLink), args.Error(1)
}

func (m *MockDocumentLinkRepository) Get(ctx context.Context, documentID, linkID uint) (*model.DocumentLink, error) {
	args := m.Called(ctx, documentID, linkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentLink), args.Error(1)
}

func (m *MockDocumentLinkRepository) SoftDelete(ctx context.Context, linkID uint, deletedBy uint, at time.Time) (bool, error) {
	args := m.Called(ctx, linkID, deletedBy, at)
	return args.Bool(0), args.Error(1)
}

type MockBusinessAreaRepository struct {
	mock.Mock
}

func (m *MockBusinessAreaRepository) List(ctx context.Context) ([]model.BusinessArea, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.BusinessArea), args.Error(1)
}

func (m *MockBusinessAreaRepository) ListByNames(ctx context.Context, names []string) ([]model.BusinessArea, error) {
	args := m.Called(ctx, names)
	return args.Get(0).([]model.BusinessArea), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Sign(user *model.User) (string, time.Time, error) {
	args := m.Called(user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

type MockAreaResolver struct {
	mock.Mock
}

func (m *MockAreaResolver) AreasFor(ctx context.Context, userID uint, legacyArea string) []string {
	args := m.Called(ctx, userID, legacyArea)
	return args.Get(0).([]string)
}

// inlineTransactor runs fn directly and returns its error, standing in for
// a database transaction.
type inlineTransactor struct {
	calls int
}

func (t *inlineTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

func strPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }

func uintPtr(n uint) *uint { return &n }
