package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/model"
	"github.com/Ferdismit7/qmstool-sub002/internal/domain/repository"
	"github.com/Ferdismit7/qmstool-sub002/internal/infrastructure/oidc"
	"github.com/Ferdismit7/qmstool-sub002/internal/usecase"
)

type mockRecords struct {
	mock.Mock
}

func (m *mockRecords) New(kind entity.Kind) (model.Record, error) {
	switch kind {
	case entity.KindDocument:
		return &model.Document{}, nil
	case entity.KindRisk:
		return &model.Risk{}, nil
	case entity.KindObjective:
		return &model.Objective{}, nil
	default:
		return &model.Process{}, nil
	}
}

func (m *mockRecords) List(ctx context.Context, p *entity.Principal, kind entity.Kind, q repository.RecordQuery) ([]model.Record, entity.PaginationMeta, error) {
	args := m.Called(ctx, p, kind, q)
	return args.Get(0).([]model.Record), args.Get(1).(entity.PaginationMeta), args.Error(2)
}

func (m *mockRecords) Get(ctx context.Context, p *entity.Principal, kind entity.Kind, id uint) (model.Record, error) {
	args := m.Called(ctx, p, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Record), args.Error(1)
}

func (m *mockRecords) Create(ctx context.Context, p *entity.Principal, kind entity.Kind, rec model.Record) (model.Record, error) {
	args := m.Called(ctx, p, kind, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Record), args.Error(1)
}

func (m *mockRecords) Update(ctx context.Context, p *entity.Principal, kind entity.Kind, id uint, rec model.Record) (model.Record, error) {
	args := m.Called(ctx, p, kind, id, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Record), args.Error(1)
}

func (m *mockRecords) Delete(ctx context.Context, p *entity.Principal, kind entity.Kind, id uint) error {
	args := m.Called(ctx, p, kind, id)
	return args.Error(0)
}

func (m *mockRecords) AttachFile(ctx context.Context, p *entity.Principal, kind entity.Kind, id uint, upload entity.FileUpload, version *string) (model.Record, error) {
	args := m.Called(ctx, p, kind, id, upload, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Record), args.Error(1)
}

func (m *mockRecords) FileDownloadURL(ctx context.Context, p *entity.Principal, kind entity.Kind, id uint) (*entity.DownloadLink, error) {
	args := m.Called(ctx, p, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DownloadLink), args.Error(1)
}

func (m *mockRecords) ListFileVersions(ctx context.Context, p *entity.Principal, kind entity.Kind, id uint) ([]model.FileVersion, error) {
	args := m.Called(ctx, p, kind, id)
	return args.Get(0).([]model.FileVersion), args.Error(1)
}

func (m *mockRecords) FileVersionDownloadURL(ctx context.Context, p *entity.Principal, kind entity.Kind, id, versionID uint) (*entity.DownloadLink, error) {
	args := m.Called(ctx, p, kind, id, versionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DownloadLink), args.Error(1)
}

func (m *mockRecords) MaxUploadBytes() int64 { return entity.MaxUploadBytes }

func (m *mockRecords) Upload(ctx context.Context, p *entity.Principal, req usecase.UploadRequest) (*entity.StoredFile, error) {
	args := m.Called(ctx, p, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.StoredFile), args.Error(1)
}

func (m *mockRecords) DownloadByKey(ctx context.Context, p *entity.Principal, key string) (*entity.DownloadLink, error) {
	args := m.Called(ctx, p, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DownloadLink), args.Error(1)
}

type mockTokens struct {
	mock.Mock
}

func (m *mockTokens) GenerateToken(ctx context.Context, email string) (*usecase.IssuedToken, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.IssuedToken), args.Error(1)
}

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) AuthorizeURL(state, nonce, codeChallenge string) string {
	args := m.Called(state, nonce, codeChallenge)
	return args.String(0)
}

func (m *mockProvider) LogoutURL(idTokenHint string) string {
	args := m.Called(idTokenHint)
	return args.String(0)
}

func (m *mockProvider) Exchange(ctx context.Context, code, codeVerifier string) (*oidc.TokenResponse, error) {
	args := m.Called(ctx, code, codeVerifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oidc.TokenResponse), args.Error(1)
}

func (m *mockProvider) VerifyIDToken(ctx context.Context, raw, nonce string) (*oidc.IDClaims, error) {
	args := m.Called(ctx, raw, nonce)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oidc.IDClaims), args.Error(1)
}
