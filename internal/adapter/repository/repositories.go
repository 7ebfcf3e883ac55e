package repository

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/repository"
	"github.com/Ferdismit7/qmstool-sub002/internal/infrastructure/database"
)

// Repositories groups every persistence port.
type Repositories struct {
	Records       RecordStores
	FileVersions  repository.FileVersionRepository
	AuditLogs     repository.AuditLogRepository
	Users         repository.UserRepository
	Memberships   repository.MembershipRepository
	BusinessAreas repository.BusinessAreaRepository
	DocumentLinks repository.DocumentLinkRepository
	Transactor    repository.Transactor
}

func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Records:       NewRecordStores(db, logger),
		FileVersions:  NewFileVersionRepository(db),
		AuditLogs:     NewAuditLogRepository(db),
		Users:         NewUserRepository(db),
		Memberships:   NewMembershipRepository(db),
		BusinessAreas: NewBusinessAreaRepository(db),
		DocumentLinks: NewDocumentLinkRepository(db),
		Transactor:    database.NewTransactor(db),
	}
}
