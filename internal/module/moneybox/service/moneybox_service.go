package service

import (
	"go.uber.org/zap"

	"moneyhive/internal/module/moneybox/repository"
	namehistoryservice "moneyhive/internal/module/namehistory/service"
	translogservice "moneyhive/internal/module/translog/service"
	"moneyhive/internal/store"
)

// moneyboxService holds the collaborators every operation struct
// shares, the same split-by-operation-over-a-shared-core shape as the
// teacher's goalService.
type moneyboxService struct {
	store       *store.Store
	repo        repository.Repository
	nameHistory namehistoryservice.Service
	transLog    translogservice.Service
	logger      *zap.Logger
}

// compositeService implements Service by embedding one struct per
// operation, all sharing the same moneyboxService core.
type compositeService struct {
	*creator
	*reader
	*updater
	*deleter
	*mover
	*reorderer
}

// New wires the moneybox service from its collaborators.
func New(st *store.Store, repo repository.Repository, nameHistory namehistoryservice.Service, transLog translogservice.Service, logger *zap.Logger) Service {
	core := &moneyboxService{store: st, repo: repo, nameHistory: nameHistory, transLog: transLog, logger: logger}
	return &compositeService{
		creator:   &creator{core},
		reader:    &reader{core},
		updater:   &updater{core},
		deleter:   &deleter{core},
		mover:     &mover{core},
		reorderer: &reorderer{core},
	}
}
