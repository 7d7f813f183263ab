package service

import (
	"github.com/hooktrail/hooktrail/db"
	"github.com/hooktrail/hooktrail/deliverer"
	"go.uber.org/zap"
)

type Service struct {
	log       *zap.SugaredLogger
	db        *db.DB
	deliverer deliverer.Deliverer
}

type Options struct {
	Log       *zap.SugaredLogger
	DB        *db.DB
	Deliverer deliverer.Deliverer
}

func NewService(opts Options) *Service {
	log := opts.Log
	if log == nil {
		log = zap.S()
	}
	return &Service{
		log:       log,
		db:        opts.DB,
		deliverer: opts.Deliverer,
	}
}
