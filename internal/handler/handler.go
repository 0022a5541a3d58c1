package handler

import (
	"go.uber.org/zap"

	"meeting-scheduler-api/internal/store"
)

type Handler struct {
	store *store.Store
	log   *zap.Logger
}

func New(st *store.Store, log *zap.Logger) *Handler {
	return &Handler{store: st, log: log}
}
