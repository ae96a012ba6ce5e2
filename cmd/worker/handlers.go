package main

import (
	"github.com/hibiken/asynq"

	itemJob "wishlist-backend/internal/domains/item/job"
	reactionJob "wishlist-backend/internal/domains/reaction/job"
	storageJob "wishlist-backend/internal/infrastructure/storage/job"
	"wishlist-backend/internal/shared"
	"wishlist-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	processItemImage *itemJob.ProcessImageHandler
	deleteObjects    *storageJob.DeleteObjectsHandler
	recountReactions *reactionJob.RecountHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		processItemImage: itemJob.NewProcessImageHandler(c.ItemService, c.Metrics),
		deleteObjects:    storageJob.NewDeleteObjectsHandler(c.Storage, c.Metrics),
		recountReactions: reactionJob.NewRecountHandler(c.ReactionService, c.Metrics),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Images
	mux.HandleFunc(shared.TypeProcessItemImage, h.processItemImage.ProcessTask)

	// Storage cleanup
	mux.HandleFunc(shared.TypeDeleteObjects, h.deleteObjects.ProcessTask)

	// Maintenance
	mux.HandleFunc(shared.TypeRecountReactions, h.recountReactions.ProcessTask)
}
