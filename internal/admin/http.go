// Copyright (c) 2026 Keepsake. All rights reserved.
// Author: dev@keepsake.app

// Package admin exposes operator-only aggregate views over the journal.
package admin

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/keepsakehq/keepsake/internal/platform/respond"
	"github.com/keepsakehq/keepsake/internal/platform/sec"
	"github.com/keepsakehq/keepsake/internal/users/identity"
)

// Counter is the aggregate each journal domain contributes to the stats view.
type Counter interface {
	Count(context context.Context) (int, error)
}

// CounterFunc adapts a plain count function to the [Counter] interface.
type CounterFunc func(context context.Context) (int, error)

func (f CounterFunc) Count(context context.Context) (int, error) {
	return f(context)
}

type Handler struct {
	identityStore *identity.Store
	memories      Counter
	albums        Counter
	milestones    Counter
}

func NewHandler(identityStore *identity.Store, memories, albums, milestones Counter) *Handler {
	return &Handler{
		identityStore: identityStore,
		memories:      memories,
		albums:        albums,
		milestones:    milestones,
	}
}

// Routes returns the admin router. Callers must mount it behind RequireRole(admin).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/stats", handler.stats)
	return router
}

/*
Stats reports platform-wide aggregate counts.

GET /api/v1/admin/stats

Response:
  - 200: Account counts per role plus journal resource totals
  - 403: ErrForbidden: Caller is not an admin
*/
func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	roleCounts, err := handler.identityStore.CountByRole(ctx)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	totals := map[string]int{}
	for name, counter := range map[string]Counter{
		"memories":   handler.memories,
		"albums":     handler.albums,
		"milestones": handler.milestones,
	} {
		count, err := counter.Count(ctx)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		totals[name] = count
	}

	respond.OK(writer, map[string]any{
		"accounts": map[string]int{
			"admins": roleCounts[sec.RoleAdmin],
			"users":  roleCounts[sec.RoleUser],
		},
		"resources": totals,
	})
}
