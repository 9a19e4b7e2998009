package server

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	v1 "github.com/gosuda/kanban/internal/api/v1"
	"github.com/gosuda/kanban/internal/api/ws"
)

func registerAPIRoutes(api huma.API, boards v1.BoardStore, hub *ws.Hub) {
	v1.RegisterBoardRoutes(api, boards, hub)
	v1.RegisterColumnRoutes(api, boards, hub)
	v1.RegisterTaskRoutes(api, boards, hub)
	v1.RegisterMoveRoutes(api, boards, hub)
}

func registerWSRoutes(r chi.Router, hub *ws.Hub) {
	r.Get("/boards", hub.ServeBoards)
	r.Get("/boards/{boardID}", hub.ServeBoard)
}
