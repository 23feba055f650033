package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"mdnotes/mdnotes/controllers"
	"mdnotes/mdnotes/types"
	"mdnotes/mdnotes/utils/logging"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// generic wrapper to reduce boilerplate
func handleJSON(handler func(r *http.Request) (any, int)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, status := handler(r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(res)
	}
}

func failureStatus() types.AutosaveStatus {
	return types.AutosaveStatus{Status: types.AutosaveFailure, Time: time.Now().Format("15:04:05")}
}

func autosaveStatus(ctx context.Context, ctrl *controllers.NotesController, req types.NoteForm) (types.AutosaveStatus, int) {
	status, err := ctrl.Autosave(ctx, req.ID, req.Title, req.Content)
	if err != nil {
		return status, http.StatusInternalServerError
	}
	return status, http.StatusOK
}

func AutosaveRoutes(ctrl *controllers.NotesController) chi.Router {
	r := chi.NewRouter()

	r.Post("/", handleJSON(func(r *http.Request) (any, int) {
		var req types.NoteForm
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return failureStatus(), http.StatusBadRequest
		}
		return autosaveStatus(r.Context(), ctrl, req)
	}))

	// One autosave per text frame; every frame gets a status reply.
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			logging.ErrorLogger.Error("websocket accept error", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusInternalError, "internal error")

		ctx := r.Context()
		for {
			typ, data, err := conn.Read(ctx)
			if err != nil {
				if websocket.CloseStatus(err) == websocket.StatusNormalClosure || errors.Is(err, context.Canceled) {
					conn.Close(websocket.StatusNormalClosure, "")
					return
				}
				logging.AppLogger.Info("autosave websocket closed", zap.Error(err))
				return
			}
			reply := failureStatus()
			var req types.NoteForm
			if typ == websocket.MessageText && json.Unmarshal(data, &req) == nil {
				reply, _ = autosaveStatus(ctx, ctrl, req)
			}
			if err := wsjson.Write(ctx, conn, reply); err != nil {
				logging.ErrorLogger.Error("websocket write error", zap.Error(err))
				return
			}
		}
	})

	return r
}
