package handler

import (
	"net/http"

	"gochat/internal/pkg/resp"
)

// roomStatus is the payload returned by the room status endpoint.
type roomStatus struct {
	Room       string   `json:"room"`
	Members    []string `json:"members"`
	HistoryLen int      `json:"historyLen"`
}

// HandleRoomStatus returns a read-only snapshot of the room: member names in
// join order and the current size of the bounded message log.
func HandleRoomStatus(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, roomStatus{
			Room:       deps.Room.Name(),
			Members:    deps.Room.MemberNames(),
			HistoryLen: deps.Room.HistoryLen(),
		})
	}
}
