package bookings

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var (
	subscribers = make(map[string][]*websocket.Conn)
	subMu       sync.Mutex
)

// HandleWS subscribes the client to live status updates for one entity,
// keyed as entityType_entityId.
func HandleWS(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	key := ps.ByName("entitytype") + "_" + ps.ByName("entityid")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "WebSocket upgrade failed", http.StatusBadRequest)
		return
	}

	subMu.Lock()
	subscribers[key] = append(subscribers[key], conn)
	subMu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	subMu.Lock()
	conns := subscribers[key]
	newList := make([]*websocket.Conn, 0, len(conns))
	for _, c := range conns {
		if c != conn {
			newList = append(newList, c)
		}
	}
	subscribers[key] = newList
	subMu.Unlock()

	conn.Close()
}

// Broadcast pushes a payload to every subscriber of the entity. Dead
// connections are dropped from the list.
func Broadcast(entityType, entityID string, payload []byte) {
	if payload == nil {
		return
	}
	key := entityType + "_" + entityID

	subMu.Lock()
	defer subMu.Unlock()

	conns := subscribers[key]
	newList := conns[:0]
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err == nil {
			newList = append(newList, conn)
		} else {
			conn.Close()
		}
	}
	subscribers[key] = newList
}
