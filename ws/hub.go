package ws

// Hub menampung koneksi layar antrian (rawat jalan dan farmasi) dan
// menyiarkan perubahan status antrian ke semua client yang terhubung.

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var HubInstance = NewHub()

func init() {
	go HubInstance.Run()
}

// QueueEvent adalah payload broadcast untuk layar antrian.
type QueueEvent struct {
	ID        string `json:"id"`
	Jenis     string `json:"jenis"` // "antrian_rawat_jalan" | "antrian_farmasi"
	IDAntrian int64  `json:"id_antrian"`
	Nomor     int    `json:"nomor_antrian"`
	Status    string `json:"status"`
}

type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client] = true
			log.Debug().Msg("ws client registered")
		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
				log.Debug().Msg("ws client unregistered")
			}
		case message := <-h.Broadcast:
			for client := range h.Clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.Clients, client)
				}
			}
		}
	}
}

// BroadcastQueueUpdate menyiarkan perubahan status antrian. Kegagalan marshal
// hanya dicatat; update layar bukan bagian dari unit kerja database.
func BroadcastQueueUpdate(jenis string, idAntrian int64, nomor int, status string) {
	event := QueueEvent{
		ID:        uuid.NewString(),
		Jenis:     jenis,
		IDAntrian: idAntrian,
		Nomor:     nomor,
		Status:    status,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("jenis", jenis).Msg("gagal marshal queue event")
		return
	}
	HubInstance.Broadcast <- payload
}
