package livetiming

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	mtTrackStatus = "trackStatus"
	mtRaceControl = "raceControl"

	reconnectDelay = 15 * time.Second
)

type Message struct {
	MessageType string `json:"type"`
	Body        any    `json:"body,omitempty"`
}

type trackStatusBody struct {
	Time   string `json:"time"`
	Status string `json:"status"`
}

type raceControlBody struct {
	Time     string `json:"time"`
	Message  string `json:"message"`
	Category string `json:"category,omitempty"`
}

// Sink receives live events. The timing store implements it.
type Sink interface {
	SetLive(live bool)
	AppendTrackStatus(eventTime, code string)
	AppendRaceControl(eventTime, message, category string)
}

// Client feeds live track status and race control events from a timing
// websocket into the snapshot. The live flag is only up while the socket is
// connected.
type Client struct {
	url  string
	sink Sink
}

func NewClient(url string, sink Sink) *Client {
	return &Client{
		url:  url,
		sink: sink,
	}
}

// Run keeps the feed connected until the context is cancelled, redialing
// after read or connect errors.
func (c *Client) Run(ctx context.Context) {
	for {
		err := c.readFeed(ctx)
		if err != nil {
			log.Printf("live feed error: %s", err.Error())
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (c *Client) readFeed(ctx context.Context) error {
	dealer := &websocket.Dialer{
		HandshakeTimeout:  10 * time.Second,
		EnableCompression: true,
	}
	conn, _, err := dealer.DialContext(ctx, c.url, nil)
	if err != nil {
		log.Printf("Error connecting to %s: %s", c.url, err.Error())
		return err
	}
	defer conn.Close()

	log.Printf("connected to %s", c.url)
	c.sink.SetLive(true)
	defer c.sink.SetLive(false)

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		var m Message
		err = conn.ReadJSON(&m)
		if err != nil {
			log.Println("read error:", err)
			return err
		}
		c.dispatchMessage(m)
	}
}

func (c *Client) dispatchMessage(m Message) {
	jsonData, err := json.Marshal(m.Body)
	if err != nil {
		log.Printf("Error marshalling %s: %s\n", m.MessageType, err.Error())
		return
	}

	switch m.MessageType {
	case mtTrackStatus:
		body := trackStatusBody{}
		if err := json.Unmarshal(jsonData, &body); err != nil {
			log.Printf("Error unmarshalling trackStatus: %s\n", err.Error())
			return
		}
		c.sink.AppendTrackStatus(body.Time, body.Status)
	case mtRaceControl:
		body := raceControlBody{}
		if err := json.Unmarshal(jsonData, &body); err != nil {
			log.Printf("Error unmarshalling raceControl: %s\n", err.Error())
			return
		}
		c.sink.AppendRaceControl(body.Time, body.Message, body.Category)
	}
}
