package web

import (
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// upgrader keeps gorilla's same-origin check
var upgrader = websocket.Upgrader{}

// streamBlogs pushes a list snapshot to the client on every page state
// change until the client goes away
func (s *Server) streamBlogs(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	states, unsubscribe := s.view.Hook().Subscribe()
	defer unsubscribe()

	// Reads only detect the client closing the socket
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case _, ok := <-states:
			if !ok {
				return nil
			}
			if err := ws.WriteJSON(s.view.Snapshot()); err != nil {
				c.Logger().Debug("blog stream closed: ", err)
				return nil
			}
		case <-gone:
			return nil
		}
	}
}
