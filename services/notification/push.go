package notification

import (
	"context"
	"fmt"

	"eduplatform/models"

	"github.com/olahol/melody"
)

// SessionUserKey is the melody session key holding the connected user id.
const SessionUserKey = "userID"

// PushChannel writes notifications to the recipient's open websocket
// sessions. A user with no open session is not a failure.
type PushChannel struct {
	m *melody.Melody
}

func NewPushChannel(m *melody.Melody) *PushChannel {
	return &PushChannel{m: m}
}

func (c *PushChannel) Name() string { return ChannelPush }

func (c *PushChannel) Deliver(_ context.Context, user models.User, n models.Notification) error {
	if c.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	if count, err := c.Connected(user.ID); err != nil || count == 0 {
		return err
	}
	payload, err := NewMessageBuilder(user, n).Push()
	if err != nil {
		return err
	}
	return c.m.BroadcastFilter(payload, func(s *melody.Session) bool {
		return sessionUser(s) == user.ID
	})
}

// Connected reports how many sessions userID currently holds.
func (c *PushChannel) Connected(userID uint) (int, error) {
	if c.m == nil {
		return 0, nil
	}
	sessions, err := c.m.Sessions()
	if err != nil {
		return 0, err
	}
	count := 0
	for _, s := range sessions {
		if sessionUser(s) == userID {
			count++
		}
	}
	return count, nil
}

func sessionUser(s *melody.Session) uint {
	v, ok := s.Get(SessionUserKey)
	if !ok {
		return 0
	}
	id, _ := v.(uint)
	return id
}
