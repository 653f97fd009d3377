package notification

import (
	"context"

	"eduplatform/models"
)

const (
	ChannelInApp = "in_app"
	ChannelEmail = "email"
	ChannelPush  = "push"
)

// Channel delivers an already persisted notification to its recipient.
type Channel interface {
	Name() string
	Deliver(ctx context.Context, user models.User, n models.Notification) error
}

// ChannelResult is the outcome of one delivery attempt.
type ChannelResult struct {
	Channel string `json:"channel"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// SelectChannels returns the channels to attempt for a notification of kind t.
// In-app is always selected. Email needs both the email toggle and the
// kind toggle. Push only looks at the push toggle.
func SelectChannels(p models.NotificationPreference, t models.NotificationType) []string {
	selected := []string{ChannelInApp}
	if p.EmailNotifications && p.AllowsType(t) {
		selected = append(selected, ChannelEmail)
	}
	if p.PushNotifications {
		selected = append(selected, ChannelPush)
	}
	return selected
}

// Dispatcher fans a notification out to the selected channels.
type Dispatcher struct {
	channels map[string]Channel
}

func NewDispatcher(channels ...Channel) *Dispatcher {
	d := &Dispatcher{channels: make(map[string]Channel, len(channels)+1)}
	d.channels[ChannelInApp] = InApp{}
	for _, ch := range channels {
		if ch != nil {
			d.channels[ch.Name()] = ch
		}
	}
	return d
}

// Deliver attempts every selected channel in order and never fails as a
// whole. Channels that are not registered are skipped.
func (d *Dispatcher) Deliver(ctx context.Context, p models.NotificationPreference, user models.User, n models.Notification) []ChannelResult {
	var results []ChannelResult
	for _, name := range SelectChannels(p, n.Type) {
		ch, ok := d.channels[name]
		if !ok {
			continue
		}
		res := ChannelResult{Channel: name, Success: true}
		if err := ch.Deliver(ctx, user, n); err != nil {
			res.Success = false
			res.Error = err.Error()
		}
		results = append(results, res)
	}
	return results
}

// InApp is the persisted row itself, so delivery always succeeds.
type InApp struct{}

func (InApp) Name() string { return ChannelInApp }

func (InApp) Deliver(context.Context, models.User, models.Notification) error { return nil }
