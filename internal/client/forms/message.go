package forms

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/dmitrijs2005/focusgroup/internal/client/querycache"
	"github.com/dmitrijs2005/focusgroup/internal/client/services"
	"github.com/dmitrijs2005/focusgroup/internal/common"
)

// MessageComposer is reusable: a successful send clears it for the next
// message.
type MessageComposer struct {
	api    API
	cache  *querycache.Cache
	notify services.Notifier

	mu          sync.Mutex
	RecipientID string
	Subject     string
	Content     string
	Type        api.MessageType
	Priority    api.Priority
	sending     bool
}

func NewMessageComposer(a API, cache *querycache.Cache, n services.Notifier) *MessageComposer {
	c := &MessageComposer{api: a, cache: cache, notify: notifierOrNop(n)}
	c.reset()
	return c
}

func (c *MessageComposer) reset() {
	c.RecipientID = ""
	c.Subject = ""
	c.Content = ""
	c.Type = api.MessageGeneral
	c.Priority = api.PriorityNormal
}

func (c *MessageComposer) Sending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sending
}

func (c *MessageComposer) Send(ctx context.Context) (*api.Message, error) {
	c.mu.Lock()
	if c.sending {
		c.mu.Unlock()
		return nil, services.ErrBusy
	}
	if err := RequireFields(
		Field{"recipient", c.RecipientID},
		Field{"subject", c.Subject},
		Field{"content", c.Content},
	); err != nil {
		c.mu.Unlock()
		return nil, fail(c.notify, err)
	}
	recipient, err := strconv.ParseInt(c.RecipientID, 10, 64)
	if err != nil || recipient <= 0 {
		c.mu.Unlock()
		return nil, fail(c.notify, fmt.Errorf("%w: recipient must be a user id", common.ErrorValidation))
	}
	req := api.SendMessageRequest{
		RecipientID: recipient,
		Subject:     c.Subject,
		Content:     c.Content,
		MessageType: c.Type,
		Priority:    c.Priority,
	}
	c.sending = true
	c.mu.Unlock()

	msg, err := c.api.SendMessage(ctx, req)

	c.mu.Lock()
	c.sending = false
	if err == nil {
		c.reset()
	}
	c.mu.Unlock()

	if err != nil {
		return nil, fail(c.notify, err)
	}
	c.cache.Invalidate(common.QueryKeyMessages)
	c.notify.Success("Message Sent", "Your message has been sent successfully")
	return msg, nil
}
