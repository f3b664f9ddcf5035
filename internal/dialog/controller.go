// Package dialog implements the menu state machine that turns button presses
// into views.
package dialog

import (
	"context"
	"errors"
	"fmt"

	"desyncbot/internal/catalog"
	"desyncbot/internal/domain"
	"desyncbot/internal/i18n"
	"desyncbot/internal/watchdog"

	"go.uber.org/zap"
)

// CommandStart opens the language choice
const CommandStart = "start"

// SessionStore keeps the per-user language and product selection
type SessionStore interface {
	Language(userID int64) domain.Language
	SetLanguage(userID int64, lang domain.Language) error
	SelectedProduct(userID int64) (string, error)
	SelectProduct(userID int64, productID string) error
}

// Timers schedules the per-user inactivity timeout
type Timers interface {
	Reset(p watchdog.Payload) watchdog.Ticket
	Claim(t watchdog.Ticket) (watchdog.Payload, bool)
	OnFire(f watchdog.FireFunc)
}

// Renderer delivers views to a chat
type Renderer interface {
	Send(ctx context.Context, chatID int64, v View) error
	Replace(ctx context.Context, chatID int64, messageID int, v View) error
}

// Event is an inbound command or button press
type Event struct {
	UserID int64
	ChatID int64
	// MessageID is the message carrying the pressed button, 0 for commands
	MessageID int
	Command   string
	Token     string
}

// Controller is the dialog state machine. Events of one user are handled
// one at a time; different users proceed concurrently.
type Controller struct {
	sessions SessionStore
	timers   Timers
	catalog  *catalog.Catalog
	screens  screens
	renderer Renderer
	logger   *zap.Logger
	locks    *userLocks
}

// NewController creates a controller and subscribes it to timer expirations
func NewController(
	sessions SessionStore,
	timers Timers,
	cat *catalog.Catalog,
	texts *i18n.Table,
	renderer Renderer,
	logger *zap.Logger,
) (*Controller, error) {
	if err := texts.Require(RequiredKeys...); err != nil {
		return nil, err
	}

	c := &Controller{
		sessions: sessions,
		timers:   timers,
		catalog:  cat,
		screens:  screens{catalog: cat, texts: texts},
		renderer: renderer,
		logger:   logger,
		locks:    newUserLocks(),
	}
	timers.OnFire(func(t watchdog.Ticket) {
		c.HandleTimeout(context.Background(), t)
	})
	return c, nil
}

// HandleCommand processes a slash command
func (c *Controller) HandleCommand(ctx context.Context, ev Event) error {
	unlock := c.locks.lock(ev.UserID)
	defer unlock()

	var views []View
	switch ev.Command {
	case CommandStart:
		views = []View{c.screens.languageChoice(c.sessions.Language(ev.UserID))}
	default:
		c.logger.Debug("Ignoring unknown command",
			zap.Int64("user_id", ev.UserID),
			zap.String("command", ev.Command),
		)
	}

	err := c.render(ctx, ev, views)
	c.touch(ev)
	return err
}

// HandleButton processes a callback token
func (c *Controller) HandleButton(ctx context.Context, ev Event) error {
	unlock := c.locks.lock(ev.UserID)
	defer unlock()

	intent := domain.ParseIntent(ev.Token)
	c.logger.Debug("Dialog transition",
		zap.Int64("user_id", ev.UserID),
		zap.String("intent", intent.Kind.String()),
		zap.String("value", intent.Value),
	)

	err := c.render(ctx, ev, c.transition(ev.UserID, intent))
	c.touch(ev)
	return err
}

// HandleTimeout shows the main menu to a user whose timer expired, unless a
// newer event superseded the timer.
func (c *Controller) HandleTimeout(ctx context.Context, t watchdog.Ticket) {
	unlock := c.locks.lock(t.UserID)
	defer unlock()

	p, ok := c.timers.Claim(t)
	if !ok {
		return
	}

	for _, v := range []View{c.screens.timeoutNotice(p.Language), c.screens.mainMenu(p.Language)} {
		if err := c.renderer.Send(ctx, p.ChatID, v); err != nil {
			c.logger.Warn("Failed to render timeout view",
				zap.Int64("user_id", p.UserID),
				zap.Int64("chat_id", p.ChatID),
				zap.Error(err),
			)
			return
		}
	}
}

func (c *Controller) transition(userID int64, intent domain.Intent) []View {
	lang := c.sessions.Language(userID)

	switch intent.Kind {
	case domain.IntentChooseLanguage:
		chosen := domain.Language(intent.Value)
		if err := c.sessions.SetLanguage(userID, chosen); err != nil {
			c.logger.Warn("Failed to set language",
				zap.Int64("user_id", userID),
				zap.String("language", intent.Value),
				zap.Error(err),
			)
			return []View{c.screens.languageChoice(lang)}
		}
		return []View{c.screens.languageConfirmed(chosen), c.screens.mainMenu(chosen)}

	case domain.IntentProductMenu:
		return []View{c.screens.productList(lang)}

	case domain.IntentChooseProduct:
		product, err := c.catalog.Product(intent.Value)
		if err != nil {
			return c.missingSelection(userID, lang, err)
		}
		if err := c.sessions.SelectProduct(userID, product.ID); err != nil {
			return c.missingSelection(userID, lang, err)
		}
		return []View{c.screens.durationList(lang, product)}

	case domain.IntentChooseDuration:
		product, err := c.selectedProduct(userID)
		if err != nil {
			return c.missingSelection(userID, lang, err)
		}
		link, ok := product.PaymentLink(intent.Value)
		if !ok || !product.Offers(intent.Value) {
			c.logger.Info("Duration not offered for product",
				zap.Int64("user_id", userID),
				zap.String("product", product.ID),
				zap.String("duration", intent.Value),
			)
			return []View{c.screens.durationList(lang, product)}
		}
		return []View{c.screens.subscriptionResult(lang, product, intent.Value, link)}

	case domain.IntentGuide:
		product, err := c.selectedProduct(userID)
		if err != nil {
			return c.missingSelection(userID, lang, err)
		}
		return []View{c.screens.guide(lang, product)}

	case domain.IntentLoader:
		return []View{c.screens.loaderInfo(lang)}

	case domain.IntentFAQ:
		return []View{c.screens.faqList(lang)}

	case domain.IntentFAQTopic:
		url, err := c.catalog.TopicURL(intent.Value)
		if errors.Is(err, domain.ErrUnknownTopic) {
			c.logger.Info("Unknown faq topic",
				zap.Int64("user_id", userID),
				zap.String("topic", intent.Value),
			)
			return []View{c.screens.faqNotFound(lang)}
		}
		return []View{c.screens.faqLink(lang, url)}

	case domain.IntentSupport:
		return []View{c.screens.support(lang)}

	case domain.IntentChangeLanguage:
		return []View{c.screens.languageChoice(lang)}

	case domain.IntentBack:
		return []View{c.screens.mainMenu(lang)}
	}

	c.logger.Info("Ignoring unknown callback", zap.Int64("user_id", userID))
	return nil
}

func (c *Controller) selectedProduct(userID int64) (domain.Product, error) {
	id, err := c.sessions.SelectedProduct(userID)
	if err != nil {
		return domain.Product{}, err
	}
	product, err := c.catalog.Product(id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: %v", domain.ErrMissingSelection, err)
	}
	return product, nil
}

func (c *Controller) missingSelection(userID int64, lang domain.Language, err error) []View {
	c.logger.Info("Product selection unavailable, offering product list",
		zap.Int64("user_id", userID),
		zap.Error(err),
	)
	return []View{c.screens.productFallback(lang)}
}

func (c *Controller) render(ctx context.Context, ev Event, views []View) error {
	var errs []error
	for _, v := range views {
		var err error
		if v.Replace && ev.MessageID != 0 {
			err = c.renderer.Replace(ctx, ev.ChatID, ev.MessageID, v)
		} else {
			err = c.renderer.Send(ctx, ev.ChatID, v)
		}
		if err != nil {
			c.logger.Warn("Failed to render view",
				zap.Int64("user_id", ev.UserID),
				zap.Int64("chat_id", ev.ChatID),
				zap.Error(err),
			)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// touch restarts the inactivity timer with the language the user has now
func (c *Controller) touch(ev Event) {
	c.timers.Reset(watchdog.Payload{
		UserID:   ev.UserID,
		ChatID:   ev.ChatID,
		Language: c.sessions.Language(ev.UserID),
	})
}
