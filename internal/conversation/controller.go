package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	domain "github.com/BruksfildServices01/barber-bot/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-bot/internal/logging"
	"github.com/BruksfildServices01/barber-bot/internal/models"
	"github.com/BruksfildServices01/barber-bot/internal/notify"
	ucAppointment "github.com/BruksfildServices01/barber-bot/internal/usecase/appointment"
)

// ErrAdminNotConfigured is returned when an admin-gated action runs without
// an administrator id. Callers treat it as fatal.
var ErrAdminNotConfigured = errors.New("admin id is not configured")

// Booker commits a confirmed selection.
type Booker interface {
	Execute(ctx context.Context, in ucAppointment.ConfirmBookingInput) (*models.Appointment, error)
}

// Broadcaster delivers an ad to every known user.
type Broadcaster interface {
	Broadcast(ctx context.Context, photo notify.Photo, caption string) (notify.Report, error)
}

type Options struct {
	AdminID       int64
	AdminPanelURL string
	WindowDays    int

	// Reporter, when set, moves admin broadcasts off the update path; the
	// delivery summary is sent to the admin chat once every send settles.
	Reporter ucAppointment.TextSender
}

// Controller drives the booking conversation. It is transport neutral: the
// caller turns updates into Input and renders the returned Replies.
type Controller struct {
	repo         domain.Repository
	availability *ucAppointment.Availability
	booker       Booker
	broadcaster  Broadcaster
	store        Store
	opts         Options
	logger       *slog.Logger

	wg sync.WaitGroup
}

func NewController(
	repo domain.Repository,
	availability *ucAppointment.Availability,
	booker Booker,
	broadcaster Broadcaster,
	store Store,
	opts Options,
	logger *slog.Logger,
) *Controller {
	if opts.WindowDays <= 0 {
		opts.WindowDays = domain.DefaultWindowDays
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		repo:         repo,
		availability: availability,
		booker:       booker,
		broadcaster:  broadcaster,
		store:        store,
		opts:         opts,
		logger:       logger,
	}
}

// Wait blocks until background broadcasts have reported.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Handle processes one update. Only ErrAdminNotConfigured is returned as
// an error; everything else becomes a reply.
func (c *Controller) Handle(ctx context.Context, in Input) ([]Reply, error) {
	logger := logging.FromContext(ctx, c.logger).With("user_id", in.UserID)
	ctx = logging.ContextWithLogger(ctx, logger)

	replies, err := c.route(ctx, in)
	if errors.Is(err, ErrAdminNotConfigured) {
		return nil, err
	}
	if err != nil {
		logger.Error("conversation step failed", "error", err)
		if in.Callback != "" {
			return []Reply{alert(msgSomethingWrong)}, nil
		}
		return []Reply{text(msgSomethingWrong)}, nil
	}
	return replies, nil
}

func (c *Controller) route(ctx context.Context, in Input) ([]Reply, error) {
	if in.Callback != "" {
		return c.handleCallback(ctx, in)
	}

	txt := strings.TrimSpace(in.Text)

	// global exits
	switch txt {
	case CommandStart:
		return c.start(ctx, in)
	case BtnBack:
		return c.endFlow(ctx, in, msgMainMenu)
	case BtnBook:
		return c.startBooking(ctx, in)
	case BtnSalons:
		return c.listSalons(ctx, in)
	}

	sess, _, err := c.store.Get(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	switch sess.State {
	case StateAwaitingSalon:
		return c.chooseSalon(ctx, in, sess, txt)
	case StateAwaitingBarber:
		return c.chooseBarber(ctx, in, sess, txt)
	case StateAwaitingService:
		return c.chooseService(ctx, in, sess, txt)
	case StateAwaitingDate:
		return c.chooseDate(ctx, in, sess, txt)
	case StateAwaitingTime:
		return c.chooseTime(ctx, in, sess, txt)
	case StateAwaitingName:
		return c.enterName(ctx, in, sess, txt)
	case StateAwaitingPhone:
		return c.enterPhone(ctx, in, sess, txt)
	case StateAwaitingConfirmation:
		return []Reply{confirmPrompt(sess)}, nil
	case StateAwaitingAdPhoto:
		return c.receiveAdPhoto(ctx, in, sess)
	case StateAwaitingAdCaption:
		return c.receiveAdCaption(ctx, in, sess, txt)
	}

	switch txt {
	case BtnBroadcast:
		return c.startBroadcast(ctx, in)
	case BtnAdminPanel:
		return c.adminPanel(ctx, in)
	}

	// idle or browsing: a salon name shows its card
	if txt != "" {
		salon, err := c.repo.GetSalonByName(ctx, txt)
		if err == nil {
			return c.salonDetails(ctx, salon)
		}
		if !domain.IsValidation(err) {
			return nil, err
		}
	}

	kb, err := c.menuFor(in.UserID)
	if err != nil {
		return nil, err
	}
	return []Reply{withKeyboard(msgUseMenu, kb)}, nil
}

// --------------------------------------------------
// Admin gate
// --------------------------------------------------

func (c *Controller) isAdmin(userID int64) (bool, error) {
	if c.opts.AdminID == 0 {
		return false, ErrAdminNotConfigured
	}
	return userID == c.opts.AdminID, nil
}

func (c *Controller) menuFor(userID int64) ([][]string, error) {
	admin, err := c.isAdmin(userID)
	if err != nil {
		return nil, err
	}
	if admin {
		return adminMenu(), nil
	}
	return mainMenu(), nil
}

// --------------------------------------------------
// Menu
// --------------------------------------------------

func (c *Controller) start(ctx context.Context, in Input) ([]Reply, error) {
	if _, err := c.repo.EnsureUser(ctx, domain.UserProfile{
		TelegramID: in.UserID,
		Username:   in.Username,
	}); err != nil {
		return nil, err
	}

	if err := c.store.Delete(ctx, in.UserID); err != nil {
		return nil, err
	}

	admin, err := c.isAdmin(in.UserID)
	if err != nil {
		return nil, err
	}
	if admin {
		return []Reply{withKeyboard(fmt.Sprintf(msgHelloAdmin, in.FullName), adminMenu())}, nil
	}
	return []Reply{withKeyboard(fmt.Sprintf(msgWelcome, in.FullName), mainMenu())}, nil
}

func (c *Controller) save(ctx context.Context, in Input, sess Session) error {
	return c.store.Put(ctx, in.UserID, sess)
}
