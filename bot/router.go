package bot

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// taxIDPattern is anchored at the start only; trailing text is accepted.
var taxIDPattern = regexp.MustCompile(`^\d{3}\.?\d{3}\.?\d{3}-?\d{2}`)

var greetings = []string{"oi", "olá"}

// Router decides what to do with each inbound message based on the sender's
// registration state.
type Router struct {
	registrations RegistrationStore
	messenger     Messenger
	documents     DocumentProcessor
	locks         *senderLocks
	logger        *zap.Logger
}

// NewRouter creates a Router.
func NewRouter(registrations RegistrationStore, messenger Messenger, documents DocumentProcessor, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		registrations: registrations,
		messenger:     messenger,
		documents:     documents,
		locks:         newSenderLocks(),
		logger:        logger.Named("router"),
	}
}

// Handle processes one inbound message. Events from the same sender are
// handled one at a time.
func (r *Router) Handle(ctx context.Context, msg Message) Outcome {
	unlock := r.locks.lock(msg.Sender)
	defer unlock()

	state, err := r.resolveState(ctx, msg.Sender)
	if err != nil {
		return fatal("", err)
	}

	r.logger.Debug("routing message",
		zap.String("sender", msg.Sender),
		zap.String("message_id", msg.ID),
		zap.Stringer("kind", msg.Kind),
		zap.Stringer("state", state),
	)

	if !state.IsRegistered() {
		return r.handleUnregistered(ctx, msg)
	}
	return r.handleRegistered(ctx, msg, state)
}

func (r *Router) resolveState(ctx context.Context, sender string) (State, error) {
	taxID, found, err := r.registrations.GetRegistration(ctx, sender)
	if err != nil {
		return State{}, fmt.Errorf("failed to resolve registration state: %w", err)
	}
	if !found {
		return Unregistered(), nil
	}
	return Registered(taxID), nil
}

func (r *Router) handleUnregistered(ctx context.Context, msg Message) Outcome {
	switch msg.Kind {
	case KindText:
		return r.register(ctx, msg.Sender, msg.Body)
	case KindImage:
		r.reply(ctx, msg.Sender, MsgAskTaxIDBeforePhoto)
		return recovered(MsgAskTaxIDBeforePhoto, ErrNotRegistered)
	default:
		r.reply(ctx, msg.Sender, MsgAskTaxIDGeneric)
		return ok(MsgAskTaxIDGeneric)
	}
}

func (r *Router) register(ctx context.Context, sender, body string) Outcome {
	taxID := strings.TrimSpace(body)
	if !taxIDPattern.MatchString(taxID) {
		r.reply(ctx, sender, MsgAskTaxID)
		return recovered(MsgAskTaxID, ErrMalformedTaxID)
	}

	if err := r.registrations.PutRegistration(ctx, sender, taxID); err != nil {
		r.reply(ctx, sender, MsgRegistrationFailed)
		return recovered(MsgRegistrationFailed, fmt.Errorf("failed to register tax id: %w", err))
	}

	r.logger.Info("sender registered", zap.String("sender", sender))
	r.reply(ctx, sender, MsgRegistered)
	return ok(MsgRegistered)
}

func (r *Router) handleRegistered(ctx context.Context, msg Message, state State) Outcome {
	switch msg.Kind {
	case KindImage:
		return r.documents.Process(ctx, msg.Sender, msg.MediaID, state.TaxID())
	case KindText:
		text := strings.ToLower(strings.TrimSpace(msg.Body))
		reply := MsgFallback
		for _, g := range greetings {
			if strings.Contains(text, g) {
				reply = MsgWelcome
				break
			}
		}
		r.reply(ctx, msg.Sender, reply)
		return ok(reply)
	default:
		return ok("")
	}
}

// reply sends text to the sender. Delivery failures are logged and otherwise ignored.
func (r *Router) reply(ctx context.Context, to, text string) {
	sendReply(ctx, r.messenger, r.logger, to, text)
}

func sendReply(ctx context.Context, messenger Messenger, logger *zap.Logger, to, text string) {
	if err := messenger.SendMessage(ctx, to, text); err != nil {
		logger.Warn("failed to send reply", zap.String("to", to), zap.Error(err))
	}
}
