package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"invoice-extract/extractor"
	"invoice-extract/models"
)

// ReceiptContentType is the content type receipts are stored with.
const ReceiptContentType = "image/jpeg"

// ReceiptKey returns the object key a sender's receipt image is stored under.
func ReceiptKey(sender, mediaID string) string {
	return fmt.Sprintf("imagens/%s/%s.jpg", sender, mediaID)
}

// Pipeline downloads, stores, reads and records a receipt photo.
type Pipeline struct {
	media        MediaFetcher
	objects      ObjectStore
	recognizer   Recognizer
	transactions TransactionStore
	messenger    Messenger
	strategy     extractor.Strategy
	logger       *zap.Logger
	now          func() time.Time
	newID        func() string
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithStrategy replaces the field extraction strategy.
func WithStrategy(s extractor.Strategy) PipelineOption {
	return func(p *Pipeline) { p.strategy = s }
}

// WithLogger sets the pipeline logger.
func WithLogger(l *zap.Logger) PipelineOption {
	return func(p *Pipeline) { p.logger = l.Named("pipeline") }
}

// WithClock sets the capture time source.
func WithClock(now func() time.Time) PipelineOption {
	return func(p *Pipeline) { p.now = now }
}

// WithIDGenerator sets the transaction id source.
func WithIDGenerator(newID func() string) PipelineOption {
	return func(p *Pipeline) { p.newID = newID }
}

// NewPipeline creates a Pipeline.
func NewPipeline(media MediaFetcher, objects ObjectStore, recognizer Recognizer, transactions TransactionStore, messenger Messenger, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		media:        media,
		objects:      objects,
		recognizer:   recognizer,
		transactions: transactions,
		messenger:    messenger,
		strategy:     extractor.RegexStrategy{},
		logger:       zap.NewNop(),
		now:          time.Now,
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process handles one receipt photo from a registered sender. taxID must be
// the sender's registered tax identifier.
func (p *Pipeline) Process(ctx context.Context, sender, mediaID, taxID string) Outcome {
	log := p.logger.With(zap.String("sender", sender), zap.String("media_id", mediaID))

	data, err := p.media.DownloadMedia(ctx, mediaID)
	if err != nil {
		return p.fail(ctx, sender, MsgDownloadFailed, fmt.Errorf("failed to download media: %w", err))
	}

	key := ReceiptKey(sender, mediaID)
	if err := p.objects.Upload(ctx, key, data, ReceiptContentType); err != nil {
		return p.fail(ctx, sender, MsgSaveFailed, fmt.Errorf("failed to store receipt: %w", err))
	}

	lines, err := p.recognizer.Recognize(ctx, key)
	if err != nil {
		return p.fail(ctx, sender, MsgRecognizeFailed, fmt.Errorf("failed to recognize receipt: %w", err))
	}

	fields := p.strategy.Extract(lines)
	if !fields.Complete() {
		log.Info("receipt fields incomplete", zap.Int("lines", len(lines)))
		return p.fail(ctx, sender, MsgUnreadable, ErrIncompleteFields)
	}

	reply := MsgExtracted(*fields.Total, *fields.Date)
	sendReply(ctx, p.messenger, log, sender, reply)

	tx := &models.Transaction{
		ID:          p.newID(),
		TaxID:       taxID,
		TotalValue:  fields.Total,
		Date:        fields.Date,
		IssuerTaxID: fields.TaxID,
		CapturedAt:  p.now().UTC(),
	}
	if err := p.transactions.PutTransaction(ctx, tx); err != nil {
		return fatal(reply, fmt.Errorf("failed to record transaction %s: %w", tx.ID, err))
	}

	log.Info("receipt recorded", zap.String("transaction_id", tx.ID))
	return ok(reply)
}

func (p *Pipeline) fail(ctx context.Context, sender, reply string, err error) Outcome {
	sendReply(ctx, p.messenger, p.logger, sender, reply)
	return recovered(reply, err)
}
