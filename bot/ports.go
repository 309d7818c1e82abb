package bot

import (
	"context"

	"invoice-extract/models"
)

// Messenger delivers a text reply to a sender.
type Messenger interface {
	SendMessage(ctx context.Context, to, text string) error
}

// MediaFetcher downloads the bytes behind a media reference.
type MediaFetcher interface {
	DownloadMedia(ctx context.Context, mediaID string) ([]byte, error)
}

// ObjectStore persists receipt images under a key.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
}

// Recognizer reads the text lines of a stored image, in reading order.
type Recognizer interface {
	Recognize(ctx context.Context, key string) ([]string, error)
}

// RegistrationStore links senders to tax identifiers.
type RegistrationStore interface {
	GetRegistration(ctx context.Context, sender string) (taxID string, found bool, err error)
	PutRegistration(ctx context.Context, sender, taxID string) error
}

// TransactionStore records extracted receipts.
type TransactionStore interface {
	PutTransaction(ctx context.Context, tx *models.Transaction) error
}

// DocumentProcessor turns a registered sender's photo into a stored transaction.
type DocumentProcessor interface {
	Process(ctx context.Context, sender, mediaID, taxID string) Outcome
}
