package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"invoice-extract/extractor"
	"invoice-extract/models"
)

const (
	mediaID = "media-1"
	taxID   = "123.456.789-00"
	key     = "imagens/5511999999999/media-1.jpg"
)

var (
	imageBytes   = []byte{0xff, 0xd8, 0xff}
	receiptLines = []string{"SUPERMERCADO", "CNPJ 12.345.678/0001-99", "10/05/2024 14:32", "VALOR TOTAL R$ 25,90"}
	capturedAt   = time.Date(2024, 5, 10, 17, 32, 0, 0, time.FixedZone("BRT", -3*60*60))
)

type pipelineFixture struct {
	media        *MockMediaFetcher
	objects      *MockObjectStore
	recognizer   *MockRecognizer
	transactions *MockTransactionStore
	messenger    *MockMessenger
	pipeline     *Pipeline
	calls        []string
}

func newPipelineFixture(t *testing.T, opts ...PipelineOption) *pipelineFixture {
	t.Helper()
	f := &pipelineFixture{
		media:        new(MockMediaFetcher),
		objects:      new(MockObjectStore),
		recognizer:   new(MockRecognizer),
		transactions: new(MockTransactionStore),
		messenger:    new(MockMessenger),
	}
	opts = append([]PipelineOption{
		WithLogger(zaptest.NewLogger(t)),
		WithClock(func() time.Time { return capturedAt }),
		WithIDGenerator(func() string { return "tx-fixed" }),
	}, opts...)
	f.pipeline = NewPipeline(f.media, f.objects, f.recognizer, f.transactions, f.messenger, opts...)
	t.Cleanup(func() {
		f.media.AssertExpectations(t)
		f.objects.AssertExpectations(t)
		f.recognizer.AssertExpectations(t)
		f.transactions.AssertExpectations(t)
		f.messenger.AssertExpectations(t)
	})
	return f
}

func (f *pipelineFixture) record(name string) func(mock.Arguments) {
	return func(mock.Arguments) { f.calls = append(f.calls, name) }
}

func (f *pipelineFixture) downloads() {
	f.media.On("DownloadMedia", mock.Anything, mediaID).Return(imageBytes, nil).Once()
}

func (f *pipelineFixture) uploads() {
	f.objects.On("Upload", mock.Anything, key, imageBytes, "image/jpeg").Return(nil).Once()
}

func (f *pipelineFixture) recognizes(lines []string) {
	f.recognizer.On("Recognize", mock.Anything, key).Return(lines, nil).Once()
}

func (f *pipelineFixture) expectReply(text string) {
	f.messenger.On("SendMessage", mock.Anything, sender, text).Return(nil).Run(f.record("reply")).Once()
}

func (f *pipelineFixture) assertNoTransaction(t *testing.T) {
	f.transactions.AssertNotCalled(t, "PutTransaction", mock.Anything, mock.Anything)
}

func TestReceiptKey(t *testing.T) {
	assert.Equal(t, "imagens/5511999999999/wamid.ABC.jpg", ReceiptKey("5511999999999", "wamid.ABC"))
}

func TestPipeline_Success(t *testing.T) {
	f := newPipelineFixture(t)
	f.downloads()
	f.uploads()
	f.recognizes(receiptLines)
	f.expectReply(MsgExtracted("25.90", "10/05/2024"))

	var stored *models.Transaction
	f.transactions.On("PutTransaction", mock.Anything, mock.AnythingOfType("*models.Transaction")).
		Return(nil).
		Run(func(args mock.Arguments) {
			f.calls = append(f.calls, "persist")
			stored = args.Get(1).(*models.Transaction)
		}).
		Once()

	out := f.pipeline.Process(context.Background(), sender, mediaID, taxID)

	assert.Equal(t, OutcomeOK, out.Kind)
	assert.NoError(t, out.Err)
	assert.Equal(t, "Ótimo! Encontrei uma nota de R$25.90 de 10/05/2024. Vou registrar seus gastos.", out.Reply)
	assert.Equal(t, []string{"reply", "persist"}, f.calls)

	require.NotNil(t, stored)
	assert.Equal(t, "tx-fixed", stored.ID)
	assert.Equal(t, taxID, stored.TaxID)
	assert.Equal(t, "25.90", *stored.TotalValue)
	assert.Equal(t, "10/05/2024", *stored.Date)
	assert.Equal(t, "12.345.678/0001-99", *stored.IssuerTaxID)
	assert.Equal(t, time.UTC, stored.CapturedAt.Location())
	assert.True(t, stored.CapturedAt.Equal(capturedAt))
}

func TestPipeline_MissingIssuerDoesNotBlock(t *testing.T) {
	f := newPipelineFixture(t)
	f.downloads()
	f.uploads()
	f.recognizes([]string{"01/02/2024", "TOTAL 7,50"})
	f.expectReply(MsgExtracted("7.50", "01/02/2024"))
	f.transactions.On("PutTransaction", mock.Anything, mock.MatchedBy(func(tx *models.Transaction) bool {
		return tx.IssuerTaxID == nil && *tx.TotalValue == "7.50"
	})).Return(nil).Once()

	out := f.pipeline.Process(context.Background(), sender, mediaID, taxID)
	assert.Equal(t, OutcomeOK, out.Kind)
}

func TestPipeline_DownloadFailure(t *testing.T) {
	f := newPipelineFixture(t)
	f.media.On("DownloadMedia", mock.Anything, mediaID).Return(nil, errors.New("404")).Once()
	f.expectReply(MsgDownloadFailed)

	out := f.pipeline.Process(context.Background(), sender, mediaID, taxID)
	assert.Equal(t, OutcomeRecovered, out.Kind)
	assert.Equal(t, MsgDownloadFailed, out.Reply)
	assert.Error(t, out.Err)
	f.objects.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.assertNoTransaction(t)
}

func TestPipeline_UploadFailure(t *testing.T) {
	f := newPipelineFixture(t)
	f.downloads()
	uploadErr := errors.New("access denied")
	f.objects.On("Upload", mock.Anything, key, imageBytes, "image/jpeg").Return(uploadErr).Once()
	f.expectReply(MsgSaveFailed)

	out := f.pipeline.Process(context.Background(), sender, mediaID, taxID)
	assert.Equal(t, OutcomeRecovered, out.Kind)
	assert.ErrorIs(t, out.Err, uploadErr)
	f.recognizer.AssertNotCalled(t, "Recognize", mock.Anything, mock.Anything)
	f.assertNoTransaction(t)
}

func TestPipeline_RecognizeFailure(t *testing.T) {
	f := newPipelineFixture(t)
	f.downloads()
	f.uploads()
	f.recognizer.On("Recognize", mock.Anything, key).Return(nil, errors.New("throttled")).Once()
	f.expectReply(MsgRecognizeFailed)

	out := f.pipeline.Process(context.Background(), sender, mediaID, taxID)
	assert.Equal(t, OutcomeRecovered, out.Kind)
	assert.Equal(t, MsgRecognizeFailed, out.Reply)
	f.assertNoTransaction(t)
}

func TestPipeline_IncompleteFields(t *testing.T) {
	tests := map[string][]string{
		"no date":  {"TOTAL 10,00"},
		"no total": {"10/05/2024"},
		"no text":  {},
	}
	for name, lines := range tests {
		t.Run(name, func(t *testing.T) {
			f := newPipelineFixture(t)
			f.downloads()
			f.uploads()
			f.recognizes(lines)
			f.expectReply(MsgUnreadable)

			out := f.pipeline.Process(context.Background(), sender, mediaID, taxID)
			assert.Equal(t, OutcomeRecovered, out.Kind)
			assert.ErrorIs(t, out.Err, ErrIncompleteFields)
			f.assertNoTransaction(t)
		})
	}
}

func TestPipeline_PersistFailure(t *testing.T) {
	f := newPipelineFixture(t)
	f.downloads()
	f.uploads()
	f.recognizes(receiptLines)
	f.expectReply(MsgExtracted("25.90", "10/05/2024"))
	dbErr := errors.New("database is locked")
	f.transactions.On("PutTransaction", mock.Anything, mock.Anything).Return(dbErr).Once()

	out := f.pipeline.Process(context.Background(), sender, mediaID, taxID)
	assert.Equal(t, OutcomeFatal, out.Kind)
	assert.ErrorIs(t, out.Err, dbErr)
	assert.Equal(t, MsgExtracted("25.90", "10/05/2024"), out.Reply)
	f.messenger.AssertNumberOfCalls(t, "SendMessage", 1)
}

func TestPipeline_CustomStrategy(t *testing.T) {
	total, date := "1.00", "02/02/2022"
	strategy := extractor.StrategyFunc(func([]string) extractor.Fields {
		return extractor.Fields{Total: &total, Date: &date}
	})
	f := newPipelineFixture(t, WithStrategy(strategy))
	f.downloads()
	f.uploads()
	f.recognizes([]string{"anything"})
	f.expectReply(MsgExtracted("1.00", "02/02/2022"))
	f.transactions.On("PutTransaction", mock.Anything, mock.Anything).Return(nil).Once()

	out := f.pipeline.Process(context.Background(), sender, mediaID, taxID)
	assert.Equal(t, OutcomeOK, out.Kind)
}
