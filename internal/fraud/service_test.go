package fraud

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SlotGuard_Go/internal/domain"
	"github.com/osse101/SlotGuard_Go/internal/metrics"
)

func newTestService(repo Repository) *service {
	svc := NewService(repo).(*service)
	svc.retryDelay = 0
	return svc
}

func spinEvent() domain.FraudEvent {
	return domain.FraudEvent{
		UserID:     "user-1",
		Type:       domain.FraudSpinAnomaly,
		MachineID:  "classic",
		Payout:     999999,
		JackpotWin: 0,
		BetAmount:  10,
		Reels:      []string{"seven", "seven", "seven"},
	}
}

func TestService_Record(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := newTestService(mockRepo)
	ctx := context.Background()

	mockRepo.On("Record", ctx, mock.MatchedBy(func(evt domain.FraudEvent) bool {
		return evt.ID != uuid.Nil && evt.UserID == "user-1" && evt.Type == domain.FraudSpinAnomaly
	})).Return(nil).Once()

	before := testutil.ToFloat64(metrics.FraudEvents.WithLabelValues(string(domain.FraudSpinAnomaly)))

	require.NoError(t, svc.Record(ctx, spinEvent()))
	mockRepo.AssertExpectations(t)

	after := testutil.ToFloat64(metrics.FraudEvents.WithLabelValues(string(domain.FraudSpinAnomaly)))
	assert.Equal(t, before+1, after)
}

func TestService_Record_KeepsCallerID(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := newTestService(mockRepo)
	ctx := context.Background()

	evt := spinEvent()
	evt.ID = uuid.New()
	mockRepo.On("Record", ctx, evt).Return(nil).Once()

	require.NoError(t, svc.Record(ctx, evt))
	mockRepo.AssertExpectations(t)
}

func TestService_Record_RetriesOnce(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := newTestService(mockRepo)
	ctx := context.Background()

	mockRepo.On("Record", ctx, mock.Anything).Return(errors.New("connection reset")).Once()
	mockRepo.On("Record", ctx, mock.Anything).Return(nil).Once()

	require.NoError(t, svc.Record(ctx, spinEvent()))
	mockRepo.AssertNumberOfCalls(t, "Record", 2)
}

func TestService_Record_FailsAfterRetry(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := newTestService(mockRepo)
	ctx := context.Background()

	mockRepo.On("Record", ctx, mock.Anything).Return(errors.New("db down"))

	before := testutil.ToFloat64(metrics.FraudRecordFailures.WithLabelValues(string(domain.FraudPurchaseAnomaly)))

	evt := domain.FraudEvent{UserID: "user-1", Type: domain.FraudPurchaseAnomaly, ProductID: "<script>"}
	err := svc.Record(ctx, evt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgRecordFailed)
	assert.Equal(t, domain.KindInternal, domain.ErrorKind(err))
	mockRepo.AssertNumberOfCalls(t, "Record", recordAttempts)

	after := testutil.ToFloat64(metrics.FraudRecordFailures.WithLabelValues(string(domain.FraudPurchaseAnomaly)))
	assert.Equal(t, before+1, after)
}

func TestService_Record_CancelledBeforeRetry(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)
	ctx, cancel := context.WithCancel(context.Background())

	mockRepo.On("Record", ctx, mock.Anything).Run(func(mock.Arguments) { cancel() }).Return(errors.New("timeout")).Once()

	err := svc.Record(ctx, spinEvent())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	mockRepo.AssertNumberOfCalls(t, "Record", 1)
}

func TestService_ListAndCleanup(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo)
	ctx := context.Background()

	uid := "user-1"
	filter := Filter{UserID: &uid, Limit: 10}
	events := []domain.FraudEvent{spinEvent()}
	mockRepo.On("List", ctx, filter).Return(events, nil)
	mockRepo.On("CleanupOlderThan", ctx, 30).Return(int64(4), nil)

	got, err := svc.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, events, got)

	n, err := svc.CleanupOldEvents(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	mockRepo.AssertExpectations(t)
}
