package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/singul69/My-chat-app/internal/models"
)

func TestMemoryUserUniqueness(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	user := &models.User{Username: "alice", Password: "x", FullName: "Alice", Email: "alice@example.com", Gender: models.GenderFemale}
	require.NoError(t, st.CreateUser(ctx, user))
	require.NotEqual(t, uuid.Nil, user.ID)

	dupUsername := &models.User{Username: "alice", Password: "x", FullName: "Other", Email: "other@example.com", Gender: models.GenderFemale}
	assert.ErrorIs(t, st.CreateUser(ctx, dupUsername), ErrDuplicate)

	dupEmail := &models.User{Username: "bob", Password: "x", FullName: "Bob", Email: "alice@example.com", Gender: models.GenderMale}
	assert.ErrorIs(t, st.CreateUser(ctx, dupEmail), ErrDuplicate)

	byName, err := st.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byEmail, err := st.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = st.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemorySetUserPremium(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	user := &models.User{Username: "alice", Password: "x", FullName: "Alice", Email: "alice@example.com", Gender: models.GenderFemale}
	require.NoError(t, st.CreateUser(ctx, user))

	require.NoError(t, st.SetUserPremium(ctx, user.ID, true))
	got, err := st.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPremium)

	assert.ErrorIs(t, st.SetUserPremium(ctx, uuid.New(), true), ErrNotFound)
}

func TestMemoryCannedMessagesNewestFirst(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	for _, text := range []string{"first", "second", "third"} {
		require.NoError(t, st.CreateCannedMessage(ctx, &models.CannedMessage{
			ForBoysMessage: text,
			Category:       "greeting",
		}))
	}

	msgs, err := st.ListCannedMessages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "third", msgs[0].ForBoysMessage)
	assert.Equal(t, "first", msgs[2].ForBoysMessage)
}

func TestMemoryUserMessagesOldestFirstPerUser(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	a, b := uuid.New(), uuid.New()
	require.NoError(t, st.CreateUserMessage(ctx, &models.UserMessage{UserID: a, Message: "a1", IsUserMessage: true}))
	require.NoError(t, st.CreateUserMessage(ctx, &models.UserMessage{UserID: b, Message: "b1", IsUserMessage: true}))
	require.NoError(t, st.CreateUserMessage(ctx, &models.UserMessage{UserID: a, Message: "a2", IsUserMessage: false}))

	msgs, err := st.ListUserMessages(ctx, a)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "a1", msgs[0].Message)
	assert.Equal(t, "a2", msgs[1].Message)

	msgs, err = st.ListUserMessages(ctx, b)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
}

func TestMemoryPayments(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	payment := &models.Payment{UserID: uuid.New(), Amount: 299}
	require.NoError(t, st.CreatePayment(ctx, payment))
	assert.False(t, payment.Verified)

	got, err := st.GetPayment(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, payment.ID, got.ID)

	verified, err := st.SetPaymentVerified(ctx, payment.ID)
	require.NoError(t, err)
	assert.True(t, verified.Verified)

	_, err = st.GetPayment(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = st.SetPaymentVerified(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryTransactMutationsVisible(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	user := &models.User{Username: "alice", Password: "x", FullName: "Alice", Email: "alice@example.com", Gender: models.GenderFemale}
	require.NoError(t, st.CreateUser(ctx, user))
	payment := &models.Payment{UserID: user.ID, Amount: 299}
	require.NoError(t, st.CreatePayment(ctx, payment))

	err := st.Transact(ctx, func(tx Store) error {
		if _, err := tx.SetPaymentVerified(ctx, payment.ID); err != nil {
			return err
		}
		return tx.SetUserPremium(ctx, user.ID, true)
	})
	require.NoError(t, err)

	gotPayment, err := st.GetPayment(ctx, payment.ID)
	require.NoError(t, err)
	assert.True(t, gotPayment.Verified)

	gotUser, err := st.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, gotUser.IsPremium)
}

func TestMemoryTransactPropagatesError(t *testing.T) {
	st := NewMemory()
	sentinel := errors.New("boom")

	err := st.Transact(context.Background(), func(Store) error { return sentinel })
	assert.ErrorIs(t, err, sentinel)
}

func TestMemoryAppConfigUpsert(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	_, err := st.GetAppConfig(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	first, err := st.SaveAppConfig(ctx, &models.AppConfig{UpiID: "a@upi", PremiumEnabled: true})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, first.ID)

	second, err := st.SaveAppConfig(ctx, &models.AppConfig{UpiID: "b@upi", PremiumEnabled: false})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "upsert keeps the single row's identity")

	got, err := st.GetAppConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b@upi", got.UpiID)
	assert.False(t, got.PremiumEnabled)
}
