package balance_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nnazuaff/LaporanKeuangan/internal/balance"
)

func TestService_Upsert_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := balance.NewMockRepository(ctrl)
	repo.EXPECT().FindByName(gomock.Any(), "Kas").Return(nil, nil)
	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, src *balance.Source) error {
			src.ID = 1705000000000
			src.CreatedAt = time.Now()
			src.UpdatedAt = src.CreatedAt
			return nil
		})

	svc := balance.NewService(repo)
	src, err := svc.Upsert(context.Background(), "  Kas ", 100000000, false)

	require.NoError(t, err)
	assert.Equal(t, "Kas", src.Name)
	assert.Equal(t, int64(100000000), src.Amount)
	assert.NotZero(t, src.ID)
}

func TestService_Upsert_NameTakenWithoutOverwrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	existing := &balance.Source{ID: 7, Name: "Kas", Amount: 50000000}

	repo := balance.NewMockRepository(ctrl)
	repo.EXPECT().FindByName(gomock.Any(), "KAS").Return(existing, nil)

	svc := balance.NewService(repo)
	_, err := svc.Upsert(context.Background(), "KAS", 100000000, false)

	var taken *balance.NameTakenError
	require.ErrorAs(t, err, &taken)
	assert.Equal(t, existing, taken.Existing)
}

func TestService_Upsert_OverwriteUpdatesExisting(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	existing := &balance.Source{ID: 7, Name: "Kas", Amount: 50000000}
	updated := &balance.Source{ID: 7, Name: "Kas", Amount: 100000000}

	repo := balance.NewMockRepository(ctrl)
	repo.EXPECT().FindByName(gomock.Any(), "kas").Return(existing, nil)
	repo.EXPECT().UpdateAmount(gomock.Any(), int64(7), int64(100000000)).Return(updated, nil)

	svc := balance.NewService(repo)
	src, err := svc.Upsert(context.Background(), "kas", 100000000, true)

	require.NoError(t, err)
	assert.Equal(t, updated, src)
}

func TestService_Upsert_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := balance.NewService(balance.NewMockRepository(ctrl))

	_, err := svc.Upsert(context.Background(), "   ", 100, false)
	assert.ErrorIs(t, err, balance.ErrEmptyName)

	_, err = svc.Upsert(context.Background(), "Kas", -1, false)
	assert.ErrorIs(t, err, balance.ErrNegativeAmount)

	// Zero is a legal balance.
	repo := balance.NewMockRepository(ctrl)
	repo.EXPECT().FindByName(gomock.Any(), "Kas").Return(nil, nil)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	_, err = balance.NewService(repo).Upsert(context.Background(), "Kas", 0, false)
	assert.NoError(t, err)
}

func TestTotal(t *testing.T) {
	assert.Zero(t, balance.Total(nil))

	sources := []*balance.Source{
		{Amount: 100000000},
		{Amount: 25000000},
	}
	assert.Equal(t, int64(125000000), balance.Total(sources))
}
