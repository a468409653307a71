package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/hucha/internal/usecase"
	"github.com/iho/hucha/internal/usecase/mocks"
)

func TestDashboardUseCase_GetSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	cache := mocks.NewMockCache()

	reader := mocks.NewMockDashboardReader(ctrl)
	reader.EXPECT().
		Summary(gomock.Any(), "user-1", gomock.Any(), gomock.Any()).
		Return(&usecase.DashboardSummary{
			TotalIncome:   decimal.NewFromInt(3000),
			TotalExpenses: decimal.NewFromInt(1800),
			Accounts: []usecase.AccountBalance{
				{AccountID: "acc-1", Name: "Checking", Balance: decimal.NewFromInt(1200)},
			},
		}, nil).
		Times(1)

	uc := usecase.NewDashboardUseCase(usecase.Deps{Cache: cache, CacheTTL: time.Minute}, reader)

	summary, err := uc.GetSummary(ctx, "user-1", "2026-08")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !summary.Net.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("expected net 1200, got %s", summary.Net)
	}

	if summary.Month != "2026-08" || summary.OwnerID != "user-1" {
		t.Errorf("summary not stamped: %+v", summary)
	}

	// The Times(1) expectation makes a second read prove the cache hit.
	cached, err := uc.GetSummary(ctx, "user-1", "2026-08")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cached.Net.Equal(summary.Net) {
		t.Errorf("cached summary differs: %s vs %s", cached.Net, summary.Net)
	}
}

func TestDashboardUseCase_GetSummary_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := usecase.NewDashboardUseCase(
		usecase.Deps{Cache: mocks.NewMockCache(), CacheTTL: time.Minute},
		mocks.NewMockDashboardReader(ctrl),
	)

	t.Run("missing owner", func(t *testing.T) {
		_, err := uc.GetSummary(context.Background(), "", "2026-08")

		failure, ok := usecase.AsFailure(err)
		if !ok || failure.Kind != usecase.FailureValidation {
			t.Errorf("expected Validation failure, got %v", err)
		}
	})

	t.Run("malformed month", func(t *testing.T) {
		_, err := uc.GetSummary(context.Background(), "user-1", "August 2026")

		failure, ok := usecase.AsFailure(err)
		if !ok || failure.Kind != usecase.FailureValidation {
			t.Errorf("expected Validation failure, got %v", err)
		}
	})
}
