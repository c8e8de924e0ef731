package usecase_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"chart_backend/internal/feature/charts/domain"
	"chart_backend/internal/feature/charts/domain/entity"
	"chart_backend/internal/feature/charts/usecase"
)

// day は日付キー生成のテストヘルパーです。
func day(y int, m time.Month, d int) entity.Key {
	return entity.TimeKey(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// TestAlign_UnionSortedAscending はキーの和集合が昇順・重複なしで出力されることを検証します。
func TestAlign_UnionSortedAscending(t *testing.T) {
	t.Parallel()

	ms := entity.MultiSeries{
		{
			Name:   "a",
			Keys:   []entity.Key{day(2024, 3, 3), day(2024, 3, 1)},
			Values: nums(3, 1),
		},
		{
			Name:   "b",
			Keys:   []entity.Key{day(2024, 3, 2), day(2024, 3, 3)},
			Values: nums(2, 30),
		},
	}

	aligned, err := usecase.Align(ms, usecase.AlignOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantKeys := []entity.Key{day(2024, 3, 1), day(2024, 3, 2), day(2024, 3, 3)}
	if !reflect.DeepEqual(aligned.Keys, wantKeys) {
		t.Errorf("key union mismatch: got %v, want %v", aligned.Keys, wantKeys)
	}
	for i := 1; i < len(aligned.Keys); i++ {
		if !aligned.Keys[i-1].Less(aligned.Keys[i]) {
			t.Errorf("keys not strictly increasing at %d", i)
		}
	}

	// 系列aは3/2を持たないので欠測がマークされる（ゼロ埋めしない）
	a := aligned.Series[0]
	wantA := []entity.Value{entity.Number(1), entity.Missing(), entity.Number(3)}
	if !reflect.DeepEqual(a.Values, wantA) {
		t.Errorf("series a values mismatch: got %v, want %v", a.Values, wantA)
	}
}

// TestAlign_Idempotent は整列済み入力の再整列が同一結果になることを検証します。
func TestAlign_Idempotent(t *testing.T) {
	t.Parallel()

	ms := entity.MultiSeries{
		{
			Name:   "x",
			Keys:   []entity.Key{day(2024, 1, 1), day(2024, 1, 3)},
			Values: nums(1, 3),
		},
		{
			Name:   "y",
			Keys:   []entity.Key{day(2024, 1, 2)},
			Values: nums(2),
		},
	}

	once, err := usecase.Align(ms, usecase.AlignOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	again, err := usecase.Align(entity.MultiSeries(once.Series), usecase.AlignOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(once.Keys, again.Keys) {
		t.Errorf("key sequence changed on re-alignment: %v vs %v", once.Keys, again.Keys)
	}
	if !reflect.DeepEqual(once.Series, again.Series) {
		t.Errorf("series changed on re-alignment")
	}
}

// TestAlign_MixedKeyKinds はカテゴリキーと時刻キーの混在がエラーになることを検証します。
func TestAlign_MixedKeyKinds(t *testing.T) {
	t.Parallel()

	ms := entity.MultiSeries{
		{
			Name:   "dates",
			Keys:   []entity.Key{day(2024, 1, 1)},
			Values: nums(1),
		},
		{
			Name:   "labels",
			Keys:   []entity.Key{entity.CategoryKey("tokyo")},
			Values: nums(2),
		},
	}

	_, err := usecase.Align(ms, usecase.AlignOptions{})
	if !errors.Is(err, domain.ErrIncompatibleKeyType) {
		t.Errorf("expected ErrIncompatibleKeyType, got %v", err)
	}
}

// TestAlign_Granularity は時刻キーの丸めが指定された粒度でのみ起きることを検証します。
// 丸めなしのとき、同一日の異なる時刻は別々のキーのまま保たれます。
func TestAlign_Granularity(t *testing.T) {
	t.Parallel()

	morning := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	evening := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)

	ms := entity.MultiSeries{
		{
			Name:   "a",
			Keys:   []entity.Key{entity.TimeKey(morning)},
			Values: nums(1),
		},
		{
			Name:   "b",
			Keys:   []entity.Key{entity.TimeKey(evening)},
			Values: nums(2),
		},
	}

	tests := []struct {
		name        string
		granularity usecase.Granularity
		wantKeys    int
	}{
		{"no rounding keeps both keys", usecase.GranularityNone, 2},
		{"hour rounding keeps distinct hours", usecase.GranularityHour, 2},
		{"day rounding collapses to one key", usecase.GranularityDay, 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			aligned, err := usecase.Align(ms, usecase.AlignOptions{Granularity: tt.granularity})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(aligned.Keys) != tt.wantKeys {
				t.Errorf("expected %d keys, got %d (%v)", tt.wantKeys, len(aligned.Keys), aligned.Keys)
			}
		})
	}

	// 丸めなしでは観測は混同されず、相手系列の時刻は欠測になる
	t.Run("no rounding marks the other slot missing", func(t *testing.T) {
		t.Parallel()

		aligned, err := usecase.Align(ms, usecase.AlignOptions{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		wantA := []entity.Value{entity.Number(1), entity.Missing()}
		wantB := []entity.Value{entity.Missing(), entity.Number(2)}
		if !reflect.DeepEqual(aligned.Series[0].Values, wantA) {
			t.Errorf("series a values mismatch: got %v, want %v", aligned.Series[0].Values, wantA)
		}
		if !reflect.DeepEqual(aligned.Series[1].Values, wantB) {
			t.Errorf("series b values mismatch: got %v, want %v", aligned.Series[1].Values, wantB)
		}
	})

	// 時単位の丸めで同一時間内の観測だけが1キーへ集約される
	t.Run("hour rounding collapses within the hour", func(t *testing.T) {
		t.Parallel()

		sameHour := entity.MultiSeries{
			{
				Name: "a",
				Keys: []entity.Key{
					entity.TimeKey(time.Date(2024, 5, 1, 9, 15, 0, 0, time.UTC)),
					entity.TimeKey(time.Date(2024, 5, 1, 9, 45, 0, 0, time.UTC)),
				},
				Values: nums(1, 2),
			},
		}

		aligned, err := usecase.Align(sameHour, usecase.AlignOptions{Granularity: usecase.GranularityHour})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(aligned.Keys) != 1 {
			t.Fatalf("expected 1 key, got %d (%v)", len(aligned.Keys), aligned.Keys)
		}
		want := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
		if !aligned.Keys[0].Time.Equal(want) {
			t.Errorf("expected key %v, got %v", want, aligned.Keys[0].Time)
		}
		// 同一バケットへ潰れた観測は後勝ち
		if !reflect.DeepEqual(aligned.Series[0].Values, nums(2)) {
			t.Errorf("expected last value to win, got %v", aligned.Series[0].Values)
		}
	})
}

// TestAlign_EmptySeries は有効値を持たない系列の扱い（除外フラグ/厳格モード）を検証します。
func TestAlign_EmptySeries(t *testing.T) {
	t.Parallel()

	ms := entity.MultiSeries{
		{
			Name:   "good",
			Keys:   []entity.Key{day(2024, 1, 1)},
			Values: nums(1),
		},
		{
			Name:   "hollow",
			Keys:   []entity.Key{day(2024, 1, 2)},
			Values: []entity.Value{entity.Missing()},
		},
	}

	t.Run("default mode flags the exclusion", func(t *testing.T) {
		t.Parallel()

		aligned, err := usecase.Align(ms, usecase.AlignOptions{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(aligned.Excluded, []string{"hollow"}) {
			t.Errorf("expected [hollow] excluded, got %v", aligned.Excluded)
		}
		if len(aligned.Series) != 1 || aligned.Series[0].Name != "good" {
			t.Errorf("expected only series good to remain, got %v", aligned.Series)
		}
	})

	t.Run("strict mode fails loudly", func(t *testing.T) {
		t.Parallel()

		_, err := usecase.Align(ms, usecase.AlignOptions{Strict: true})
		if !errors.Is(err, domain.ErrEmptyData) {
			t.Errorf("expected ErrEmptyData, got %v", err)
		}
	})
}
