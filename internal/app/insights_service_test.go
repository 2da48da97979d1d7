package app_test

import (
	"context"
	"testing"

	"biofeedback/internal/app"
	"biofeedback/internal/domain"
)

func aggWithMood(day string, score float64) domain.DailyAggregation {
	a := domain.DailyAggregation{UserID: 1, Day: day}
	a.Metrics.Mood.Score = score
	return a
}

func TestInsights_BadRange(t *testing.T) {
	svc := app.NewInsightsService(&mockAggRepo{})
	if _, err := svc.GetRange(context.Background(), 1, "last week", "2024-03-31"); err == nil {
		t.Fatal("expected error for bad start")
	}
	if _, err := svc.GetRange(context.Background(), 1, "2024-03-01", "soon"); err == nil {
		t.Fatal("expected error for bad end")
	}
}

func TestInsights_AveragesAndChange(t *testing.T) {
	aggs := []domain.DailyAggregation{
		aggWithMood("2024-03-01", 2),
		aggWithMood("2024-03-02", 0), // not reported, must not count
		aggWithMood("2024-03-03", 4),
	}
	svc := app.NewInsightsService(&mockAggRepo{
		listFn: func(_ context.Context, _ int64, _, _ string) ([]domain.DailyAggregation, error) {
			return aggs, nil
		},
	})

	insights, err := svc.GetRange(context.Background(), 1, "2024-03-01", "2024-03-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(insights) != len(domain.MetricKeys) {
		t.Fatalf("expected %d insights, got %d", len(domain.MetricKeys), len(insights))
	}

	var mood *app.Insight
	for i := range insights {
		if insights[i].Metric == "mood" {
			mood = &insights[i]
		}
	}
	if mood == nil {
		t.Fatal("no mood insight")
	}
	if mood.Average != 3 {
		t.Errorf("mood average = %v; want 3 (zero day excluded)", mood.Average)
	}
	if mood.Days != 2 {
		t.Errorf("mood days = %d; want 2", mood.Days)
	}
	if mood.Change != "positive" {
		t.Errorf("mood change = %q; want positive", mood.Change)
	}
}

func TestInsights_EmptyRange(t *testing.T) {
	svc := app.NewInsightsService(&mockAggRepo{})
	insights, err := svc.GetRange(context.Background(), 1, "2024-03-01", "2024-03-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, in := range insights {
		if in.Average != 0 || in.Days != 0 || in.Change != "neutral" {
			t.Errorf("expected zero insight for %s, got %+v", in.Metric, in)
		}
	}
}
