package normalize

import "testing"

const (
	primary   = "customfield_10016"
	secondary = "customfield_10026"
)

func TestStoryPoints_PrimaryWins(t *testing.T) {
	fields := map[string]any{primary: float64(5), secondary: float64(8)}
	p := StoryPoints(fields, primary, secondary)
	if p == nil || *p != 5 { t.Fatalf("expected 5, got %v", p) }
}

func TestStoryPoints_SecondaryFallback(t *testing.T) {
	fields := map[string]any{secondary: float64(3)}
	p := StoryPoints(fields, primary, secondary)
	if p == nil || *p != 3 { t.Fatalf("expected 3, got %v", p) }
}

func TestStoryPoints_AbsentDistinctFromZero(t *testing.T) {
	if p := StoryPoints(map[string]any{}, primary, secondary); p != nil {
		t.Fatalf("expected nil for absent estimate, got %v", *p)
	}
	p := StoryPoints(map[string]any{primary: float64(0)}, primary, secondary)
	if p == nil || *p != 0 { t.Fatalf("expected explicit 0, got %v", p) }
	if got := StoryPointsOrZero(map[string]any{}, primary, secondary); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestStoryPoints_NonNumericIgnored(t *testing.T) {
	fields := map[string]any{primary: "5", secondary: float64(2)}
	p := StoryPoints(fields, primary, secondary)
	if p == nil || *p != 2 { t.Fatalf("expected 2, got %v", p) }
}
