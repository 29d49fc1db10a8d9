package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bradfox2/aa-hotel-optimizer/internal/model"
)

// mkStay builds a pool candidate the way the portal client would
// produce it: ingestion-time derived fields set, status bonus zero.
func mkStay(name, date string, price float64, apiPoints int) model.StayOption {
	d, err := model.ParseDate(date)
	if err != nil {
		panic(err)
	}
	s := model.StayOption{
		Name:         name,
		Location:     "Phoenix",
		CheckIn:      d,
		TotalPrice:   price,
		APIPoints:    apiPoints,
		PointsEarned: apiPoints,
	}
	if price > 0 {
		s.PointsPerDollar = float64(apiPoints) / price
	}
	return s
}

func mustStrategy(t *testing.T, name Name, opts Options) Strategy {
	t.Helper()
	s, err := New(name, opts)
	require.NoError(t, err)
	return s
}

func TestParseName(t *testing.T) {
	tests := []struct {
		input   string
		want    Name
		wantErr bool
	}{
		{input: "ppd", want: PPD},
		{input: "min_cost_greedy", want: MinCostGreedy},
		{input: "min_cost_dp", want: MinCostDP},
		{input: "fastest_time", want: FastestTime},
		{input: "cheapest", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_FastestRequiresOverlapCap(t *testing.T) {
	_, err := New(FastestTime, Options{})
	assert.Error(t, err)

	_, err = New(FastestTime, Options{MaxOverlaps: 1})
	assert.NoError(t, err)
}

func TestEmptyPool_AllStrategies(t *testing.T) {
	for _, name := range []Name{PPD, MinCostGreedy, MinCostDP, FastestTime} {
		t.Run(string(name), func(t *testing.T) {
			s := mustStrategy(t, name, Options{MaxOverlaps: 2})
			itinerary, cost, achieved := s.Select(nil, 50000, 12345)
			assert.Empty(t, itinerary)
			assert.Zero(t, cost)
			assert.Equal(t, 12345, achieved, "achieved must fall back to the starting balance")
		})
	}
}

func TestZeroPointStaysExcluded(t *testing.T) {
	pool := []model.StayOption{
		mkStay("Free Points None", "06/01/2025", 10, 0),
		mkStay("Real Earner", "06/02/2025", 100, 5000),
	}

	for _, name := range []Name{PPD, MinCostGreedy, MinCostDP, FastestTime} {
		t.Run(string(name), func(t *testing.T) {
			s := mustStrategy(t, name, Options{MaxOverlaps: 2})
			itinerary, _, _ := s.Select(pool, 5000, 0)
			for _, stay := range itinerary {
				assert.NotEqual(t, "Free Points None", stay.Name)
			}
		})
	}
}

func TestPPD_PicksHighestRatioFirst(t *testing.T) {
	pool := []model.StayOption{
		mkStay("Low Ratio", "06/01/2025", 100, 1000),  // 10 ppd
		mkStay("High Ratio", "06/02/2025", 100, 5000), // 50 ppd
		mkStay("Mid Ratio", "06/03/2025", 100, 3000),  // 30 ppd
	}

	s := mustStrategy(t, PPD, Options{})
	itinerary, cost, achieved := s.Select(pool, 8000, 0)

	require.Len(t, itinerary, 2)
	names := []string{itinerary[0].Name, itinerary[1].Name}
	assert.ElementsMatch(t, []string{"High Ratio", "Mid Ratio"}, names)
	assert.InDelta(t, 200.0, cost, 1e-9)
	assert.Equal(t, 8000, achieved)
}

func TestPPD_OneStayPerDate(t *testing.T) {
	pool := []model.StayOption{
		mkStay("A", "06/01/2025", 100, 5000),
		mkStay("B", "06/01/2025", 90, 4500),
		mkStay("C", "06/02/2025", 100, 4000),
	}

	s := mustStrategy(t, PPD, Options{})
	itinerary, _, _ := s.Select(pool, 100000, 0)

	dates := make(map[string]int)
	for _, stay := range itinerary {
		dates[stay.DateKey()]++
	}
	for date, count := range dates {
		assert.Equal(t, 1, count, "date %s booked more than once", date)
	}
}

func TestPPD_StatusBonusUsesRunningBalance(t *testing.T) {
	// First stay starts below the gold threshold and crosses it; the
	// second stay must earn the 20% bonus while the first earns none.
	pool := []model.StayOption{
		mkStay("First", "06/01/2025", 100, 30000),
		mkStay("Second", "06/02/2025", 150, 30000),
	}

	s := mustStrategy(t, PPD, Options{})
	itinerary, _, achieved := s.Select(pool, 95000, 40000)

	require.Len(t, itinerary, 2)
	assert.Equal(t, "First", itinerary[0].Name)
	assert.Equal(t, 0, itinerary[0].StatusBonusPoints, "balance 40000 is below the 60000 tier")
	assert.Equal(t, 6000, itinerary[1].StatusBonusPoints, "balance 70000 earns 20%%")
	assert.Equal(t, 40000+30000+36000, achieved)
}

func TestPPD_ChronologicalOutput(t *testing.T) {
	pool := []model.StayOption{
		mkStay("Late", "06/10/2025", 50, 2000),
		mkStay("Early", "06/01/2025", 200, 3000),
		mkStay("Mid", "06/05/2025", 100, 2500),
	}

	s := mustStrategy(t, PPD, Options{})
	itinerary, _, _ := s.Select(pool, 100000, 0)

	for i := 1; i < len(itinerary); i++ {
		assert.False(t, itinerary[i].CheckIn.Before(itinerary[i-1].CheckIn.Time),
			"itinerary out of order at %d", i)
	}
}

func TestCheapest_FreeStaysIneligible(t *testing.T) {
	pool := []model.StayOption{
		mkStay("Free", "06/01/2025", 0, 9000),
		mkStay("Paid", "06/02/2025", 50, 3000),
	}

	s := mustStrategy(t, MinCostGreedy, Options{})
	itinerary, _, _ := s.Select(pool, 100000, 0)

	require.Len(t, itinerary, 1)
	assert.Equal(t, "Paid", itinerary[0].Name)
}

func TestCheapest_PartialResultOnShortfall(t *testing.T) {
	pool := []model.StayOption{
		mkStay("Only", "06/01/2025", 80, 4000),
	}

	s := mustStrategy(t, MinCostGreedy, Options{})
	itinerary, cost, achieved := s.Select(pool, 1000000, 0)

	require.Len(t, itinerary, 1)
	assert.InDelta(t, 80.0, cost, 1e-9)
	assert.Equal(t, 4000, achieved)
	assert.Less(t, achieved, 1000000)
}

func TestCheapest_vsDP_KnownScenario(t *testing.T) {
	// Greedy takes the two cheapest ($60+$80 = 70k points), falls
	// short, and adds the third. DP finds the $100+$80 pair that
	// reaches 90k for $180.
	pool := []model.StayOption{
		mkStay("Big", "06/01/2025", 100, 50000),
		mkStay("Mid", "06/02/2025", 80, 40000),
		mkStay("Small", "06/03/2025", 60, 30000),
	}

	greedy := mustStrategy(t, MinCostGreedy, Options{})
	gItin, gCost, gAchieved := greedy.Select(pool, 90000, 0)
	require.Len(t, gItin, 3)
	assert.InDelta(t, 240.0, gCost, 1e-9)
	assert.GreaterOrEqual(t, gAchieved, 90000)

	dp := mustStrategy(t, MinCostDP, Options{})
	dItin, dCost, dAchieved := dp.Select(pool, 90000, 0)
	require.Len(t, dItin, 2)
	assert.InDelta(t, 180.0, dCost, 1e-9)
	assert.GreaterOrEqual(t, dAchieved, 90000)
	names := []string{dItin[0].Name, dItin[1].Name}
	assert.ElementsMatch(t, []string{"Big", "Mid"}, names)

	assert.LessOrEqual(t, dCost, gCost, "dp must never cost more than greedy-cheapest")
}

func TestDP_PerDateReduction(t *testing.T) {
	// Two stays on the same date: the higher-point one dominates.
	pool := []model.StayOption{
		mkStay("Dominated", "06/01/2025", 100, 10000),
		mkStay("Dominant", "06/01/2025", 100, 20000),
	}

	s := mustStrategy(t, MinCostDP, Options{})
	itinerary, _, _ := s.Select(pool, 15000, 0)

	require.Len(t, itinerary, 1)
	assert.Equal(t, "Dominant", itinerary[0].Name)
}

func TestDP_TargetAlreadyMet(t *testing.T) {
	pool := []model.StayOption{
		mkStay("Any", "06/01/2025", 100, 10000),
	}

	s := mustStrategy(t, MinCostDP, Options{})
	itinerary, cost, achieved := s.Select(pool, 50000, 80000)

	assert.Empty(t, itinerary)
	assert.Zero(t, cost)
	assert.Equal(t, 80000, achieved)
}

func TestDP_InfeasibleReturnsEmpty(t *testing.T) {
	pool := []model.StayOption{
		mkStay("Tiny", "06/01/2025", 40, 500),
	}

	s := mustStrategy(t, MinCostDP, Options{})
	itinerary, cost, achieved := s.Select(pool, 1000000, 0)

	assert.Empty(t, itinerary)
	assert.Zero(t, cost)
	assert.Equal(t, 0, achieved)
}

func TestDP_OvershootCheaperThanExact(t *testing.T) {
	// One large cheap stay overshoots the target; two smaller stays
	// land nearer but cost more. The buffer must let DP take the
	// cheaper overshoot.
	pool := []model.StayOption{
		mkStay("Jumbo", "06/01/2025", 90, 60000),
		mkStay("Half A", "06/02/2025", 70, 25000),
		mkStay("Half B", "06/03/2025", 70, 25000),
	}

	s := mustStrategy(t, MinCostDP, Options{})
	itinerary, cost, achieved := s.Select(pool, 50000, 0)

	require.Len(t, itinerary, 1)
	assert.Equal(t, "Jumbo", itinerary[0].Name)
	assert.InDelta(t, 90.0, cost, 1e-9)
	assert.GreaterOrEqual(t, achieved, 50000)
}

func TestDP_StatusBonusAppliedPostHoc(t *testing.T) {
	// DP weights ignore status bonuses; after selection the running
	// balance crosses the gold tier and the later stay gets uplifted.
	pool := []model.StayOption{
		mkStay("One", "06/01/2025", 100, 40000),
		mkStay("Two", "06/02/2025", 100, 40000),
	}

	s := mustStrategy(t, MinCostDP, Options{})
	itinerary, _, achieved := s.Select(pool, 110000, 30000)

	require.Len(t, itinerary, 2)
	assert.Equal(t, 0, itinerary[0].StatusBonusPoints, "balance 30000 is below the tier")
	assert.Equal(t, 8000, itinerary[1].StatusBonusPoints, "balance 70000 earns 20%%")
	assert.Equal(t, 118000, achieved)
}

func TestFastest_EarliestDeadlineWins(t *testing.T) {
	// The late stay alone meets the target, but so does the pair of
	// early stays; the earlier completion date must win.
	pool := []model.StayOption{
		mkStay("Early A", "06/01/2025", 100, 30000),
		mkStay("Early B", "06/02/2025", 100, 30000),
		mkStay("Late Big", "07/15/2025", 50, 60000),
	}

	s := mustStrategy(t, FastestTime, Options{MaxOverlaps: 1})
	itinerary, _, achieved := s.Select(pool, 55000, 0)

	require.NotEmpty(t, itinerary)
	last := itinerary.LastCheckOut()
	want, _ := model.ParseDate("06/03/2025")
	assert.Equal(t, want.String(), last.String())
	assert.GreaterOrEqual(t, achieved, 55000)
}

func TestFastest_OverlapBound(t *testing.T) {
	pool := []model.StayOption{
		mkStay("A", "06/01/2025", 100, 10000),
		mkStay("B", "06/01/2025", 100, 10000),
		mkStay("C", "06/01/2025", 100, 10000),
	}

	s := mustStrategy(t, FastestTime, Options{MaxOverlaps: 2})
	itinerary, _, _ := s.Select(pool, 20000, 0)

	perDate := make(map[string]int)
	for _, stay := range itinerary {
		perDate[stay.DateKey()]++
	}
	for date, count := range perDate {
		assert.LessOrEqual(t, count, 2, "date %s exceeds overlap cap", date)
	}
}

func TestFastest_NoRedundantSameDayStays(t *testing.T) {
	// Two same-date candidates, each alone sufficient: the greedy fit
	// must stop after the first, not book both.
	pool := []model.StayOption{
		mkStay("Plenty A", "06/01/2025", 100, 50000),
		mkStay("Plenty B", "06/01/2025", 120, 50000),
	}

	s := mustStrategy(t, FastestTime, Options{MaxOverlaps: 2})
	itinerary, _, achieved := s.Select(pool, 40000, 0)

	require.Len(t, itinerary, 1)
	assert.GreaterOrEqual(t, achieved, 40000)
}

func TestFastest_FixedBalanceValuation(t *testing.T) {
	// Starting above the gold tier, every stay gets the 20% bonus
	// computed against the starting balance, not a running one.
	pool := []model.StayOption{
		mkStay("A", "06/01/2025", 100, 10000),
		mkStay("B", "06/02/2025", 100, 10000),
	}

	s := mustStrategy(t, FastestTime, Options{MaxOverlaps: 1})
	itinerary, _, _ := s.Select(pool, 88000, 65000)

	require.Len(t, itinerary, 2)
	for _, stay := range itinerary {
		assert.Equal(t, 2000, stay.StatusBonusPoints)
	}
}

func TestFastest_InfeasibleReturnsEmpty(t *testing.T) {
	pool := []model.StayOption{
		mkStay("Tiny", "06/01/2025", 40, 100),
	}

	s := mustStrategy(t, FastestTime, Options{MaxOverlaps: 3})
	itinerary, cost, achieved := s.Select(pool, 1000000, 0)

	assert.Empty(t, itinerary)
	assert.Zero(t, cost)
	assert.Equal(t, 0, achieved)
}

func TestAdditivity_AllStrategies(t *testing.T) {
	pool := []model.StayOption{
		mkStay("A", "06/01/2025", 120, 15000),
		mkStay("B", "06/02/2025", 90, 12000),
		mkStay("C", "06/03/2025", 200, 30000),
		mkStay("D", "06/04/2025", 60, 8000),
	}
	const balance = 55000

	for _, name := range []Name{PPD, MinCostGreedy, MinCostDP, FastestTime} {
		t.Run(string(name), func(t *testing.T) {
			s := mustStrategy(t, name, Options{MaxOverlaps: 2})
			itinerary, cost, achieved := s.Select(pool, 100000, balance)

			assert.InDelta(t, itinerary.TotalCost(), cost, 1e-9)
			assert.Equal(t, balance+itinerary.TotalFinalPoints(), achieved)
		})
	}
}

func TestPoolNotMutated(t *testing.T) {
	pool := []model.StayOption{
		mkStay("A", "06/01/2025", 120, 15000),
		mkStay("B", "06/02/2025", 90, 12000),
	}
	snapshot := make([]model.StayOption, len(pool))
	copy(snapshot, pool)

	for _, name := range []Name{PPD, MinCostGreedy, MinCostDP, FastestTime} {
		s := mustStrategy(t, name, Options{MaxOverlaps: 2})
		_, _, _ = s.Select(pool, 100000, 70000)
	}

	assert.Equal(t, snapshot, pool, "strategies must leave the pool's pre-bonus copies intact")
}
