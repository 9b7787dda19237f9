package prize

// DefaultTable is the prize schedule of the deployed settlement contract.
// Fixed amounts are denominated in the pool's smallest unit.
var DefaultTable = Table{
	{NormalMatches: 5, SpecialMatch: true, Prize: Prize{FixedAmount: 2_000_000_000, Points: 10_000}},
	{NormalMatches: 5, SpecialMatch: false, Prize: Prize{FixedAmount: 100_000_000, Points: 2_500}},
	{NormalMatches: 4, SpecialMatch: true, Prize: Prize{FixedAmount: 5_000_000, Points: 500}},
	{NormalMatches: 4, SpecialMatch: false, Prize: Prize{FixedAmount: 10_000, Points: 50}},
	{NormalMatches: 3, SpecialMatch: true, Prize: Prize{FixedAmount: 10_000, Points: 50}},
	{NormalMatches: 3, SpecialMatch: false, Prize: Prize{FixedAmount: 700, Points: 10}},
	{NormalMatches: 2, SpecialMatch: true, Prize: Prize{FixedAmount: 700, Points: 10}},
	{NormalMatches: 1, SpecialMatch: true, Prize: Prize{FixedAmount: 400, Points: 5}},
	{NormalMatches: 0, SpecialMatch: true, Prize: Prize{FixedAmount: 400, Points: 5}},
}
