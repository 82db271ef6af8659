package config

// DraftConfig holds allocation defaults used when a request leaves them out.
type DraftConfig struct {
	PlayersPerTeam  int
	BalanceByRating bool
	// Seed fixes the shuffle for repeatable runs when HasSeed is set.
	Seed    int64
	HasSeed bool
}

func loadDraft() DraftConfig {
	seed, hasSeed := int64Env(envDraftSeed)
	return DraftConfig{
		PlayersPerTeam:  intEnvOrDefault(envPlayersPerTeam, defaultPlayersPerTeam),
		BalanceByRating: boolEnvOrDefault(envBalanceByRating, defaultBalanceByRating),
		Seed:            seed,
		HasSeed:         hasSeed,
	}
}
