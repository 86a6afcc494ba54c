package domain

const (
	// LeaderboardID is the id of the singleton leaderboard row
	LeaderboardID = "top_creators"

	// LeaderboardCapacity is the maximum number of ranked creators kept
	LeaderboardCapacity = 100

	// GlobalStatsID is the id of the singleton global stats row
	GlobalStatsID = "global"

	// NATS
	DocumentEventsSubject = "documents.>"
)
