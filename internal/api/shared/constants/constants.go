package constants

const (
	MAX_PAGE_SIZE             = 100
	DEFAULT_OFFSET            = uint64(0)
	DEFAULT_TOKENS_LIMIT      = 20
	DEFAULT_LEADERBOARD_LIMIT = 100
	MAX_TOKEN_NAME_LENGTH     = 64
	MAX_TOKEN_SYMBOL_LENGTH   = 16
	MAX_DISPLAY_NAME_LENGTH   = 64
	DEFAULT_TOKEN_DECIMALS    = uint8(18)
)
