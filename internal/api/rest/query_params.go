package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/api/shared/constants"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/domain"
)

// ListTokensQueryParams holds query parameters for GET /tokens
type ListTokensQueryParams struct {
	// Filters
	Deployer string `form:"deployer" binding:"required"`

	// Pagination
	Limit  int    `form:"limit,default=20" binding:"min=1"`
	Offset uint64 `form:"offset,default=0"`
}

// LeaderboardQueryParams holds query parameters for GET /leaderboard
type LeaderboardQueryParams struct {
	Limit int `form:"limit,default=100" binding:"min=1"`
}

// ParseListTokensQuery parses query parameters for GET /tokens
func ParseListTokensQuery(c *gin.Context) (*ListTokensQueryParams, error) {
	var params ListTokensQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	// Normalize address
	deployer, err := domain.NormalizeAddress(params.Deployer)
	if err != nil {
		return nil, err
	}
	params.Deployer = deployer

	// Cap limit
	if params.Limit > constants.MAX_PAGE_SIZE {
		params.Limit = constants.MAX_PAGE_SIZE
	}

	return &params, nil
}

// ParseLeaderboardQuery parses query parameters for GET /leaderboard
func ParseLeaderboardQuery(c *gin.Context) (*LeaderboardQueryParams, error) {
	var params LeaderboardQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	if params.Limit > domain.LeaderboardCapacity {
		params.Limit = domain.LeaderboardCapacity
	}

	return &params, nil
}
