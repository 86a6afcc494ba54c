package schema

import (
	"time"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/domain"
)

// Token represents the tokens table - one row per ERC20 deployed through the launcher
type Token struct {
	// ID is the document id (uuid)
	ID string `gorm:"column:id;primaryKey;type:uuid"`
	// ContractAddress is the deployed contract address (empty until the receipt is known)
	ContractAddress string `gorm:"column:contract_address;not null;default:'';type:text"`
	Name            string `gorm:"column:name;not null;type:text"`
	Symbol          string `gorm:"column:symbol;not null;type:text"`
	Decimals        uint8  `gorm:"column:decimals;not null;default:18"`
	// TotalSupply is a decimal string to hold uint256 values
	TotalSupply string `gorm:"column:total_supply;not null;type:text"`
	// DeployerAddress is the lower-cased wallet that deployed the token
	DeployerAddress string         `gorm:"column:deployer_address;not null;type:text;index:idx_tokens_deployer"`
	ChainID         domain.ChainID `gorm:"column:chain_id;not null"`
	DeployedAt      time.Time      `gorm:"column:deployed_at;not null"`
	TxHash          string         `gorm:"column:tx_hash;not null;type:text"`
	CreatedAt       time.Time      `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the Token model
func (Token) TableName() string {
	return "tokens"
}

// ToDocument converts the row to the document published in change events
func (t Token) ToDocument() domain.TokenDocument {
	return domain.TokenDocument{
		ID:              t.ID,
		ContractAddress: t.ContractAddress,
		Name:            t.Name,
		Symbol:          t.Symbol,
		Decimals:        t.Decimals,
		TotalSupply:     t.TotalSupply,
		DeployerAddress: t.DeployerAddress,
		ChainID:         t.ChainID,
		DeployedAt:      t.DeployedAt,
		TxHash:          t.TxHash,
	}
}
