package models

// Activity actions recorded against trades and the journal.
const (
	ActionTradeCreated = "trade.created"
	ActionTradeUpdated = "trade.updated"
	ActionTradeDeleted = "trade.deleted"
	ActionTradeClosed  = "trade.quick_closed"
	ActionTradeSpawned = "trade.assignment_spawned"
	ActionImport       = "journal.imported"
	ActionSettings     = "settings.updated"
	ActionMarket       = "market.refreshed"
)

// ActivityLog records a write to the journal.
type ActivityLog struct {
	Base
	Action  string `gorm:"not null;index" json:"action"`
	TradeID string `gorm:"index" json:"trade_id,omitempty"`
	Changes string `json:"changes,omitempty"`
}
