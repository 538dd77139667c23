package models

// Movement reasons.
const (
	MovementApproval   = "approval"
	MovementAdjustment = "adjustment"
	MovementBorrow     = "borrow"
	MovementReturn     = "return"
	MovementImport     = "import"
)

// Movement is an audit record of a stock mutation.
type Movement struct {
	ID        int    `json:"id"`
	ItemID    int    `json:"item_id"`
	Delta     int    `json:"delta"`
	Reason    string `json:"reason"`
	CreatedAt string `json:"created_at"`
}
