package model

// Tier is the loyalty class of a customer. It is always derived from the
// point balance and never stored.
type Tier string

const (
	TierBronze Tier = "Bronze"
	TierSilver Tier = "Silver"
	TierGold   Tier = "Gold"
)

// Tier thresholds in points.
const (
	SilverThreshold = 25
	GoldThreshold   = 50
)

// TierFor maps a point balance to its tier.
func TierFor(points int) Tier {
	switch {
	case points >= GoldThreshold:
		return TierGold
	case points >= SilverThreshold:
		return TierSilver
	default:
		return TierBronze
	}
}

type Customer struct {
	Phone   string       `json:"phone"`
	Name    string       `json:"name"`
	Points  int          `json:"points"`
	History []SaleRecord `json:"history"`
}

// Tier returns the customer's current tier.
func (c *Customer) Tier() Tier {
	return TierFor(c.Points)
}

// CustomerResponse is used for API responses
type CustomerResponse struct {
	Phone   string       `json:"phone"`
	Name    string       `json:"name"`
	Points  int          `json:"points"`
	Tier    Tier         `json:"tier"`
	History []SaleRecord `json:"history"`
}

// ToResponse converts Customer to CustomerResponse
func (c *Customer) ToResponse() CustomerResponse {
	history := c.History
	if history == nil {
		history = []SaleRecord{}
	}
	return CustomerResponse{
		Phone:   c.Phone,
		Name:    c.Name,
		Points:  c.Points,
		Tier:    c.Tier(),
		History: history,
	}
}

// Customers is the whole customer snapshot keyed by phone number.
type Customers map[string]Customer
