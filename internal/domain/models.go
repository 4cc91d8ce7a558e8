package domain

// Interest status values. An interest starts as pending and is moved exactly
// once to accepted or rejected by the listing owner.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

type Owner struct {
	Name  string `json:"ownerName"`
	Email string `json:"ownerEmail"`
}

type Crop struct {
	ID           string     `json:"_id"`
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	PricePerUnit float64    `json:"pricePerUnit"`
	Unit         string     `json:"unit"`
	Quantity     int        `json:"quantity"`
	Description  string     `json:"description"`
	Location     string     `json:"location"`
	Image        string     `json:"image"`
	Owner        Owner      `json:"owner"`
	Interests    []Interest `json:"interests"`
	CreatedAt    string     `json:"createdAt"`
	UpdatedAt    string     `json:"updatedAt,omitempty"`
}

type Interest struct {
	ID        string `json:"_id"`
	CropID    string `json:"cropId"`
	UserEmail string `json:"userEmail"`
	UserName  string `json:"userName"`
	Quantity  int    `json:"quantity"`
	Message   string `json:"message"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// InterestView is one row of the buyer-facing "my interests" feed: the
// caller's own interest joined with its crop's name and owner.
type InterestView struct {
	CropID    string `db:"crop_id" json:"cropId"`
	CropName  string `db:"crop_name" json:"cropName"`
	OwnerName string `db:"owner_name" json:"ownerName"`
	Quantity  int    `db:"quantity" json:"quantity"`
	Message   string `db:"message" json:"message"`
	Status    string `db:"status" json:"status"`
}

// CropFilter carries the optional catalog query constraints. Nil price bounds
// mean unbounded; filters combine conjunctively.
type CropFilter struct {
	Search   string
	Type     string
	Location string
	MinPrice *float64
	MaxPrice *float64
	Sort     string // price_asc | price_desc | latest | ""
}

// CropPage is the paginated catalog response. Total counts every matching
// listing regardless of pagination.
type CropPage struct {
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Crops []Crop `json:"crops"`
}
