package domain

// GeometryType classifies a job item as 1D bar stock or 2D sheet stock.
type GeometryType string

const (
	Geometry1D GeometryType = "1D"
	Geometry2D GeometryType = "2D"
)

// JobItem is one line of a cutting job: either a 1D or 2D piece
// request, disambiguated by GeometryType. Exactly one of the 1D/2D
// dimension fields is meaningful for a given GeometryType.
type JobItem struct {
	ID              string
	OrderItemID     string
	GeometryType    GeometryType
	Length          int // 1D
	Width           int // 2D
	Height          int // 2D
	Quantity        int
	CanRotate       bool // 2D
	MaterialTypeID  string
	Thickness       float64
}

// Job is the unit of work the engine loads by id.
type Job struct {
	ID    string
	Items []JobItem
}

// StockFilter narrows a stock query to compatible material, thickness,
// geometry family, and an optional explicit allowlist.
type StockFilter struct {
	MaterialTypeID   string
	Thickness        float64
	Geometry         GeometryType
	SelectedStockIDs []string
}
