package state

// Order is a single purchase record. The store owns every Order; the rest of the
// agent only holds pointers to it.
type Order struct {
	ID          int    `json:"id"`
	UserEmail   string `json:"user_email"`
	Seller      string `json:"seller"`
	ProductName string `json:"product_name"`
	Status      string `json:"status"`
}

// OrderContext is the candidate set the user is currently acting on.
// A nil or empty context means no order is in focus.
type OrderContext []*Order

func (c OrderContext) Empty() bool {
	return len(c) == 0
}

// Single returns the only order in the context.
func (c OrderContext) Single() (*Order, bool) {
	if len(c) != 1 {
		return nil, false
	}
	return c[0], true
}

// IDs lists the tracking numbers in context order. Used for logging.
func (c OrderContext) IDs() []int {
	ids := make([]int, 0, len(c))
	for _, o := range c {
		if o != nil {
			ids = append(ids, o.ID)
		}
	}
	return ids
}

// Attribute selects one of the order fields a user can search by.
type Attribute int

const (
	AttrNone Attribute = iota
	AttrSeller
	AttrProductName
)

func (a Attribute) String() string {
	switch a {
	case AttrSeller:
		return "seller"
	case AttrProductName:
		return "product name"
	default:
		return "none"
	}
}

// Value reads the attribute from o.
func (a Attribute) Value(o *Order) string {
	if o == nil {
		return ""
	}
	switch a {
	case AttrSeller:
		return o.Seller
	case AttrProductName:
		return o.ProductName
	default:
		return ""
	}
}

// Other returns the complementary search attribute.
func (a Attribute) Other() Attribute {
	switch a {
	case AttrSeller:
		return AttrProductName
	case AttrProductName:
		return AttrSeller
	default:
		return AttrNone
	}
}

// Filter keeps the orders whose attribute equals value exactly.
func (a Attribute) Filter(orders []*Order, value string) []*Order {
	var out []*Order
	for _, o := range orders {
		if a.Value(o) == value {
			out = append(out, o)
		}
	}
	return out
}
