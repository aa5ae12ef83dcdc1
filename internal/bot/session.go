package bot

// Step is the current phase of the top-level order-assembly state machine.
type Step string

const (
	StepIdle           Step = "idle"
	StepDeliveryPickup Step = "delivery_pickup"
	StepAddress        Step = "address"
	StepPayment        Step = "payment"
	StepChange         Step = "change"
	StepConfirm        Step = "confirm"
)

// Session is the full mutable state of one conversation. It is persisted as
// JSON in Redis, keyed by conversation id, and round-trips once per turn.
type Session struct {
	Step              Step         `json:"step"`
	Cart              []CartItem   `json:"cart"`
	Customer          Customer     `json:"customer"`
	Pending           *PendingItem `json:"pending_item,omitempty"`
	AddressFieldIndex int          `json:"address_field_index"`
}

func NewSession() *Session {
	return &Session{Step: StepIdle}
}

// Reset returns the session to a fresh idle state. Called after a successful
// submission or an explicit cancellation.
func (s *Session) Reset() {
	*s = Session{Step: StepIdle}
}

// CartItem is one priced, customized instance of a catalog dish.
type CartItem struct {
	DishID     uint                      `json:"dish_id"`
	Name       string                    `json:"name"`
	Type       string                    `json:"type"`
	Quantity   int                       `json:"quantity"`
	UnitPrice  float64                   `json:"unit_price"`
	Selections map[uint][]SelectedOption `json:"selections,omitempty"`
}

type SelectedOption struct {
	OptionID uint    `json:"option_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
}

type Customer struct {
	Name           string   `json:"name"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email"`
	DeliveryMethod string   `json:"delivery_method"` // "delivery" | "pickup"
	Street         string   `json:"address_street"`
	Number         string   `json:"address_number"`
	Complement     string   `json:"address_complement"`
	Neighborhood   string   `json:"neighborhood"`
	Address        string   `json:"address"`
	PaymentMethod  string   `json:"payment_method"`
	NeedsChange    bool     `json:"needs_change"`
	ChangeAmount   *float64 `json:"change_amount"`
}

// Phase of the pending-item sub-machine.
type Phase string

const (
	PhaseBeverages   Phase = "beverages"
	PhaseComplements Phase = "complements"
)

// PendingItem tracks the in-progress customization of one dish before it is
// committed to the cart. It is cleared the instant the dish is finalized or
// abandoned.
type PendingItem struct {
	DishID     uint                      `json:"dish_id"`
	Quantity   int                       `json:"quantity"`
	Phase      Phase                     `json:"phase"`
	GroupIndex int                       `json:"complement_group_index"`
	Selections map[uint][]SelectedOption `json:"selections,omitempty"`
	Offer      *CrossSellOffer           `json:"offer,omitempty"`
}
