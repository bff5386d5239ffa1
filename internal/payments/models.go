package payments

// MaxAmount caps a purchase in whole currency units; the gateway amount is
// MaxAmount*100 paise. Keep the validate tag below in sync.
const MaxAmount = 10_000_000

// PurchaseRequest is the body of POST /create. Amount is in whole currency units.
type PurchaseRequest struct {
	Amount     int64  `json:"amount" validate:"gt=0,lte=10000000"`
	Name       string `json:"name" validate:"required,max=200"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,max=32"`
	Course     string `json:"course" validate:"required"`
	ClassStand string `json:"classstand"`
}

// PaymentCallback is the body of POST /payment, sent after checkout completes.
type PaymentCallback struct {
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone"`
	Email      string `json:"email" validate:"required,email"`
	Course     string `json:"course" validate:"required"`
	ClassStand string `json:"classstand"`
	PaymentID  string `json:"razorpay_payment_id" validate:"required"`
	OrderID    string `json:"razorpay_order_id" validate:"required"`
	Signature  string `json:"razorpay_signature" validate:"required"`
}

// FulfillmentRecord is forwarded verbatim to the ledger sink.
type FulfillmentRecord struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Course     string `json:"course"`
	ClassStand string `json:"classstand"`
	PaymentID  string `json:"payment_id"`
}

func (cb PaymentCallback) Record() FulfillmentRecord {
	return FulfillmentRecord{
		Name:       cb.Name,
		Phone:      cb.Phone,
		Email:      cb.Email,
		Course:     cb.Course,
		ClassStand: cb.ClassStand,
		PaymentID:  cb.PaymentID,
	}
}
