package coupon

import "errors"

// Reason identifies why a code was refused. Values are stable and exposed to clients.
type Reason string

const (
	ReasonCodeRequired           Reason = "code_required"
	ReasonNotFound               Reason = "not_found"
	ReasonUserContextRequired    Reason = "user_context_required"
	ReasonInactive               Reason = "inactive"
	ReasonAlreadyRedeemed        Reason = "already_redeemed"
	ReasonAlreadyRedeemedByUser  Reason = "already_redeemed_by_user"
	ReasonNotValidForAccount     Reason = "not_valid_for_account"
	ReasonNotApplicableHere      Reason = "not_applicable_here"
	ReasonExpired                Reason = "expired"
	ReasonNotApplicableToProduct Reason = "not_applicable_to_product"
)

var reasonMessages = map[Reason]string{
	ReasonCodeRequired:           "Please provide a coupon code.",
	ReasonNotFound:               "This code is not valid.",
	ReasonUserContextRequired:    "You must be logged in to use this coupon.",
	ReasonInactive:               "This code is not active.",
	ReasonAlreadyRedeemed:        "This code has already been used.",
	ReasonAlreadyRedeemedByUser:  "This code has already been used by your account.",
	ReasonNotValidForAccount:     "This code is not valid for your account.",
	ReasonNotApplicableHere:      "This code is not meant to be used here.",
	ReasonExpired:                "This code is expired.",
	ReasonNotApplicableToProduct: "This code is not valid for the product selected.",
}

// Message is the fixed human-readable text shown to the user for the reason.
func (r Reason) Message() string {
	if msg, ok := reasonMessages[r]; ok {
		return msg
	}
	return "This code is not valid."
}

func (r Reason) String() string {
	return string(r)
}

// Rejection is the single outcome of a failed eligibility check. It is an ordinary
// value error: callers display it, they never treat it as a failure of the service.
type Rejection struct {
	Reason Reason
}

func reject(reason Reason) *Rejection {
	return &Rejection{Reason: reason}
}

func (r *Rejection) Error() string {
	return r.Reason.Message()
}

// Is lets errors.Is match any rejection carrying the same reason.
func (r *Rejection) Is(target error) bool {
	t, ok := target.(*Rejection)
	return ok && t.Reason == r.Reason
}

// AsRejection extracts the rejection from err, following wrap chains.
func AsRejection(err error) (*Rejection, bool) {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}

func IsRejection(err error, reason Reason) bool {
	rej, ok := AsRejection(err)
	return ok && rej.Reason == reason
}
