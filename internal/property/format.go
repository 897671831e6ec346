package property

import (
	"fmt"
	"math"
	"net/url"
)

const (
	billion = 1_000_000_000
	million = 1_000_000

	// DefaultDownPayment is the down payment share assumed by LoanEstimate.
	DefaultDownPayment = 0.3
)

// FormatPrice renders a toman amount the way listings display it:
// "3.2 میلیارد تومان", "4 میلیارد تومان" or "850 میلیون تومان".
// The fractional digit is the hundreds of millions, truncated.
func FormatPrice(price int64) string {
	billions := price / billion
	millions := (price % billion) / million

	switch {
	case billions > 0 && millions > 0:
		return fmt.Sprintf("%d.%d میلیارد تومان", billions, millions/100)
	case billions > 0:
		return fmt.Sprintf("%d میلیارد تومان", billions)
	default:
		return fmt.Sprintf("%d میلیون تومان", price/million)
	}
}

// LoanEstimate returns the approximate loan amount, in millions of toman,
// for a purchase at price with the given down payment share.
func LoanEstimate(price int64, downPayment float64) int64 {
	if downPayment < 0 || downPayment > 1 {
		downPayment = DefaultDownPayment
	}
	loan := price - int64(math.Round(float64(price)*downPayment))
	return loan / million
}

// DialURL returns a tel: link for phone.
func DialURL(phone string) string {
	return "tel:" + phone
}

// WhatsAppURL returns a WhatsApp deep link to the listing's contact with a
// prefilled inquiry about the listing.
func (p *Property) WhatsAppURL() string {
	v := url.Values{}
	v.Set("phone", p.ContactPhone)
	v.Set("text", fmt.Sprintf("سلام، در مورد ملک \"%s\" سوال داشتم", p.Title))
	return "whatsapp://send?" + v.Encode()
}

// ShareText returns the text shared for the listing: title, price and address.
func (p *Property) ShareText() string {
	return p.Title + "\n" + FormatPrice(p.Price) + "\n" + p.Address
}
