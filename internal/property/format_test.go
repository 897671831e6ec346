package property

import (
	"net/url"
	"testing"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name  string
		price int64
		want  string
	}{
		{"billions with fraction", 3_200_000_000, "3.2 میلیارد تومان"},
		{"fraction truncates", 3_850_000_000, "3.8 میلیارد تومان"},
		{"whole billions", 4_000_000_000, "4 میلیارد تومان"},
		{"small fraction", 3_050_000_000, "3.0 میلیارد تومان"},
		{"millions", 850_000_000, "850 میلیون تومان"},
		{"zero", 0, "0 میلیون تومان"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPrice(tt.price); got != tt.want {
				t.Errorf("FormatPrice(%d) = %q, want %q", tt.price, got, tt.want)
			}
		})
	}
}

func TestLoanEstimate(t *testing.T) {
	tests := []struct {
		name        string
		price       int64
		downPayment float64
		want        int64
	}{
		{"default share", 3_200_000_000, DefaultDownPayment, 2240},
		{"no down payment", 2_100_000_000, 0, 2100},
		{"half", 4_200_000_000, 0.5, 2100},
		{"out of range falls back", 1_000_000_000, 1.5, 700},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LoanEstimate(tt.price, tt.downPayment); got != tt.want {
				t.Errorf("LoanEstimate(%d, %v) = %d, want %d", tt.price, tt.downPayment, got, tt.want)
			}
		})
	}
}

func TestContactLinks(t *testing.T) {
	p := &Property{
		Title:        "آپارتمان لوکس در شهرک کوثر",
		Price:        3_200_000_000,
		Address:      "اردبیل، شهرک کوثر، آسمان",
		ContactPhone: "09145375158",
	}

	if got := DialURL(p.ContactPhone); got != "tel:09145375158" {
		t.Errorf("dial = %q", got)
	}

	u, err := url.Parse(p.WhatsAppURL())
	if err != nil {
		t.Fatalf("parse whatsapp url: %v", err)
	}
	if u.Scheme != "whatsapp" || u.Host != "send" {
		t.Errorf("whatsapp url = %q", u.String())
	}
	if got := u.Query().Get("phone"); got != "09145375158" {
		t.Errorf("phone = %q", got)
	}
	wantText := `سلام، در مورد ملک "آپارتمان لوکس در شهرک کوثر" سوال داشتم`
	if got := u.Query().Get("text"); got != wantText {
		t.Errorf("text = %q, want %q", got, wantText)
	}

	wantShare := "آپارتمان لوکس در شهرک کوثر\n3.2 میلیارد تومان\nاردبیل، شهرک کوثر، آسمان"
	if got := p.ShareText(); got != wantShare {
		t.Errorf("share = %q, want %q", got, wantShare)
	}
}

func TestLabels(t *testing.T) {
	if TypeHouse.Label() != "خانه" {
		t.Errorf("house label = %q", TypeHouse.Label())
	}
	if StatusForRent.Label() != "اجاره‌ای" {
		t.Errorf("for_rent label = %q", StatusForRent.Label())
	}
	if SortPriceLow.Label() != "ارزان‌ترین" {
		t.Errorf("price_low label = %q", SortPriceLow.Label())
	}
	if PropertyType("villa").Label() != "villa" {
		t.Error("unknown type should fall back to its value")
	}
}

func TestValidEnums(t *testing.T) {
	for _, s := range []string{"apartment", "house", "commercial", "land"} {
		if !ValidPropertyType(s) {
			t.Errorf("ValidPropertyType(%q) = false", s)
		}
	}
	if ValidPropertyType("villa") {
		t.Error("villa should be invalid")
	}
	for _, s := range []string{"for_sale", "for_rent", "sold", "rented"} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false", s)
		}
	}
	if ValidStatus("") {
		t.Error("empty status should be invalid")
	}
}
