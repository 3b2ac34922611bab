package models

import (
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"
)

// Address holds an organization or branch address. Upstream records carry it
// either as a plain string or as a structured object, so both wire forms are
// accepted.
type Address struct {
	Raw     string `json:"-"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

// UnmarshalJSON accepts both the string form and the structured form.
func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Address{Raw: s}
		return nil
	}

	type structured Address
	var v structured
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = Address(v)
	return nil
}

// String renders the address for display: the raw string verbatim if that is
// what was supplied, otherwise the non-empty structured parts comma-joined.
func (a Address) String() string {
	if a.Raw != "" {
		return a.Raw
	}
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Street, a.City, a.State, a.ZipCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// IsEmpty reports whether no address information was supplied at all.
func (a Address) IsEmpty() bool {
	return a.String() == ""
}

// Organization is the billing party issuing the invoice.
type Organization struct {
	Name    string  `json:"name"`
	Address Address `json:"address"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
}

// Branch carries the outlet the membership belongs to. Only the state is
// consumed, for the place-of-supply line.
type Branch struct {
	Address Address `json:"address"`
}

// Person is a lightweight name pair used for invoice creators and sales reps.
type Person struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// DisplayName joins the non-empty name parts.
func (p Person) DisplayName() string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

// Member is the customer being billed.
type Member struct {
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	AttendanceID string  `json:"attendanceId"`
	SalesRep     *Person `json:"salesRep,omitempty"`
}

// DisplayName returns the member's full name uppercased, which is how it
// always appears on the invoice regardless of input casing.
func (m Member) DisplayName() string {
	return strings.ToUpper(Person{FirstName: m.FirstName, LastName: m.LastName}.DisplayName())
}

// Tax is the invoice-level tax block. A nil Tax or a zero amount means no tax
// line is rendered.
type Tax struct {
	Rate   float64 `json:"rate"`
	Amount float64 `json:"amount"`
}

// Discount is a per-item discount.
type Discount struct {
	Amount float64 `json:"amount"`
}

// InvoiceItem represents one billable service entry on an invoice.
type InvoiceItem struct {
	Description string     `json:"description"`
	ServiceName string     `json:"serviceName"`
	Quantity    float64    `json:"quantity"`
	Amount      float64    `json:"amount"`
	Total       float64    `json:"total"`
	Discount    *Discount  `json:"discount,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	ExpiryDate  *time.Time `json:"expiryDate,omitempty"`
}

// DisplayDescription resolves the line label: the item's own description,
// else the linked service name, else a generic label.
func (i InvoiceItem) DisplayDescription() string {
	if i.Description != "" {
		return i.Description
	}
	if i.ServiceName != "" {
		return i.ServiceName
	}
	return "Membership Service"
}

// DiscountAmount returns the discount value, 0 when no discount is attached.
func (i InvoiceItem) DiscountAmount() float64 {
	if i.Discount == nil {
		return 0
	}
	return i.Discount.Amount
}

// HasDiscount reports whether a positive discount applies to this item.
func (i InvoiceItem) HasDiscount() bool {
	return i.DiscountAmount() > 0
}

// BaseFee is the net payable amount for the item: the explicit total when
// present, otherwise amount minus discount.
func (i InvoiceItem) BaseFee() float64 {
	if i.Total != 0 {
		return i.Total
	}
	return i.Amount - i.DiscountAmount()
}

// EffectiveQuantity defaults the quantity to 1 when the record omits it.
func (i InvoiceItem) EffectiveQuantity() float64 {
	if i.Quantity <= 0 {
		return 1
	}
	return i.Quantity
}

// HasPeriod reports whether both membership period dates are present; the
// period sub-line only renders when they are.
func (i InvoiceItem) HasPeriod() bool {
	return i.StartDate != nil && i.ExpiryDate != nil
}

// Invoice is a fully-populated billing record. All relationships must already
// be resolved by the caller; the renderer performs no lookups and never
// mutates the record.
type Invoice struct {
	InvoiceNumber string    `json:"invoiceNumber"`
	Type          string    `json:"type"`
	IsProForma    bool      `json:"isProForma"`
	DateOfInvoice time.Time `json:"dateOfInvoice"`
	CreatedAt     time.Time `json:"createdAt"`

	Organization Organization `json:"organization"`
	Member       Member       `json:"member"`
	Branch       *Branch      `json:"branch,omitempty"`
	CreatedBy    *Person      `json:"createdBy,omitempty"`

	Subtotal float64 `json:"subtotal"`
	Tax      *Tax    `json:"tax,omitempty"`
	Total    float64 `json:"total"`
	Pending  float64 `json:"pending"`

	Items []InvoiceItem `json:"items"`

	CustomerNotes string `json:"customerNotes,omitempty"`
}

// HasTax reports whether the tax line should appear.
func (inv *Invoice) HasTax() bool {
	return inv.Tax != nil && inv.Tax.Amount > 0
}

// PlaceOfSupply resolves the supply region: branch state, then organization
// state, then the supplied fallback region.
func (inv *Invoice) PlaceOfSupply(fallback string) string {
	if inv.Branch != nil && inv.Branch.Address.State != "" {
		return inv.Branch.Address.State
	}
	if inv.Organization.Address.State != "" {
		return inv.Organization.Address.State
	}
	return fallback
}

// FormattedType renders the free-text invoice category for display:
// hyphens become spaces and the first character is capitalized, the rest is
// left unchanged ("new-booking" -> "New booking").
func (inv *Invoice) FormattedType() string {
	t := strings.ReplaceAll(inv.Type, "-", " ")
	if t == "" {
		return t
	}
	r, size := utf8.DecodeRuneInString(t)
	return strings.ToUpper(string(r)) + t[size:]
}

// SalesRepName resolves the sales rep line: the member's assigned rep, else
// the invoice creator. Empty when neither is present.
func (inv *Invoice) SalesRepName() string {
	if inv.Member.SalesRep != nil {
		return inv.Member.SalesRep.DisplayName()
	}
	if inv.CreatedBy != nil {
		return inv.CreatedBy.DisplayName()
	}
	return ""
}
