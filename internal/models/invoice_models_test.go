package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressUnmarshalStringForm(t *testing.T) {
	var a Address
	require.NoError(t, json.Unmarshal([]byte(`"12 MG Road, Bengaluru"`), &a))
	assert.Equal(t, "12 MG Road, Bengaluru", a.String())
}

func TestAddressUnmarshalStructuredForm(t *testing.T) {
	var a Address
	require.NoError(t, json.Unmarshal([]byte(`{"street":"12 MG Road","city":"Bengaluru","state":"Karnataka","zipCode":"560001"}`), &a))
	assert.Equal(t, "12 MG Road, Bengaluru, Karnataka, 560001", a.String())
}

func TestAddressStringSkipsEmptyParts(t *testing.T) {
	a := Address{Street: "X", State: "Y"}
	assert.Equal(t, "X, Y", a.String())
}

func TestAddressIsEmpty(t *testing.T) {
	assert.True(t, Address{}.IsEmpty())
	assert.False(t, Address{Raw: "somewhere"}.IsEmpty())
	assert.False(t, Address{City: "Bengaluru"}.IsEmpty())
}

func TestMemberDisplayNameIsUppercased(t *testing.T) {
	m := Member{FirstName: "john", LastName: "Doe"}
	assert.Equal(t, "JOHN DOE", m.DisplayName())
}

func TestMemberDisplayNamePartialName(t *testing.T) {
	m := Member{FirstName: "priya"}
	assert.Equal(t, "PRIYA", m.DisplayName())
}

func TestFormattedType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"new-booking", "New booking"},
		{"renewal", "Renewal"},
		{"personal-training-addon", "Personal training addon"},
		{"über-pass", "Über pass"},
		{"", ""},
	}
	for _, tt := range tests {
		inv := Invoice{Type: tt.in}
		assert.Equal(t, tt.want, inv.FormattedType(), "type %q", tt.in)
	}
}

func TestItemBaseFeePrefersExplicitTotal(t *testing.T) {
	item := InvoiceItem{Amount: 1000, Total: 900, Discount: &Discount{Amount: 150}}
	assert.Equal(t, 900.0, item.BaseFee())
}

func TestItemBaseFeeFallsBackToAmountMinusDiscount(t *testing.T) {
	item := InvoiceItem{Amount: 1000, Discount: &Discount{Amount: 150}}
	assert.InDelta(t, 850.0, item.BaseFee(), 0.005)
}

func TestItemBaseFeeWithoutDiscount(t *testing.T) {
	item := InvoiceItem{Amount: 1000}
	assert.Equal(t, 1000.0, item.BaseFee())
}

func TestItemEffectiveQuantityDefaultsToOne(t *testing.T) {
	assert.Equal(t, 1.0, InvoiceItem{}.EffectiveQuantity())
	assert.Equal(t, 3.0, InvoiceItem{Quantity: 3}.EffectiveQuantity())
}

func TestItemHasPeriodRequiresBothDates(t *testing.T) {
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.False(t, InvoiceItem{StartDate: &start}.HasPeriod())
	assert.False(t, InvoiceItem{ExpiryDate: &end}.HasPeriod())
	assert.True(t, InvoiceItem{StartDate: &start, ExpiryDate: &end}.HasPeriod())
}

func TestItemDisplayDescriptionFallbacks(t *testing.T) {
	assert.Equal(t, "Gold Membership", InvoiceItem{Description: "Gold Membership"}.DisplayDescription())
	assert.Equal(t, "Cross Fit", InvoiceItem{ServiceName: "Cross Fit"}.DisplayDescription())
	assert.Equal(t, "Membership Service", InvoiceItem{}.DisplayDescription())
}

func TestInvoiceHasTax(t *testing.T) {
	assert.False(t, (&Invoice{}).HasTax())
	assert.False(t, (&Invoice{Tax: &Tax{Rate: 18}}).HasTax())
	assert.True(t, (&Invoice{Tax: &Tax{Rate: 18, Amount: 180}}).HasTax())
}

func TestPlaceOfSupplyResolutionOrder(t *testing.T) {
	inv := &Invoice{
		Branch:       &Branch{Address: Address{State: "Tamil Nadu"}},
		Organization: Organization{Address: Address{State: "Kerala"}},
	}
	assert.Equal(t, "Tamil Nadu", inv.PlaceOfSupply("Karnataka"))

	inv.Branch = nil
	assert.Equal(t, "Kerala", inv.PlaceOfSupply("Karnataka"))

	inv.Organization.Address = Address{Raw: "plain address, no state"}
	assert.Equal(t, "Karnataka", inv.PlaceOfSupply("Karnataka"))
}

func TestSalesRepNamePrefersAssignedRep(t *testing.T) {
	inv := &Invoice{
		Member:    Member{SalesRep: &Person{FirstName: "Asha", LastName: "Nair"}},
		CreatedBy: &Person{FirstName: "Ravi", LastName: "Kumar"},
	}
	assert.Equal(t, "Asha Nair", inv.SalesRepName())

	inv.Member.SalesRep = nil
	assert.Equal(t, "Ravi Kumar", inv.SalesRepName())

	inv.CreatedBy = nil
	assert.Equal(t, "", inv.SalesRepName())
}

func TestInvoiceUnmarshalMixedAddressForms(t *testing.T) {
	payload := `{
		"invoiceNumber": "INV-1001",
		"type": "new-booking",
		"organization": {"name": "AIRFIT", "address": "45 Residency Road, Bengaluru"},
		"branch": {"address": {"state": "Karnataka"}},
		"items": [{"description": "Gold Membership", "amount": 1000}]
	}`
	var inv Invoice
	require.NoError(t, json.Unmarshal([]byte(payload), &inv))
	assert.Equal(t, "45 Residency Road, Bengaluru", inv.Organization.Address.String())
	require.NotNil(t, inv.Branch)
	assert.Equal(t, "Karnataka", inv.Branch.Address.State)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, 1000.0, inv.Items[0].BaseFee())
}
