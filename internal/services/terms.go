package services

// Legal copy printed on every invoice. This is policy content, not layout
// logic; update it here without touching the renderer.

const termsHeading = "Terms & Conditions"

const termsUpgradeRenewalPolicy = "1. Membership upgrades and renewals must be availed before the expiry " +
	"of the current membership. Requests received after expiry will be treated as a fresh membership " +
	"and charged at the prevailing rates."

const termsFreshMembershipPolicy = "2. A fresh membership is activated from the date of the first visit " +
	"or 30 days from the date of purchase, whichever is earlier. Sessions not consumed within the " +
	"membership period stand lapsed."

// The organization name is interpolated into this clause; when the record
// carries no organization name the configured fallback brand is used.
const termsTransferPolicyFormat = "3. Memberships are personal and non-transferable. Transfer requests " +
	"are entertained solely at the discretion of %s and may attract an administrative fee."

const termsCancellationPolicy = "4. Membership fees once paid are non-refundable. Cancellation of a " +
	"membership does not entitle the member to a refund for the unused period or sessions, in part " +
	"or in full."

const termsAcknowledgment = "I hereby acknowledge that I have read and understood the terms and " +
	"conditions stated above and agree to abide by them. I confirm that the membership and billing " +
	"details captured on this invoice are correct to the best of my knowledge."

const footerThankYou = "Thank you for your business!"

const footerDisclaimer = "This is a computer generated invoice and does not require a signature."

const customerNotesHeading = "Customer Notes"
