package funnel

import "strings"

// FulfillmentMode describes how a purchased offer is delivered.
type FulfillmentMode string

const (
	FulfillmentDigital  FulfillmentMode = "digital"
	FulfillmentPhysical FulfillmentMode = "physical"
	FulfillmentService  FulfillmentMode = "service"
)

// Behavior drives the checkout form and pricing flow for one funnel shape.
type Behavior struct {
	RequiresShipping       bool
	RequiresBillingAddress bool
	DefaultButtonText      string
	ShowOrderBump          bool
	FulfillmentMode        FulfillmentMode
	IsSubscription         bool
}

// defaultDigital keeps the table readable; most tags only override a field or two.
var defaultDigital = Behavior{
	RequiresShipping:       false,
	RequiresBillingAddress: false,
	DefaultButtonText:      "Get Instant Access",
	ShowOrderBump:          true,
	FulfillmentMode:        FulfillmentDigital,
	IsSubscription:         false,
}

func digitalWith(mutate func(*Behavior)) Behavior {
	b := defaultDigital
	mutate(&b)
	return b
}

var behaviors = map[string]Behavior{
	// --- CORE COMMERCE ---
	"digital_product": defaultDigital,
	"physical_product": digitalWith(func(b *Behavior) {
		b.RequiresShipping = true
		b.RequiresBillingAddress = true
		b.DefaultButtonText = "Ship My Order"
		b.FulfillmentMode = FulfillmentPhysical
	}),
	"free_plus_shipping": digitalWith(func(b *Behavior) {
		b.RequiresShipping = true
		b.RequiresBillingAddress = true
		b.DefaultButtonText = "I'll Cover Shipping"
		b.FulfillmentMode = FulfillmentPhysical
	}),
	"tripwire_offer": digitalWith(func(b *Behavior) { b.DefaultButtonText = "Grab This Deal" }),
	"pre_order": digitalWith(func(b *Behavior) {
		b.RequiresShipping = true
		b.RequiresBillingAddress = true
		b.DefaultButtonText = "Reserve My Copy"
		b.FulfillmentMode = FulfillmentPhysical
	}),

	// --- SUBSCRIPTIONS ---
	"membership_sub": digitalWith(func(b *Behavior) {
		b.IsSubscription = true
		b.DefaultButtonText = "Start My Trial"
	}),
	"saas_trial": digitalWith(func(b *Behavior) {
		b.IsSubscription = true
		b.DefaultButtonText = "Start Free Trial"
	}),
	"newsletter_signup": digitalWith(func(b *Behavior) {
		b.ShowOrderBump = false
		b.DefaultButtonText = "Subscribe Now"
	}),

	// --- EVENTS & SERVICES ---
	"event_ticket": digitalWith(func(b *Behavior) { b.DefaultButtonText = "Get Tickets" }),
	"consulting_retainer": digitalWith(func(b *Behavior) {
		b.IsSubscription = true
		b.DefaultButtonText = "Hire Now"
		b.FulfillmentMode = FulfillmentService
	}),
	"high_ticket_call": digitalWith(func(b *Behavior) {
		b.DefaultButtonText = "Book Your Call"
		b.FulfillmentMode = FulfillmentService
	}),
	"calendar_booking": digitalWith(func(b *Behavior) {
		b.DefaultButtonText = "Confirm Time"
		b.FulfillmentMode = FulfillmentService
	}),

	// --- LEAD GEN & OTHERS ---
	"lead_magnet": digitalWith(func(b *Behavior) {
		b.DefaultButtonText = "Download Now"
		b.ShowOrderBump = false
	}),
	"waitlist": digitalWith(func(b *Behavior) {
		b.DefaultButtonText = "Join Waitlist"
		b.ShowOrderBump = false
	}),
	"quiz_funnel": digitalWith(func(b *Behavior) {
		b.DefaultButtonText = "See Results"
		b.ShowOrderBump = false
	}),
	"survey_feedback": digitalWith(func(b *Behavior) {
		b.DefaultButtonText = "Submit Feedback"
		b.ShowOrderBump = false
	}),
	"challenge_funnel": digitalWith(func(b *Behavior) { b.DefaultButtonText = "Join The Challenge" }),
	"application_funnel": digitalWith(func(b *Behavior) {
		b.DefaultButtonText = "Submit Application"
		b.ShowOrderBump = false
	}),
	"video_sales_letter": digitalWith(func(b *Behavior) { b.DefaultButtonText = "Get Access Now" }),
	"webinar_live":       digitalWith(func(b *Behavior) { b.DefaultButtonText = "Register for Live Class" }),
	"webinar_replay":     digitalWith(func(b *Behavior) { b.DefaultButtonText = "Watch Replay" }),
	"product_launch":     digitalWith(func(b *Behavior) { b.DefaultButtonText = "Get Early Access" }),
	"affiliate_bridge":   digitalWith(func(b *Behavior) { b.DefaultButtonText = "Continue..." }),
	"charity_donation":   digitalWith(func(b *Behavior) { b.DefaultButtonText = "Donate Now" }),
}

// Resolve maps a funnel-type tag to its behavior. Tags often come from remote
// content and are not guaranteed to be valid; unknown or empty tags resolve
// to the digital-product default instead of failing.
func Resolve(tag string) Behavior {
	if b, ok := behaviors[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return b
	}
	return defaultDigital
}

// KnownTypes returns the closed set of recognized funnel-type tags.
func KnownTypes() []string {
	out := make([]string, 0, len(behaviors))
	for tag := range behaviors {
		out = append(out, tag)
	}
	return out
}
