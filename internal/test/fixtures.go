package test

import "strings"

const (
	TestRegistryID     = "0x00000000000000000000000000000000000000000000000000000000000000f1"
	TestPlanOwner      = "0x00000000000000000000000000000000000000000000000000000000000000b0"
	TestSubscriber     = "0x00000000000000000000000000000000000000000000000000000000000000a1"
	TestRegistryType   = "0x1::subscription_manager::SubscriptionRegistry"
	TestSubscriptionID = 7
)

// testRegistryFields holds two plans, "Pro" (id 1, active, 2.5 Mi per 30 days) and "Legacy"
// (id 2, inactive), and subscription 7 of TestSubscriber to "Pro", due on 2025-11-18 12:00 UTC.
const testRegistryFields = `{
	"id": {"id": "{{registry}}"},
	"plans": [
		{
			"type": "0x1::subscription_manager::SubscriptionPlan",
			"fields": {
				"plan_id": "1",
				"owner": "{{owner}}",
				"name": "Pro",
				"description": "All features",
				"price": "2500000",
				"period_in_seconds": "2592000",
				"active": true,
				"created_at": "1760875200000"
			}
		},
		{
			"type": "0x1::subscription_manager::SubscriptionPlan",
			"fields": {
				"plan_id": "2",
				"owner": "{{owner}}",
				"name": "Legacy",
				"description": "Retired plan",
				"price": "1000000",
				"period_in_seconds": "86400",
				"active": false,
				"created_at": "1760875200000"
			}
		}
	],
	"subscriptions": [
		{
			"type": "0x1::subscription_manager::Subscription",
			"fields": {
				"subscription_id": "7",
				"subscriber": "{{subscriber}}",
				"plan_id": "1",
				"start_timestamp": "1760875200000",
				"next_payment_due": "1763467200000",
				"active": true
			}
		}
	],
	"next_plan_id": "3",
	"next_subscription_id": "8"
}`

// TestRegistryFields returns the content fields of the test subscription registry.
func TestRegistryFields() string {
	return strings.NewReplacer(
		"{{registry}}", TestRegistryID,
		"{{owner}}", TestPlanOwner,
		"{{subscriber}}", TestSubscriber,
	).Replace(testRegistryFields)
}
