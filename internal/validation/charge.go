package validation

import "pixcharge/internal/models"

// Maximum accepted charge value. PIX itself has no fixed ceiling; this is
// a sanity bound against fat-fingered amounts.
const MaxChargeValue = 1000000.00

// ChargeRequest validates a PIX charge request
func (v *Validator) ChargeRequest(req *models.ChargeRequest) {
	v.Positive("charge_value", req.ChargeValue)
	v.Max("charge_value", req.ChargeValue, MaxChargeValue)
}
