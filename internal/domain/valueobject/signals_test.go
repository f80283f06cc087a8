package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignals_Resolve(t *testing.T) {
	tests := []struct {
		name    string
		signals Signals
		want    Outcome
	}{
		{"нет сигналов", Signals{}, OutcomeNone},
		{"только покупатель одобрил", Signals{BuyerApproved: true}, OutcomeNone},
		{"только продавец одобрил", Signals{SellerApproved: true}, OutcomeNone},
		{"обе стороны одобрили", Signals{BuyerApproved: true, SellerApproved: true}, OutcomeComplete},
		{"только покупатель отменяет", Signals{BuyerCancelRequested: true}, OutcomeNone},
		{"только продавец отменяет", Signals{SellerCancelRequested: true}, OutcomeNone},
		{"обе стороны отменяют", Signals{BuyerCancelRequested: true, SellerCancelRequested: true}, OutcomeCancel},
		{
			"одобрение с одной стороны, отмена с другой",
			Signals{BuyerApproved: true, SellerCancelRequested: true},
			OutcomeNone,
		},
		{
			"пара одобрений сильнее пары отмен",
			Signals{BuyerApproved: true, SellerApproved: true, BuyerCancelRequested: true, SellerCancelRequested: true},
			OutcomeComplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.signals.Resolve())
		})
	}
}

func TestSignals_Apply_OrderIndependence(t *testing.T) {
	// Исход не зависит от того, кто сигналил первым.
	first := Signals{}.
		Apply(PartyBuyer, SignalApproval, true).
		Apply(PartySeller, SignalApproval, true)
	second := Signals{}.
		Apply(PartySeller, SignalApproval, true).
		Apply(PartyBuyer, SignalApproval, true)

	assert.Equal(t, OutcomeComplete, first.Resolve())
	assert.Equal(t, first.Resolve(), second.Resolve())
}

func TestSignals_Apply_ApprovalRetraction(t *testing.T) {
	s := Signals{}.Apply(PartyBuyer, SignalApproval, true)
	assert.Equal(t, OutcomeNone, s.Resolve())

	// Пока второй стороны нет, одобрение можно отозвать.
	s = s.Apply(PartyBuyer, SignalApproval, false)
	s = s.Apply(PartySeller, SignalApproval, true)
	assert.Equal(t, OutcomeNone, s.Resolve())
}

func TestSignals_Apply_DoesNotMutateReceiver(t *testing.T) {
	original := Signals{}
	_ = original.Apply(PartyBuyer, SignalCancellation, true)
	assert.False(t, original.BuyerCancelRequested)
}
